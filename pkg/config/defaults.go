package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017/?replicaSet=rs0"
	DefaultMongoDatabaseName = "carrental"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout     = 30 * time.Second
	DefaultIdempotencyTTL     = 24 * time.Hour
	DefaultIdempotencyBackend = IdempotencyBackendMemory
	DefaultMaxRequestSize     = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultTokenTTL = 1 * time.Hour

	DefaultKafkaEnabled         = false
	DefaultReservationsTopic    = "reservations.events"
	DefaultReservationsDLQTopic = "reservations.events.dlq"
	DefaultNotifierGroupID      = "reservation-notifier"

	DefaultRedisAddr = "localhost:6379"
	DefaultRedisDB   = 0
)

const (
	IdempotencyBackendMemory = "memory"
	IdempotencyBackendRedis  = "redis"
)

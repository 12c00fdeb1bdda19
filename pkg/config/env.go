package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout     = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL     = "IDEMPOTENCY_TTL"
	EnvIdempotencyBackend = "IDEMPOTENCY_BACKEND"
	EnvMaxRequestSize     = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvJWTSecret = "JWT_SECRET"
	EnvTokenTTL  = "TOKEN_TTL"

	EnvKafkaEnabled         = "KAFKA_ENABLED"
	EnvReservationsTopic    = "RESERVATIONS_TOPIC"
	EnvReservationsDLQTopic = "RESERVATIONS_DLQ_TOPIC"
	EnvNotifierGroupID      = "NOTIFIER_GROUP_ID"

	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"
)

package main

import (
	authhandler "carrental/internal/auth/handler"
	authrepository "carrental/internal/auth/repository"
	authservice "carrental/internal/auth/service"
	"carrental/internal/reservations/events"
	"carrental/internal/reservations/handler"
	"carrental/internal/reservations/repository"
	"carrental/internal/reservations/service"
	"carrental/internal/reservations/validator"
	"carrental/pkg/app"
	"carrental/pkg/config"
	"carrental/pkg/kafka"
	kafka_config "carrental/pkg/kafka/config"
	kafka_middleware "carrental/pkg/kafka/middleware"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)
	if err := cfg.RequireJWTSecret(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.SetMongo()
	if cfg.IdempotencyBackend == config.IdempotencyBackendRedis {
		cfg.SetRedis()
	}
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Reservations service")

	serverApp := app.NewApplication()
	publisher := initPublisher(cfg, serverApp)
	router := initRouter(cfg, publisher)

	serverApp.SetApp(cfg, handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log), router)
	serverApp.Run()
}

func initRouter(cfg *config.Config, publisher events.Publisher) *handler.Router {
	reservationService := service.NewReservationService(
		repository.NewMongoCarRepository(cfg),
		repository.NewMongoReservationRepository(cfg),
	)
	reservationHandler := handler.NewReservationHandler(
		reservationService,
		validator.NewReservationValidator(cfg.Log),
		publisher,
		cfg.Log.Component("reservations"),
	)

	authService := authservice.NewAuthService(
		authrepository.NewMongoUserRepository(cfg),
		cfg.JWTSecret,
		cfg.TokenTTL,
	)
	loginHandler := authhandler.NewLoginHandler(authService, cfg.Log.Component("auth"))

	cfg.Log.Info("Reservation service initialized", "database", cfg.MongoDatabaseName)
	return handler.NewRouter(reservationHandler, loginHandler, authService, cfg.Log)
}

func initPublisher(cfg *config.Config, serverApp *app.Application) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, reservation events will not be published")
		return events.NewNoopPublisher()
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.ReservationsTopic, cfg.ReservationsDLQTopic, cfg.Log.Component("kafka"))
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log.Component("kafka")))
	producer.Use(kafka_middleware.MetricsProducerMiddleware())

	serverApp.OnShutdown(func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	})

	return events.NewKafkaPublisher(producer, ServiceName)
}

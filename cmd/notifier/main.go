package main

import (
	"carrental/internal/notifier"
	"carrental/pkg/config"
	"carrental/pkg/kafka"
	kafka_config "carrental/pkg/kafka/config"
	kafka_middleware "carrental/pkg/kafka/middleware"
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
)

const ServiceName = "notifier"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	log := cfg.Log.Component("notifier")
	n := notifier.NewNotifier(notifier.NewMongoNotificationStore(cfg), log)

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.ReservationsTopic,
		cfg.NotifierGroupID,
		cfg.ReservationsDLQTopic,
		n.Handle,
		log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware(log))
	consumer.Use(kafka_middleware.MetricsConsumerMiddleware())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Starting Notifier",
		"topic", cfg.ReservationsTopic,
		"group_id", cfg.NotifierGroupID,
	)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close Kafka consumer", "error", err)
	}
	cfg.Log.Info("Notifier stopped")
}

package kafka_middleware

import (
	"carrental/pkg/kafka"
	"carrental/pkg/metrics"
	"context"
	"time"
)

func MetricsProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		return observe(metrics.DirectionProduced, msg.Topic, func() error { return next(ctx, msg) })
	}
}

func MetricsConsumerMiddleware() kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		return observe(metrics.DirectionConsumed, msg.Topic, func() error { return next(ctx, msg) })
	}
}

func observe(direction, topic string, fn func() error) error {
	start := time.Now()
	err := fn()

	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultFailure
	}
	metrics.KafkaMessages.WithLabelValues(direction, topic, result).Inc()
	metrics.KafkaMessageDuration.WithLabelValues(direction, topic).Observe(time.Since(start).Seconds())
	return err
}

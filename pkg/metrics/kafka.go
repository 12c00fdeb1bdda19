package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameKafkaMessages        = "kafka_messages_total"
	NameKafkaMessageDuration = "kafka_message_duration_seconds"

	DirectionProduced = "produced"
	DirectionConsumed = "consumed"

	ResultSuccess = "success"
	ResultFailure = "failure"
)

var KafkaMessages = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameKafkaMessages,
		Help:      "Kafka messages by direction, topic and result",
		Namespace: Namespace,
	},
	[]string{"direction", "topic", "result"},
)

var KafkaMessageDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:      NameKafkaMessageDuration,
		Help:      "Time spent publishing or handling a Kafka message",
		Namespace: Namespace,
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"direction", "topic"},
)

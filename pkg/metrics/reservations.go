package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameReservationAttempts = "reservation_attempts_total"

	OutcomeCreated            = "created"
	OutcomeNotAvailable       = "not_available"
	OutcomeCarNotFound        = "car_not_found"
	OutcomeInvalidDateRange   = "invalid_date_range"
	OutcomeStorageUnavailable = "storage_unavailable"
	OutcomeRejected           = "rejected"
)

var ReservationAttempts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameReservationAttempts,
		Help:      "Reservation create attempts by outcome",
		Namespace: Namespace,
	},
	[]string{"outcome"},
)

package handler

import (
	authmiddleware "carrental/internal/auth/middleware"
	reservationerrors "carrental/internal/reservations/errors"
	"carrental/internal/reservations/events"
	"carrental/internal/reservations/service"
	"carrental/internal/reservations/validator"
	apperrors "carrental/pkg/errors"
	httputil "carrental/pkg/http"
	"carrental/pkg/logger"
	"carrental/pkg/metrics"
	"carrental/pkg/middleware"
	"carrental/pkg/model"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
)

const CreatedMessage = "Reservation created successfully"

// ReservationView is the wire shape of a reservation.
type ReservationView struct {
	ID        string    `json:"id"`
	CarID     int64     `json:"carId"`
	UserID    int64     `json:"userId"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateReservationResponse struct {
	Success     bool            `json:"success"`
	Message     string          `json:"message"`
	Reservation ReservationView `json:"reservation"`
}

type ListReservationsResponse struct {
	Success      bool              `json:"success"`
	Reservations []ReservationView `json:"reservations"`
}

func NewReservationView(r *model.Reservation) ReservationView {
	return ReservationView{
		ID:        r.ID,
		CarID:     r.CarID,
		UserID:    r.UserID,
		StartDate: model.FormatDate(r.StartDate),
		EndDate:   model.FormatDate(r.EndDate),
		CreatedAt: r.CreatedAt,
	}
}

type ReservationHandler struct {
	service   service.ReservationService
	validator *validator.ReservationValidator
	publisher events.Publisher
	log       *logger.Logger
}

func NewReservationHandler(
	service service.ReservationService,
	validator *validator.ReservationValidator,
	publisher events.Publisher,
	log *logger.Logger,
) *ReservationHandler {
	return &ReservationHandler{
		service:   service,
		validator: validator,
		publisher: publisher,
		log:       log,
	}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, ok := authmiddleware.UserFromContext(r.Context())
	if !ok {
		h.writeError(w, "Create", apperrors.Unauthorized("Authentication required"))
		return
	}

	var req model.CreateReservationRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		metrics.ReservationAttempts.WithLabelValues(metrics.OutcomeRejected).Inc()
		h.writeError(w, "Create", err)
		return
	}

	if err := h.validator.ValidateCreate(&req); err != nil {
		metrics.ReservationAttempts.WithLabelValues(metrics.OutcomeRejected).Inc()
		h.writeError(w, "Create", err)
		return
	}

	// both dates already passed calendar_date validation
	startDate, _ := model.ParseDate(req.StartDate)
	endDate, _ := model.ParseDate(req.EndDate)

	reservation, err := h.service.Create(r.Context(), req.CarID, startDate, endDate, user)
	if err != nil {
		metrics.ReservationAttempts.WithLabelValues(outcome(err)).Inc()
		if errors.Is(err, reservationerrors.ErrStorageUnavailable) {
			h.log.Error("Reservation storage failed",
				"car_id", req.CarID,
				"user_id", user.ID,
				"error", err,
			)
		}
		h.writeError(w, "Create", err)
		return
	}
	metrics.ReservationAttempts.WithLabelValues(metrics.OutcomeCreated).Inc()

	h.log.Info("Reservation created",
		"reservation_id", reservation.ID,
		"car_id", reservation.CarID,
		"user_id", reservation.UserID,
		"start_date", model.FormatDate(reservation.StartDate),
		"end_date", model.FormatDate(reservation.EndDate),
	)

	if err := h.publisher.ReservationCreated(r.Context(), reservation, user, middleware.RequestIDFromContext(r.Context())); err != nil {
		h.log.Warn("Failed to publish reservation event",
			"reservation_id", reservation.ID,
			"error", err,
		)
	}

	if err := httputil.WriteCreated(w, CreateReservationResponse{
		Success:     true,
		Message:     CreatedMessage,
		Reservation: NewReservationView(reservation),
	}); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReservationHandler) ListForCar(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	carID, err := httputil.ParseIDParam(ps, "id")
	if err != nil {
		h.writeError(w, "ListForCar", err)
		return
	}

	reservations, err := h.service.ListForCar(r.Context(), carID)
	if err != nil {
		h.writeError(w, "ListForCar", err)
		return
	}

	h.writeList(w, "ListForCar", reservations)
}

func (h *ReservationHandler) ListForUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, ok := authmiddleware.UserFromContext(r.Context())
	if !ok {
		h.writeError(w, "ListForUser", apperrors.Unauthorized("Authentication required"))
		return
	}

	userID, err := httputil.ParseIDParam(ps, "id")
	if err != nil {
		h.writeError(w, "ListForUser", err)
		return
	}
	if userID != user.ID {
		h.writeError(w, "ListForUser", apperrors.Forbidden("Access denied"))
		return
	}

	reservations, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, "ListForUser", err)
		return
	}

	h.writeList(w, "ListForUser", reservations)
}

func (h *ReservationHandler) writeList(w http.ResponseWriter, handler string, reservations []*model.Reservation) {
	views := make([]ReservationView, 0, len(reservations))
	for _, r := range reservations {
		views = append(views, NewReservationView(r))
	}

	if err := httputil.WriteJSON(w, http.StatusOK, ListReservationsResponse{
		Success:      true,
		Reservations: views,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", handler, "operation", "WriteJSON", "error", err)
	}
}

func (h *ReservationHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func outcome(err error) string {
	switch {
	case errors.Is(err, reservationerrors.ErrCarNotFound):
		return metrics.OutcomeCarNotFound
	case errors.Is(err, reservationerrors.ErrInvalidDateRange):
		return metrics.OutcomeInvalidDateRange
	case errors.Is(err, reservationerrors.ErrNotAvailable):
		return metrics.OutcomeNotAvailable
	case errors.Is(err, reservationerrors.ErrStorageUnavailable):
		return metrics.OutcomeStorageUnavailable
	}
	return metrics.OutcomeRejected
}

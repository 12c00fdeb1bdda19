package handler

import (
	authhandler "carrental/internal/auth/handler"
	authrepository "carrental/internal/auth/repository"
	authservice "carrental/internal/auth/service"
	"carrental/internal/reservations/repository"
	"carrental/internal/reservations/service"
	"carrental/internal/reservations/validator"
	apperrors "carrental/pkg/errors"
	"carrental/pkg/logger"
	"carrental/pkg/model"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth map[string]model.UserRef

func (s stubAuth) Authenticate(_ context.Context, token string) (model.UserRef, error) {
	user, ok := s[token]
	if !ok {
		return model.UserRef{}, apperrors.Unauthorized("Invalid or expired token")
	}
	return user, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*model.Reservation
	err    error
}

func (p *recordingPublisher) ReservationCreated(_ context.Context, r *model.Reservation, _ model.UserRef, _ string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, r)
	return p.err
}

type testServer struct {
	router    *httprouter.Router
	store     *repository.MemoryStore
	publisher *recordingPublisher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := logger.Discard()
	store := repository.NewMemoryStore()
	for _, id := range []int64{1, 2} {
		require.NoError(t, store.Cars().Create(context.Background(), &model.Car{ID: id, Model: "Clio"}))
	}

	publisher := &recordingPublisher{}
	reservations := NewReservationHandler(
		service.NewReservationService(store.Cars(), store.Reservations()),
		validator.NewReservationValidator(log),
		publisher,
		log,
	)
	login := authhandler.NewLoginHandler(
		authservice.NewAuthService(authrepository.NewMemoryUserRepository(), "0123456789abcdef0123456789abcdef", time.Hour),
		log,
	)
	auth := stubAuth{
		"alice-token": {ID: 10, Login: "alice"},
		"bob-token":   {ID: 20, Login: "bob"},
	}

	router := httprouter.New()
	NewRouter(reservations, login, auth, log).RegisterRoutes(router)

	return &testServer{router: router, store: store, publisher: publisher}
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestCreate_Success(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/reservations", "alice-token",
		`{"carId":1,"startDate":"2026-06-10","endDate":"2026-06-12"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode[CreateReservationResponse](t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, CreatedMessage, body.Message)
	assert.NotEmpty(t, body.Reservation.ID)
	assert.Equal(t, int64(1), body.Reservation.CarID)
	assert.Equal(t, int64(10), body.Reservation.UserID)
	assert.Equal(t, "2026-06-10", body.Reservation.StartDate)
	assert.Equal(t, "2026-06-12", body.Reservation.EndDate)

	require.Len(t, s.publisher.events, 1)
	assert.Equal(t, body.Reservation.ID, s.publisher.events[0].ID)
}

func TestCreate_AliasRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/reservations/create", "alice-token",
		`{"carId":2,"startDate":"2026-06-10T15:00:00Z","endDate":"2026-06-11"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		body    string
		status  int
		message string
	}{
		{"no token", "", `{"carId":1,"startDate":"2026-06-10","endDate":"2026-06-12"}`, http.StatusUnauthorized, "Authentication required"},
		{"missing carId", "alice-token", `{"startDate":"2026-06-10","endDate":"2026-06-12"}`, http.StatusBadRequest, "Missing required fields: carId, startDate, endDate"},
		{"missing endDate", "alice-token", `{"carId":1,"startDate":"2026-06-10"}`, http.StatusBadRequest, "Missing required fields: carId, startDate, endDate"},
		{"bad date", "alice-token", `{"carId":1,"startDate":"10/06/2026","endDate":"2026-06-12"}`, http.StatusBadRequest, "Invalid date format"},
		{"equal dates", "alice-token", `{"carId":1,"startDate":"2026-06-10","endDate":"2026-06-10"}`, http.StatusBadRequest, "End date must be after start date"},
		{"unknown car", "alice-token", `{"carId":999999,"startDate":"2026-06-10","endDate":"2026-06-12"}`, http.StatusNotFound, "Car not found"},
		{"malformed json", "alice-token", `{"carId":`, http.StatusBadRequest, "Invalid JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			rec := s.do(http.MethodPost, "/api/reservations", tt.token, tt.body)

			assert.Equal(t, tt.status, rec.Code)
			body := decode[apperrors.ErrorResponse](t, rec)
			assert.False(t, body.Success)
			assert.Contains(t, body.Message, tt.message)
			assert.Empty(t, s.publisher.events)
		})
	}
}

func TestCreate_OverlapIsConflict(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/reservations", "alice-token",
		`{"carId":1,"startDate":"2026-06-10","endDate":"2026-06-12"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(http.MethodPost, "/api/reservations", "bob-token",
		`{"carId":1,"startDate":"2026-06-12","endDate":"2026-06-14"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Car is not available for the selected dates", decode[apperrors.ErrorResponse](t, rec).Message)
	assert.Len(t, s.publisher.events, 1)
}

func TestCreate_PublishFailureStillCreated(t *testing.T) {
	s := newTestServer(t)
	s.publisher.err = errors.New("broker down")

	rec := s.do(http.MethodPost, "/api/reservations", "alice-token",
		`{"carId":1,"startDate":"2026-06-10","endDate":"2026-06-12"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestListForCar(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{
		`{"carId":1,"startDate":"2026-08-01","endDate":"2026-08-03"}`,
		`{"carId":1,"startDate":"2026-06-01","endDate":"2026-06-03"}`,
		`{"carId":2,"startDate":"2026-07-01","endDate":"2026-07-03"}`,
	} {
		require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/reservations", "alice-token", body).Code)
	}

	rec := s.do(http.MethodGet, "/api/cars/1/reservations", "bob-token", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[ListReservationsResponse](t, rec)
	require.Len(t, body.Reservations, 2)
	assert.Equal(t, "2026-06-01", body.Reservations[0].StartDate)
	assert.Equal(t, "2026-08-01", body.Reservations[1].StartDate)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/cars/999999/reservations", "bob-token", "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/cars/abc/reservations", "bob-token", "").Code)
}

func TestListForUser(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/reservations", "alice-token",
		`{"carId":1,"startDate":"2026-06-10","endDate":"2026-06-12"}`).Code)

	rec := s.do(http.MethodGet, "/api/users/10/reservations", "alice-token", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[ListReservationsResponse](t, rec).Reservations, 1)

	rec = s.do(http.MethodGet, "/api/users/10/reservations", "bob-token", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied", decode[apperrors.ErrorResponse](t, rec).Message)

	rec = s.do(http.MethodGet, "/api/users/20/reservations", "bob-token", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, decode[ListReservationsResponse](t, rec).Reservations)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(http.MethodPost, "/api/reservations", "alice-token", `{"carId":1,"startDate":"2026-06-10","endDate":"2026-06-12"}`)

	rec := s.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "carrental_reservation_attempts_total")
}

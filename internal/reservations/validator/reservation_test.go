package validator

import (
	apperrors "carrental/pkg/errors"
	"carrental/pkg/logger"
	"carrental/pkg/model"
	"errors"
	"net/http"
	"testing"
)

func TestValidateCreate(t *testing.T) {
	v := NewReservationValidator(logger.Discard())

	tests := []struct {
		name       string
		req        model.CreateReservationRequest
		wantErr    error
		wantStatus int
		wantMsg    string
	}{
		{
			name: "valid calendar dates",
			req:  model.CreateReservationRequest{CarID: 1, StartDate: "2030-03-10", EndDate: "2030-03-15"},
		},
		{
			name: "valid RFC3339 dates",
			req:  model.CreateReservationRequest{CarID: 1, StartDate: "2030-03-10T10:00:00Z", EndDate: "2030-03-15T00:00:00+02:00"},
		},
		{
			name:       "missing car",
			req:        model.CreateReservationRequest{StartDate: "2030-03-10", EndDate: "2030-03-15"},
			wantErr:    ErrMissingFields,
			wantStatus: http.StatusBadRequest,
			wantMsg:    MissingFieldsMessage,
		},
		{
			name:       "missing end date",
			req:        model.CreateReservationRequest{CarID: 3, StartDate: "2030-03-10"},
			wantErr:    ErrMissingFields,
			wantStatus: http.StatusBadRequest,
			wantMsg:    MissingFieldsMessage,
		},
		{
			name:       "missing wins over malformed",
			req:        model.CreateReservationRequest{StartDate: "tomorrow", EndDate: "2030-03-15"},
			wantErr:    ErrMissingFields,
			wantStatus: http.StatusBadRequest,
			wantMsg:    MissingFieldsMessage,
		},
		{
			name:       "malformed start date",
			req:        model.CreateReservationRequest{CarID: 1, StartDate: "10/03/2030", EndDate: "2030-03-15"},
			wantErr:    ErrInvalidDateFormat,
			wantStatus: http.StatusBadRequest,
			wantMsg:    InvalidDateFormatMessage,
		},
		{
			name:       "impossible calendar date",
			req:        model.CreateReservationRequest{CarID: 1, StartDate: "2030-02-30", EndDate: "2030-03-15"},
			wantErr:    ErrInvalidDateFormat,
			wantStatus: http.StatusBadRequest,
			wantMsg:    InvalidDateFormatMessage,
		},
		{
			name:       "negative car id",
			req:        model.CreateReservationRequest{CarID: -4, StartDate: "2030-03-10", EndDate: "2030-03-15"},
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "Invalid reservation request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCreate(&tt.req)
			if tt.wantStatus == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			appErr := apperrors.AsAppError(err)
			if appErr.StatusCode() != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, appErr.StatusCode())
			}
			if appErr.Message != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, appErr.Message)
			}
		})
	}
}

func TestValidateCreate_DetailsUseJSONNames(t *testing.T) {
	v := NewReservationValidator(logger.Discard())

	err := v.ValidateCreate(&model.CreateReservationRequest{CarID: 1, StartDate: "2030-03-10"})
	appErr := apperrors.AsAppError(err)

	errs, ok := appErr.Details["errors"].(ValidationErrors)
	if !ok || len(errs) != 1 {
		t.Fatalf("expected one validation error in details, got %#v", appErr.Details)
	}
	if errs[0].Field != "endDate" {
		t.Errorf("expected field endDate, got %s", errs[0].Field)
	}
}

package validator

import (
	apperrors "carrental/pkg/errors"
	"carrental/pkg/logger"
	"carrental/pkg/model"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrMissingFields     = errors.New("missing required fields")
	ErrInvalidDateFormat = errors.New("invalid date format")
)

const (
	MissingFieldsMessage     = "Missing required fields: carId, startDate, endDate"
	InvalidDateFormatMessage = "Invalid date format"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type ReservationValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewReservationValidator(log *logger.Logger) *ReservationValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("calendar_date", validateCalendarDate); err != nil {
		log.Fatal("Failed to register 'calendar_date' validator",
			"error", err,
		)
	}

	log.Debug("Reservation validator initialized successfully")

	return &ReservationValidator{
		validate: v,
		logger:   log,
	}
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := model.ParseDate(fl.Field().String())
	return err == nil
}

// ValidateCreate checks a create request. A missing field wins over a malformed one so the
// caller always learns about every required field first.
func (v *ReservationValidator) ValidateCreate(req *model.CreateReservationRequest) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperrors.InvalidInput("Invalid request").WithCause(err)
	}

	details := map[string]any{"errors": translateValidationErrors(validationErrs)}
	for _, fe := range validationErrs {
		if fe.Tag() == "required" {
			return apperrors.InvalidInput(MissingFieldsMessage).WithDetails(details).WithCause(ErrMissingFields)
		}
	}
	for _, fe := range validationErrs {
		if fe.Tag() == "calendar_date" {
			return apperrors.InvalidInput(InvalidDateFormatMessage).WithDetails(details).WithCause(ErrInvalidDateFormat)
		}
	}
	return apperrors.Validation("Invalid reservation request", details).WithCause(translateValidationErrors(validationErrs))
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "calendar_date":
			message = fmt.Sprintf("%s must be a date (YYYY-MM-DD or RFC3339)", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}

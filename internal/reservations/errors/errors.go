package errors

import "errors"

var (
	ErrCarNotFound = errors.New("car not found")

	ErrInvalidDateRange = errors.New("end date must be after start date")

	ErrNotAvailable = errors.New("car is not available for the selected dates")

	ErrStorageUnavailable = errors.New("reservation storage unavailable")

	// ErrOverlapConflict is reported by storage when a concurrent writer admitted an
	// overlapping reservation first.
	ErrOverlapConflict = errors.New("overlapping reservation committed concurrently")
)

package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

const writeConflictCode = 112

// IsWriteConflict reports whether err is a transaction write conflict or a duplicate key
// violation. Both mean a concurrent writer won. The TransientTransactionError label is
// not enough on its own: the driver also attaches it to network errors.
func IsWriteConflict(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	var se mongo.ServerError
	if errors.As(err, &se) {
		return se.HasErrorCode(writeConflictCode)
	}
	return false
}

// IsUnavailable reports whether err means MongoDB could not be reached.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) || errors.Is(err, context.DeadlineExceeded)
}

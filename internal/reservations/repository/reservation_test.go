package repository

import (
	reservationerrors "carrental/internal/reservations/errors"
	mongotx "carrental/pkg/db/mongo"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type mockTransactionManager struct {
	executeFn func(ctx context.Context, fn mongotx.TransactionFunc) error
}

func (m *mockTransactionManager) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return m.executeFn(ctx, fn)
}

func TestMongoReservationRepository_ExecuteTransactionMapsErrors(t *testing.T) {
	tests := []struct {
		name    string
		txErr   error
		wantIs  error
		wantNot error
	}{
		{
			name: "success",
		},
		{
			name:    "write conflict",
			txErr:   mongo.CommandError{Code: 112, Name: "WriteConflict", Labels: []string{"TransientTransactionError"}},
			wantIs:  reservationerrors.ErrOverlapConflict,
			wantNot: reservationerrors.ErrStorageUnavailable,
		},
		{
			name:    "duplicate key",
			txErr:   mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}},
			wantIs:  reservationerrors.ErrOverlapConflict,
			wantNot: reservationerrors.ErrStorageUnavailable,
		},
		{
			name:    "network error inside a transaction",
			txErr:   mongo.CommandError{Code: 6, Labels: []string{"NetworkError", "TransientTransactionError"}},
			wantIs:  reservationerrors.ErrStorageUnavailable,
			wantNot: reservationerrors.ErrOverlapConflict,
		},
		{
			name:    "client disconnected",
			txErr:   mongo.ErrClientDisconnected,
			wantIs:  reservationerrors.ErrStorageUnavailable,
			wantNot: reservationerrors.ErrOverlapConflict,
		},
		{
			name:    "callback error passes through",
			txErr:   reservationerrors.ErrNotAvailable,
			wantIs:  reservationerrors.ErrNotAvailable,
			wantNot: reservationerrors.ErrStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			tx := &mockTransactionManager{
				executeFn: func(ctx context.Context, fn mongotx.TransactionFunc) error {
					require.NoError(t, fn(ctx))
					return tt.txErr
				},
			}
			repo := &mongoReservationRepository{txManager: tx}

			err := repo.ExecuteTransaction(context.Background(), func(ctx context.Context) error {
				called = true
				return nil
			})

			assert.True(t, called)
			if tt.wantIs == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantIs)
			assert.False(t, errors.Is(err, tt.wantNot))
		})
	}
}

func TestMongoReservationRepository_ExecuteTransactionKeepsUnknownErrors(t *testing.T) {
	boom := errors.New("boom")
	repo := &mongoReservationRepository{txManager: &mockTransactionManager{
		executeFn: func(ctx context.Context, fn mongotx.TransactionFunc) error { return boom },
	}}

	err := repo.ExecuteTransaction(context.Background(), func(ctx context.Context) error { return nil })

	assert.Same(t, boom, err)
}

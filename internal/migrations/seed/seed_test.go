package seed

import (
	autherrors "carrental/internal/auth/errors"
	authrepository "carrental/internal/auth/repository"
	"carrental/internal/reservations/repository"
	"carrental/pkg/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCar(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()

	require.NoError(t, Car(ctx, store.Cars(), &model.Car{ID: 1, Model: " Renault  Clio", Plate: "ab-123-cd"}))

	car, err := store.Cars().FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Renault Clio", car.Model)
	assert.Equal(t, "AB-123-CD", car.Plate)

	assert.ErrorIs(t, Car(ctx, store.Cars(), &model.Car{ID: 0}), ErrInvalidSeed)
}

func TestUser(t *testing.T) {
	ctx := context.Background()
	users := authrepository.NewMemoryUserRepository()

	require.NoError(t, User(ctx, users, 1, " alice ", "s3cret", nil))

	user, err := users.FindByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_USER"}, user.Roles)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))

	assert.ErrorIs(t, User(ctx, users, 2, "alice", "other", nil), autherrors.ErrUserExists)
	assert.ErrorIs(t, User(ctx, users, 3, "bo", "pw", nil), ErrInvalidSeed)
	assert.ErrorIs(t, User(ctx, users, 4, "carol", "", nil), ErrInvalidSeed)
	assert.ErrorIs(t, User(ctx, users, 5, "dave", "pw", []string{"ROLE_ROOT"}), ErrInvalidSeed)
}

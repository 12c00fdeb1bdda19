package seed

import (
	autherrors "carrental/internal/auth/errors"
	authrepository "carrental/internal/auth/repository"
	authservice "carrental/internal/auth/service"
	"carrental/internal/reservations/repository"
	"carrental/pkg/model"
	"carrental/pkg/sanitizer"
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidSeed = errors.New("invalid seed data")

var validate = validator.New()

// Car normalizes and inserts a fleet entry.
func Car(ctx context.Context, cars repository.CarRepository, car *model.Car) error {
	car.Model = sanitizer.NormalizeModel(car.Model)
	car.Plate = sanitizer.NormalizePlate(car.Plate)
	if err := validate.Struct(car); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	return cars.Create(ctx, car)
}

// User hashes password and inserts the account with ROLE_USER when no role is given.
func User(ctx context.Context, users authrepository.UserRepository, id int64, login, password string, roles []string) error {
	login = sanitizer.NormalizeLogin(login)
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidSeed)
	}

	hash, err := authservice.HashPassword(password)
	if err != nil {
		return err
	}
	if len(roles) == 0 {
		roles = []string{"ROLE_USER"}
	}

	user := &model.User{ID: id, Login: login, PasswordHash: hash, Roles: roles}
	if err := validate.Struct(user); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}

	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, autherrors.ErrUserExists) {
			return fmt.Errorf("user %q: %w", login, err)
		}
		return err
	}
	return nil
}

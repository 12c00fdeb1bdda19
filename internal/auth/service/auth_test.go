package service

import (
	autherrors "carrental/internal/auth/errors"
	"carrental/internal/auth/repository"
	apperrors "carrental/pkg/errors"
	"carrental/pkg/model"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService(t *testing.T) (*authService, *repository.MemoryUserRepository) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	users := repository.NewMemoryUserRepository()
	require.NoError(t, users.Create(context.Background(), &model.User{
		ID:           7,
		Login:        "alice",
		PasswordHash: string(hash),
	}))

	svc := NewAuthService(users, testSecret, time.Hour).(*authService)
	return svc, users
}

func TestLogin_IssuesTokenForValidCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	session, err := svc.Login(context.Background(), "  alice ", "s3cret")
	require.NoError(t, err)

	assert.Equal(t, model.UserRef{ID: 7, Login: "alice"}, session.User)
	assert.Equal(t, fixed.Add(time.Hour), session.ExpiresAt)
	assert.NotEmpty(t, session.Token)

	user, err := svc.Authenticate(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User, user)
}

func TestLogin_Failures(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name     string
		login    string
		password string
		sentinel error
	}{
		{"empty login", "", "s3cret", autherrors.ErrMissingCredentials},
		{"empty password", "alice", "", autherrors.ErrMissingCredentials},
		{"wrong password", "alice", "nope", autherrors.ErrInvalidCredentials},
		{"unknown user", "bob", "s3cret", autherrors.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.login, tt.password)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			appErr := apperrors.AsAppError(err)
			assert.Equal(t, http.StatusUnauthorized, appErr.StatusCode())
		})
	}
}

type failingUsers struct{ repository.UserRepository }

func (failingUsers) FindByLogin(context.Context, string) (*model.User, error) {
	return nil, errors.New("connection refused")
}

func TestLogin_StorageFailureIsUnavailable(t *testing.T) {
	svc := NewAuthService(failingUsers{}, testSecret, time.Hour)

	_, err := svc.Login(context.Background(), "alice", "s3cret")
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, apperrors.AsAppError(err).StatusCode())
}

func TestAuthenticate_RejectsBadTokens(t *testing.T) {
	svc, _ := newTestService(t)
	session, err := svc.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)

	otherSecret := NewAuthService(repository.NewMemoryUserRepository(), "ffffffffffffffffffffffffffffffff", time.Hour).(*authService)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  issuer,
		Subject: "7",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		svc   *authService
		token string
	}{
		{"garbage", svc, "not-a-token"},
		{"other secret", otherSecret, session.Token},
		{"alg none", svc, unsigned},
		{"no expiry", svc, noExpiry},
		{"non numeric subject", svc, badSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.Authenticate(context.Background(), tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
			assert.Equal(t, http.StatusUnauthorized, apperrors.AsAppError(err).StatusCode())
		})
	}
}

func TestAuthenticate_RejectsExpiredToken(t *testing.T) {
	svc, _ := newTestService(t)
	issued := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issued }

	session, err := svc.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Authenticate(context.Background(), session.Token)
	assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
}

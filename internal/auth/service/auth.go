package service

import (
	autherrors "carrental/internal/auth/errors"
	"carrental/internal/auth/repository"
	apperrors "carrental/pkg/errors"
	"carrental/pkg/model"
	"carrental/pkg/sanitizer"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "carrental"

type Session struct {
	User      model.UserRef
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	// Login checks the password and issues a bearer token.
	Login(ctx context.Context, login, password string) (*Session, error)
	// Authenticate resolves a bearer token to the user it was issued for.
	Authenticate(ctx context.Context, token string) (model.UserRef, error)
}

type authService struct {
	users  repository.UserRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type claims struct {
	Login string `json:"login"`
	jwt.RegisteredClaims
}

func NewAuthService(users repository.UserRepository, secret string, ttl time.Duration) AuthService {
	return &authService{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *authService) Login(ctx context.Context, login, password string) (*Session, error) {
	login = sanitizer.NormalizeLogin(login)
	if login == "" || password == "" {
		return nil, apperrors.Unauthorized("Missing credentials").WithCause(autherrors.ErrMissingCredentials)
	}

	user, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, autherrors.ErrUserNotFound) {
			// same cost as a real comparison so unknown logins cannot be timed
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, invalidCredentials()
		}
		return nil, apperrors.Unavailable("User storage").WithCause(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, invalidCredentials()
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Login: user.Login,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue token", err)
	}

	return &Session{User: user.Ref(), Token: signed, ExpiresAt: expiresAt}, nil
}

func (s *authService) Authenticate(_ context.Context, token string) (model.UserRef, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return model.UserRef{}, apperrors.Unauthorized("Invalid or expired token").
			WithCause(fmt.Errorf("%w: %v", autherrors.ErrInvalidToken, err))
	}

	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id < 1 {
		return model.UserRef{}, apperrors.Unauthorized("Invalid or expired token").WithCause(autherrors.ErrInvalidToken)
	}
	return model.UserRef{ID: id, Login: c.Login}, nil
}

func invalidCredentials() error {
	return apperrors.Unauthorized("Invalid credentials").WithCause(autherrors.ErrInvalidCredentials)
}

// HashPassword is used by the seeding tools.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("carrental-placeholder"), bcrypt.DefaultCost)

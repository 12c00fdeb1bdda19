package middleware

import (
	"carrental/pkg/logger"
	"carrental/pkg/model"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "carrental/pkg/errors"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth struct {
	tokens map[string]model.UserRef
}

func (s stubAuth) Authenticate(_ context.Context, token string) (model.UserRef, error) {
	user, ok := s.tokens[token]
	if !ok {
		return model.UserRef{}, apperrors.Unauthorized("Invalid or expired token").WithCause(errors.New("unknown token"))
	}
	return user, nil
}

func TestRequireUser(t *testing.T) {
	auth := stubAuth{tokens: map[string]model.UserRef{"good": {ID: 3, Login: "carol"}}}

	var seen model.UserRef
	protected := RequireUser(auth, logger.Discard())(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		user, ok := UserFromContext(r.Context())
		require.True(t, ok)
		seen = user
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer good", http.StatusNoContent},
		{"lowercase scheme", "bearer good", http.StatusNoContent},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "Bearer bad", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = model.UserRef{}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			protected(rec, req, nil)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusNoContent {
				assert.Equal(t, model.UserRef{ID: 3, Login: "carol"}, seen)
			} else {
				assert.Contains(t, rec.Body.String(), `"success":false`)
			}
		})
	}
}

func TestUserFromContext_Empty(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)
}

package middleware

import (
	apperrors "carrental/pkg/errors"
	httputil "carrental/pkg/http"
	"carrental/pkg/logger"
	"carrental/pkg/model"
	"context"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

type contextKey string

const userKey contextKey = "auth_user"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.UserRef, error)
}

// RequireUser rejects requests without a valid bearer token and stores the caller in
// the request context for UserFromContext.
func RequireUser(auth Authenticator, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				httputil.WriteError(w, apperrors.Unauthorized("Authentication required"))
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				log.Warn("Rejected bearer token",
					"path", r.URL.Path,
					"error", err,
				)
				httputil.WriteError(w, err)
				return
			}

			next(w, r.WithContext(WithUser(r.Context(), user)), ps)
		}
	}
}

func WithUser(ctx context.Context, user model.UserRef) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (model.UserRef, bool) {
	user, ok := ctx.Value(userKey).(model.UserRef)
	return user, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

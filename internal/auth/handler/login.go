package handler

import (
	"carrental/internal/auth/service"
	apperrors "carrental/pkg/errors"
	httputil "carrental/pkg/http"
	"carrental/pkg/logger"
	"carrental/pkg/model"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
)

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User      model.UserRef `json:"user"`
	Message   string        `json:"message"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
}

type LoginHandler struct {
	auth service.AuthService
	log  *logger.Logger
}

func NewLoginHandler(auth service.AuthService, log *logger.Logger) *LoginHandler {
	return &LoginHandler{auth: auth, log: log}
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.HTTPStatus == http.StatusRequestEntityTooLarge {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteError(w, apperrors.Unauthorized("Missing credentials").WithCause(err))
		return
	}

	session, err := h.auth.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		h.log.Info("Login failed", "login", req.Login, "error", err)
		httputil.WriteError(w, err)
		return
	}

	h.log.Info("User logged in", "user_id", session.User.ID)
	if err := httputil.WriteJSON(w, http.StatusOK, LoginResponse{
		User:      session.User,
		Message:   "Login successful",
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Login", "operation", "WriteJSON", "error", err)
	}
}

func (h *LoginHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/login", h.Login)
}

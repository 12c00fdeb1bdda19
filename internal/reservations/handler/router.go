package handler

import (
	authhandler "carrental/internal/auth/handler"
	authmiddleware "carrental/internal/auth/middleware"
	"carrental/pkg/logger"
	"carrental/pkg/metrics"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Router registers the public API.
type Router struct {
	reservations *ReservationHandler
	login        *authhandler.LoginHandler
	auth         authmiddleware.Authenticator
	log          *logger.Logger
}

func NewRouter(
	reservations *ReservationHandler,
	login *authhandler.LoginHandler,
	auth authmiddleware.Authenticator,
	log *logger.Logger,
) *Router {
	return &Router{
		reservations: reservations,
		login:        login,
		auth:         auth,
		log:          log,
	}
}

func (rt *Router) RegisterRoutes(router *httprouter.Router) {
	protected := authmiddleware.RequireUser(rt.auth, rt.log)

	rt.handle(router, http.MethodPost, "/api/login", rt.login.Login)
	rt.handle(router, http.MethodPost, "/api/reservations", protected(rt.reservations.Create))
	rt.handle(router, http.MethodPost, "/api/reservations/create", protected(rt.reservations.Create))
	rt.handle(router, http.MethodGet, "/api/cars/:id/reservations", protected(rt.reservations.ListForCar))
	rt.handle(router, http.MethodGet, "/api/users/:id/reservations", protected(rt.reservations.ListForUser))
	router.Handler(http.MethodGet, "/metrics", metrics.Handler())
}

func (rt *Router) handle(router *httprouter.Router, method, path string, h httprouter.Handle) {
	router.Handle(method, path, func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		metrics.Instrument(path, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h(w, r, ps)
		})).ServeHTTP(w, r)
	})
}

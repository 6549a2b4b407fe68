package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withRemoteAddr)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)

		// the reset path must stay reachable for an owner who can still
		// prove account ownership out-of-band even without a usable key
		r.Post("/api/vault/reset/request", h.requestReset)
		r.Post("/api/vault/reset/confirm", h.confirmReset)
	})

	// routes behind JWT authentication
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/vault/unlock", h.unlock)
		r.Post("/api/vault/lock", h.lock)
		r.Post("/api/vault/rotate", h.rotate)

		r.Post("/api/vault/entries", h.createEntry)
		r.Get("/api/vault/entries", h.listEntries)
		r.Get("/api/vault/entries/{id}", h.getEntry)
		r.Put("/api/vault/entries/{id}", h.updateEntry)
		r.Delete("/api/vault/entries/{id}", h.deleteEntry)
	})

	return router
}

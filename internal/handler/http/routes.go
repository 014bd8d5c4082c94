package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)

	router.Get("/api/health", h.health)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Get("/api/user/register", h.listUsers)
		r.Post("/api/user/login", h.login)
		r.Post("/api/totp/setup", h.totpSetup)
		r.Post("/api/totp/verify", h.totpVerify)
	})

	// routes behind bearer-token authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/user/logout", h.logout)

		r.Route("/api/entries", func(r chi.Router) {
			r.Post("/", h.createEntry)
			r.Get("/", h.listEntries)
			r.Get("/{entryID}", h.getEntry)
			r.Put("/{entryID}", h.updateEntry)
			r.Delete("/{entryID}", h.deleteEntry)
		})
	})

	return router
}

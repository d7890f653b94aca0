package billing

import (
	"net/http"

	"github.com/BrieflyAI/Briefly-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := SessionInfo{}

	// Public routes
	r.Get("/plans", PlansHandler)

	// Session-gated routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Get("/info", InfoHandler)
		r.Post("/subscribe", SubscribeHandler)
		r.Post("/cancel", CancelHandler)
		r.Post("/renew", RenewHandler)
	})

	return r
}

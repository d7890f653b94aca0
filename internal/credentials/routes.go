package credentials

import (
	"net/http"

	"github.com/BrieflyAI/Briefly-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := SessionInfo{}

	// Store accepts both internal forwards (X-Internal-Key) and signed-in
	// users, so the session is optional here and checked in the handler.
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalSessionMiddleware(sessionFetcher))
		r.Post("/", StoreHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Get("/status", StatusHandler)
		r.Delete("/", DisconnectHandler)
	})

	return r
}

package feedback

import (
	"net/http"

	"github.com/BrieflyAI/Briefly-Backend/internal/auth"
	"github.com/BrieflyAI/Briefly-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	limiter := middleware.NewRateLimiter(10, 10) // 10 submissions/min per caller

	// Submission is open to signed-out users; a session just attaches user_id.
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalSessionMiddleware(sessionFetcher))
		r.With(limiter.Middleware).Post("/", SubmitHandler)
	})

	// Admin review
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Use(middleware.AdminMiddleware(auth.RoleInfo{}))
		r.Get("/", ListHandler)
		r.Post("/{id}/read", MarkReadHandler)
	})

	return r
}

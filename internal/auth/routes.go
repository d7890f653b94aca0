package auth

import (
	"net/http"

	"github.com/BrieflyAI/Briefly-Backend/internal/credentials"
	"github.com/BrieflyAI/Briefly-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	googleClient = NewGoogleClient(LoadGoogleConfig())
	linker = credentials.NewLinker()

	r := chi.NewRouter()
	sessionFetcher := SessionInfo{}

	// Public routes
	r.Post("/register", RegisterHandler)
	r.Post("/login", LoginHandler)
	r.Get("/google/login", GoogleLoginHandler)
	r.Get("/google/callback", GoogleCallbackHandler)

	// Session-gated routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Post("/logout", LogoutHandler)
		r.Get("/me", MeHandler)
	})

	return r
}

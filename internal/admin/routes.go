package admin

import (
	"net/http"

	"github.com/BrieflyAI/Briefly-Backend/internal/auth"
	"github.com/BrieflyAI/Briefly-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(auth.SessionInfo{}))
		r.Use(middleware.AdminMiddleware(auth.RoleInfo{}))
		r.Get("/stats", StatsHandler)
		r.Get("/users", UsersHandler)
	})

	return r
}

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/BrieflyAI/Briefly-Backend/internal/admin"
	"github.com/BrieflyAI/Briefly-Backend/internal/auth"
	"github.com/BrieflyAI/Briefly-Backend/internal/billing"
	"github.com/BrieflyAI/Briefly-Backend/internal/credentials"
	"github.com/BrieflyAI/Briefly-Backend/internal/db"
	"github.com/BrieflyAI/Briefly-Backend/internal/feedback"
	"github.com/BrieflyAI/Briefly-Backend/internal/metrics"
	"github.com/BrieflyAI/Briefly-Backend/internal/middleware"
	"github.com/BrieflyAI/Briefly-Backend/internal/profiles"
	"github.com/BrieflyAI/Briefly-Backend/internal/webhooks"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	auth.Init()
	profiles.Init()
	feedback.Init()
	billing.Init()

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(metrics.Middleware)
	r.Get("/", RootHandler)
	r.Handle("/metrics", metrics.Handler())

	r.Mount("/auth", auth.SetupRoutes())
	r.Mount("/profiles", profiles.SetupRoutes())
	r.Mount("/feedback", feedback.SetupRoutes())
	r.Mount("/billing", billing.SetupRoutes())
	r.Mount("/webhooks", webhooks.SetupRoutes())
	r.Mount("/credentials", credentials.SetupRoutes())
	r.Mount("/admin", admin.SetupRoutes())

	fmt.Printf("Server listening on port :%s...\n", port)

	http.ListenAndServe("0.0.0.0:"+port, r)
}

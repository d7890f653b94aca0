package webhooks

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	// Signature verification happens in the handler. No session middleware,
	// payment providers can't carry cookies.
	r.Post("/flutterwave", FlutterwaveWebhook)

	return r
}

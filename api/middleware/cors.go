package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS reflects any origin while still allowing credentialed requests. The
// cookie-based session requires Allow-Credentials, which rules out the
// wildcard origin, so the request origin is echoed back instead.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowOriginFunc: func(_ *http.Request, _ string) bool {
			return true
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}

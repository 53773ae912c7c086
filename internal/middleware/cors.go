package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS returns a middleware that answers preflight requests for the given
// origins. "*" allows any origin.
func CORS(allowedOrigins []string) Middleware {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:       []string{"Content-Type", "Authorization", RequestIDHeader},
		ExposedHeaders:       []string{RequestIDHeader, "Retry-After"},
		MaxAge:               86400,
		OptionsSuccessStatus: http.StatusNoContent,
	})
	return c.Handler
}

// Package apicors provides CORS for the read-only JSON API, which
// authenticates with a bearer key rather than cookies.
//
// With no cookies to protect, any origin may be allowed and
// credentials are never sent.
package apicors

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

var (
	allowMethods = []string{http.MethodGet, http.MethodOptions}
	allowHeaders = []string{"Authorization", "Content-Type", "Accept"}
)

// maxAge is how long browsers may cache a preflight answer, in seconds.
const maxAge = 86400

// Middleware returns CORS middleware for API key endpoints. With no
// origins every origin is allowed ("*"); otherwise only the listed origins
// are echoed back.
//
//	r := chi.NewRouter()
//	r.Use(apicors.Middleware(allowedOrigins...))
//	r.Use(auth.APIKeyAuth(apiKey, logger))
func Middleware(allowedOrigins ...string) func(http.Handler) http.Handler {
	origins := make([]string, 0, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   allowMethods,
		AllowedHeaders:   allowHeaders,
		AllowCredentials: false,
		MaxAge:           maxAge,
	})
}

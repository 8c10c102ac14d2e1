// Package middleware provides HTTP middleware for the command API.
package middleware

import (
	"net/http"
	"strings"
)

const allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"

// CORS returns middleware that handles CORS headers. Listed origins get
// credentials, every method and whatever headers the preflight asks for.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if originAllowed(allowedOrigins, origin) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
				h.Set("Access-Control-Allow-Methods", allowedMethods)
				if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
					h.Set("Access-Control-Allow-Headers", requested)
				} else {
					h.Set("Access-Control-Allow-Headers", "Content-Type")
				}
				// Credentials only for explicit origins, never for a wildcard match.
				if origin != "" && containsExact(allowedOrigins, origin) {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return false
	}
	for _, o := range allowed {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

func containsExact(allowed []string, origin string) bool {
	for _, o := range allowed {
		if o != "*" && strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

package controller

import (
	"net/http"
	"slices"
)

// CORSOptions restrict which origins may call the API. An empty list or a
// list containing "*" allows every origin.
type CORSOptions struct {
	AllowedOrigins []string
}

func (o CORSOptions) allowAll() bool {
	return len(o.AllowedOrigins) == 0 || slices.Contains(o.AllowedOrigins, "*")
}

// WithCORS returns a middleware that sets CORS headers on every response and
// short-circuits OPTIONS preflight requests with 204 No Content. Requests from
// origins that are not allowed get no CORS headers, so browsers block them.
func WithCORS(opts CORSOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed := true
			origin := r.Header.Get("Origin")
			switch {
			case opts.allowAll():
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && slices.Contains(opts.AllowedOrigins, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			default:
				allowed = false
			}

			if allowed {
				w.Header().Set("Access-Control-Allow-Headers",
					"Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Request-Id")
				w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
			}

			// handle preflight requests quickly
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

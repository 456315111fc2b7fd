package controller

import (
	"net/http"
	"time"

	"github.com/go-faster/jx"
)

// TimeoutDetail is the detail reported when a request runs out of time.
const TimeoutDetail = "request timed out"

// WithTimeout returns a middleware that bounds next with http.TimeoutHandler.
// Requests that run out of time get 503 with a JSON {"detail": ...} body.
func WithTimeout(d time.Duration) func(http.Handler) http.Handler {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("detail")
	e.Str(TimeoutDetail)
	e.ObjEnd()
	body := e.String()

	return func(next http.Handler) http.Handler {
		th := http.TimeoutHandler(next, d, body)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			th.ServeHTTP(&timeoutWriter{ResponseWriter: w}, r)
		})
	}
}

// timeoutWriter labels the bare 503 written by http.TimeoutHandler as JSON.
type timeoutWriter struct {
	http.ResponseWriter
}

func (w *timeoutWriter) WriteHeader(code int) {
	if code == http.StatusServiceUnavailable && w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *timeoutWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

package controller

import (
	"fmt"
	"net/http"

	"riskscanner/pkg/logger"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// WithRecover returns a middleware that turns a panic in next into a 500
// response with a {"detail": ...} body. http.ErrAbortHandler is re-raised.
func WithRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler { //nolint: errorlint
				panic(p)
			}

			detail := fmt.Sprint(p)
			logger.Error(r.Context(), "Recovered from panic",
				zap.String("panic", detail),
				zap.Stack("stack"),
			)

			var e jx.Encoder
			e.ObjStart()
			e.FieldStart("detail")
			e.Str(detail)
			e.ObjEnd()

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write(e.Bytes())
		}()

		next.ServeHTTP(w, r)
	})
}

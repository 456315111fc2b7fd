package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"riskscanner/pkg/controller"

	"github.com/stretchr/testify/require"
)

func TestWithTimeout_Expired(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	rec := httptest.NewRecorder()
	controller.WithTimeout(10*time.Millisecond)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/scan", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"detail": "request timed out"}`, rec.Body.String())
}

func TestWithTimeout_InTime(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("openapi: 3.0.3\n"))
	})

	rec := httptest.NewRecorder()
	controller.WithTimeout(time.Second)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/specs/v1.yaml", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	require.Equal(t, "openapi: 3.0.3\n", rec.Body.String())
}

func TestWithTimeout_KeepsHandlerContentType(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	rec := httptest.NewRecorder()
	controller.WithTimeout(time.Second)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
}

// Package v1handler implements the HTTP handlers of the contract scanning API.
package v1handler

import (
	"context"
	"errors"
	"net/http"

	"riskscanner/internal/config"
	"riskscanner/internal/scanner"
	"riskscanner/pkg/logger"
	"riskscanner/pkg/serrors"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// RunningMessage is returned by the liveness endpoint.
const RunningMessage = "Contract Risk Scanner API is running"

// Deps holds the collaborators used by the handlers.
type Deps struct {
	Scanner scanner.Scanner
}

// Options configure request handling.
type Options struct {
	// MaxBodyBytes limits the size of a scan request body. Zero disables the limit.
	MaxBodyBytes int64
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{MaxBodyBytes: cfg.HTTP.MaxBodyBytes}
}

type Handler struct {
	deps Deps
	opts Options
}

func New(deps Deps, opts Options) *Handler {
	return &Handler{
		deps: deps,
		opts: opts,
	}
}

// Register mounts the handlers on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /scan", h.Scan)
	mux.HandleFunc("GET /{$}", h.Root)
}

// Root is the liveness endpoint.
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	e.ObjStart()
	e.FieldStart("message")
	e.Str(RunningMessage)
	e.ObjEnd()

	writeJSON(w, http.StatusOK, e.Bytes())
}

// ErrorResponse is the status code and detail message written for a failed
// request.
type ErrorResponse struct {
	StatusCode int
	Detail     string
}

// NewError maps err to the HTTP status of its semantic kind. Server side
// errors are logged.
func (h *Handler) NewError(ctx context.Context, err error) *ErrorResponse {
	var (
		status int
		detail string
	)

	var se *serrors.Error
	hasSE := errors.As(err, &se)
	switch serrors.KindOf(err) {
	case serrors.ErrValidation:
		status = http.StatusUnprocessableEntity
	case serrors.ErrPayloadTooLarge:
		status = http.StatusRequestEntityTooLarge
	case serrors.ErrNotFound:
		status = http.StatusNotFound
	case serrors.ErrUnavailable:
		status = http.StatusServiceUnavailable
	case serrors.ErrTimeout:
		status = http.StatusGatewayTimeout
	default:
		status = http.StatusInternalServerError
	}

	switch {
	case hasSE && status < http.StatusInternalServerError && se.Message() != "":
		// client errors expose the message only
		detail = se.Message()
	case err != nil:
		detail = err.Error()
	}
	if detail == "" {
		detail = http.StatusText(status)
	}

	if status >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Int("status_code", status), zap.Error(err))
	} else {
		logger.Debug(ctx, "request rejected", zap.Int("status_code", status), zap.Error(err))
	}

	return &ErrorResponse{
		StatusCode: status,
		Detail:     detail,
	}
}

// writeError writes err as a {"detail": ...} body.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)
	writeJSON(w, res.StatusCode, EncodeDetail(res.Detail))
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

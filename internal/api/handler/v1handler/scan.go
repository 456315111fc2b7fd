package v1handler

import (
	"errors"
	"io"
	"net/http"

	"riskscanner/internal/report"
	"riskscanner/pkg/logger"
	"riskscanner/pkg/serrors"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// Scan validates the request body, runs the scanner and writes the report.
// The scanner is not invoked for invalid bodies.
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	body := r.Body
	if h.opts.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, r, serrors.Wrap(serrors.ErrPayloadTooLarge, err,
				"request body exceeds %d bytes", tooLarge.Limit))

			return
		}
		h.writeError(w, r, serrors.Wrap(serrors.ErrValidation, err, "could not read request body"))

		return
	}

	req, err := DecodeScanRequest(data)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	ctx := r.Context()
	if req.URL != "" {
		source, err := NormalizeURL(req.URL)
		if err != nil {
			source = req.URL
		}
		ctx = logger.WithFields(ctx, zap.String("source_url", source))
	}

	res, err := h.deps.Scanner.Scan(ctx, req)
	if err != nil {
		h.writeError(w, r.WithContext(ctx), err)

		return
	}

	logger.Debug(ctx, "contract scanned",
		zap.Int("text_length", len(req.Text)),
		zap.Int("risks", len(res.Risks)),
		zap.Int("score", res.Score),
	)

	e := jx.GetEncoder()
	defer jx.PutEncoder(e)
	report.EncodeJSON(e, res)
	writeJSON(w, http.StatusOK, e.Bytes())
}

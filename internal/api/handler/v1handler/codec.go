package v1handler

import (
	"errors"
	"io"

	"riskscanner/pkg/domain"
	"riskscanner/pkg/serrors"

	"github.com/go-faster/jx"
)

// DecodeScanRequest parses a scan request body. "text" must be present and be
// a string; "url" may be a string, null or absent. Unknown fields are ignored
// and nothing but whitespace may follow the object. Every failure is a serrors.ErrValidation.
func DecodeScanRequest(data []byte) (*domain.ScanRequest, error) {
	var (
		req     domain.ScanRequest
		hasText bool
	)

	d := jx.DecodeBytes(data)
	if d.Next() != jx.Object {
		return nil, serrors.With(serrors.ErrValidation, "request body must be a JSON object")
	}
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "text":
			if d.Next() != jx.String {
				return serrors.With(serrors.ErrValidation, "text: must be a string")
			}
			s, err := d.Str()
			if err != nil {
				return err //nolint: wrapcheck
			}
			req.Text = s
			hasText = true
		case "url":
			switch d.Next() {
			case jx.Null:
				return d.Null()
			case jx.String:
				s, err := d.Str()
				if err != nil {
					return err //nolint: wrapcheck
				}
				req.URL = s
			default:
				return serrors.With(serrors.ErrValidation, "url: must be a string or null")
			}
		default:
			return d.Skip()
		}

		return nil
	}); err != nil {
		if serrors.KindOf(err) != nil {
			return nil, err
		}

		return nil, serrors.Wrap(serrors.ErrValidation, err, "invalid JSON body")
	}
	// the object must be the whole body
	if err := d.Skip(); !errors.Is(err, io.EOF) {
		return nil, serrors.With(serrors.ErrValidation, "invalid JSON body")
	}
	if !hasText {
		return nil, serrors.With(serrors.ErrValidation, "text: field required")
	}

	return &req, nil
}

// EncodeDetail renders the {"detail": ...} error body.
func EncodeDetail(detail string) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("detail")
	e.Str(detail)
	e.ObjEnd()

	return e.Bytes()
}

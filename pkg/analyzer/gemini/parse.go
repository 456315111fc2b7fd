package gemini

import (
	"bytes"

	"riskscanner/pkg/analyzer"
	"riskscanner/pkg/domain"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// ParseAnalysis decodes the JSON object the model was asked to produce.
// Unknown fields are ignored and a surrounding Markdown code fence is
// tolerated. Severities are copied verbatim.
func ParseAnalysis(data []byte) (*analyzer.Analysis, error) {
	var out analyzer.Analysis
	d := jx.DecodeBytes(stripFence(data))
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "summary":
			s, err := optString(d)
			if err != nil {
				return errors.Wrap(err, "summary")
			}
			out.Summary = s
		case "risks":
			if d.Next() == jx.Null {
				return d.Null()
			}

			return d.Arr(func(d *jx.Decoder) error {
				r, err := decodeRisk(d)
				if err != nil {
					return errors.Wrapf(err, "risk %d", len(out.Risks))
				}
				out.Risks = append(out.Risks, r)

				return nil
			})
		default:
			return d.Skip()
		}

		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode analysis")
	}

	return &out, nil
}

func decodeRisk(d *jx.Decoder) (domain.Risk, error) {
	var r domain.Risk
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var (
			s   string
			err error
		)
		switch key {
		case "category", "severity", "description", "original_text":
			s, err = optString(d)
			if err != nil {
				return errors.Wrap(err, key)
			}
		default:
			return d.Skip()
		}

		switch key {
		case "category":
			r.Category = s
		case "severity":
			r.Severity = domain.Severity(s)
		case "description":
			r.Description = s
		case "original_text":
			r.OriginalText = s
		}

		return nil
	})

	return r, err
}

// optString reads a string or null.
func optString(d *jx.Decoder) (string, error) {
	if d.Next() == jx.Null {
		return "", d.Null()
	}

	return d.Str()
}

// stripFence removes a ```json ... ``` wrapper if present.
func stripFence(data []byte) []byte {
	data = bytes.TrimSpace(data)
	if !bytes.HasPrefix(data, []byte("```")) {
		return data
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		data = data[i+1:]
	} else {
		return data
	}
	data = bytes.TrimSuffix(bytes.TrimSpace(data), []byte("```"))

	return bytes.TrimSpace(data)
}

package scanner

import (
	"context"
	"errors"
	"strings"

	"riskscanner/pkg/analyzer"
	"riskscanner/pkg/domain"
	"riskscanner/pkg/serrors"
)

// aiScanner delegates detection to a model-backed analyzer and applies the
// same scoring and summary rules as the rule-based scanner.
type aiScanner struct {
	client  analyzer.Client
	options Options
}

// Scan sends req.Text to the analyzer. Empty texts are answered without
// calling the model.
func (s *aiScanner) Scan(ctx context.Context, req *domain.ScanRequest) (*domain.ScanResponse, error) {
	if req == nil {
		return nil, serrors.With(serrors.ErrValidation, "scan request is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, serrors.Wrap(serrors.ErrTimeout, err, "scan aborted")
	}
	if strings.TrimSpace(req.Text) == "" {
		return s.options.report(nil, ""), nil
	}

	if s.options.AnalyzerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.options.AnalyzerTimeout)
		defer cancel()
	}

	analysis, err := s.client.Analyze(ctx, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil:
			return nil, serrors.Wrap(serrors.ErrTimeout, err, "analyzer did not answer in time")
		case serrors.KindOf(err) != nil:
			return nil, err
		default:
			return nil, serrors.Wrap(serrors.ErrUnavailable, err, "analyzer failed")
		}
	}
	if analysis == nil {
		return nil, serrors.With(serrors.ErrEvaluation, "analyzer returned no analysis")
	}

	return s.options.report(normalizeRisks(analysis.Risks), strings.TrimSpace(analysis.Summary)), nil
}

// normalizeRisks drops findings without a category, maps unknown severities to
// medium and removes exact duplicates while keeping the reported order.
func normalizeRisks(in []domain.Risk) []domain.Risk {
	out := make([]domain.Risk, 0, len(in))
	seen := make(map[domain.Risk]struct{}, len(in))
	for _, r := range in {
		r.Category = strings.TrimSpace(r.Category)
		if r.Category == "" {
			continue
		}
		sev, ok := domain.ParseSeverity(string(r.Severity))
		if !ok {
			sev = domain.SeverityMedium
		}
		r.Severity = sev

		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}

	return out
}

// NewAI creates a Scanner that asks client for findings.
func NewAI(client analyzer.Client, options Options) Scanner {
	return &aiScanner{
		client:  client,
		options: options,
	}
}

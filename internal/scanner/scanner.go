package scanner

import (
	"context"
	"time"

	"riskscanner/internal/config"
	"riskscanner/pkg/domain"
	"riskscanner/pkg/rules"
	"riskscanner/pkg/serrors"
)

// Options configure how findings are turned into a report. These settings are
// typically derived from application configuration.
type Options struct {
	// Policy computes the score from the findings.
	Policy Policy
	// Summarizer writes the report summary. Nil means Dynamic.
	Summarizer Summarizer
	// AnalyzerTimeout bounds a single call to a model-backed analyzer. Zero
	// disables the bound.
	AnalyzerTimeout time.Duration
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Policy: Policy{
			BaseScore:      cfg.Scoring.BaseScore,
			PenaltyPerRisk: cfg.Scoring.PenaltyPerRisk,
			MinScore:       cfg.Scoring.MinScore,
			MaxScore:       cfg.Scoring.MaxScore,
		},
		Summarizer:      SummarizerFor(cfg.Summary.Mode),
		AnalyzerTimeout: cfg.Analyzer.Timeout,
	}
}

// report assembles the final response for the given findings.
func (o Options) report(risks []domain.Risk, summary string) *domain.ScanResponse {
	if risks == nil {
		risks = []domain.Risk{}
	}
	if summary == "" {
		summarize := o.Summarizer
		if summarize == nil {
			summarize = Dynamic
		}
		summary = summarize(risks)
	}

	return &domain.ScanResponse{
		Summary: summary,
		Score:   o.Policy.Score(risks),
		Risks:   risks,
	}
}

// scanner is the rule-based Scanner. It applies an immutable rule registry
// and holds no other state.
type scanner struct {
	registry *rules.Registry
	options  Options
}

// Scan evaluates every registered rule against req.Text. A panic raised by a
// rule is reported as an evaluation error and no report is returned.
func (s *scanner) Scan(ctx context.Context, req *domain.ScanRequest) (res *domain.ScanResponse, err error) {
	if req == nil {
		return nil, serrors.With(serrors.ErrValidation, "scan request is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, serrors.Wrap(serrors.ErrTimeout, err, "scan aborted")
	}

	defer func() {
		if p := recover(); p != nil {
			res = nil
			err = serrors.With(serrors.ErrEvaluation, "rule evaluation failed: %v", p)
		}
	}()

	return s.options.report(s.registry.Evaluate(req.Text), ""), nil
}

// New creates a rule-based Scanner backed by registry. A nil registry means
// the built-in rules.
func New(registry *rules.Registry, options Options) Scanner {
	if registry == nil {
		registry = rules.Baseline()
	}

	return &scanner{
		registry: registry,
		options:  options,
	}
}

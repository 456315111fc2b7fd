// Package analyzer defines the abstraction over model-backed contract
// analysis providers.
package analyzer

import (
	"context"
	"riskscanner/pkg/domain"
)

// Analysis is the answer of a provider for one contract text.
type Analysis struct {
	// Summary is the provider's own summary; it may be empty.
	Summary string
	// Risks are the clauses the provider flagged, in the order it reported them.
	Risks []domain.Risk
}

// Client is the abstraction for analysis providers.
//
//go:generate mockgen -package mockanalyzer -source=interface.go -destination=mock/mockanalyzer.go *
type Client interface {
	// Analyze asks the provider to flag risky clauses in text.
	Analyze(ctx context.Context, text string) (*Analysis, error)
	// Close releases the resources held by the client.
	Close() error
}

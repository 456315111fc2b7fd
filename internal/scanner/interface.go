package scanner

import (
	"context"
	"riskscanner/pkg/domain"
)

// Scanner turns contract text into a risk report. Implementations hold no
// per-request state and are safe for concurrent use.
//
//go:generate mockgen -package mockscanner -source=interface.go -destination=mock/mockscanner.go *
type Scanner interface {
	// Scan evaluates req and returns a complete report, or an error and no
	// report at all.
	Scan(ctx context.Context, req *domain.ScanRequest) (*domain.ScanResponse, error)
}

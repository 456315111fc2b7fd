package domain

import "strings"

// Severity is a coarse-grained risk level for a finding.
type Severity string

const (
	// SeverityHigh marks clauses that remove significant rights from the signer.
	SeverityHigh Severity = "high"
	// SeverityMedium marks clauses that deserve a careful read.
	SeverityMedium Severity = "medium"
	// SeverityLow marks clauses that are worth knowing about.
	SeverityLow Severity = "low"
)

// Severities lists every valid severity from the most to the least severe.
func Severities() []Severity {
	return []Severity{SeverityHigh, SeverityMedium, SeverityLow}
}

// Valid reports whether s is one of the enumerated severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return true
	default:
		return false
	}
}

// ParseSeverity converts a case-insensitive severity name. The second return
// value is false when the name is not a known severity.
func ParseSeverity(s string) (Severity, bool) {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))

	return sev, sev.Valid()
}

// Risk is a single detected contractual risk item. Values are immutable once
// created and are produced at most once per matching rule per scan.
type Risk struct {
	// Category is a free-form label such as "Liability".
	Category string `json:"category"`
	// Severity is the enumerated risk level.
	Severity Severity `json:"severity"`
	// Description is a human-readable explanation of the risk.
	Description string `json:"description"`
	// OriginalText is the matched span or the literal trigger string.
	OriginalText string `json:"original_text"`
}

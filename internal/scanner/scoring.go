package scanner

import (
	"fmt"
	"strings"

	"riskscanner/pkg/domain"
)

// Policy turns a list of findings into a score:
//
//	score = clamp(BaseScore - PenaltyPerRisk*len(risks), MinScore, MaxScore)
type Policy struct {
	BaseScore      int
	PenaltyPerRisk int
	MinScore       int
	MaxScore       int
}

// DefaultPolicy returns the stock policy {85, 10} clamped to [0, 100].
func DefaultPolicy() Policy {
	return Policy{BaseScore: 85, PenaltyPerRisk: 10, MinScore: 0, MaxScore: 100}
}

// Score returns the score for the given findings. It depends only on how many
// findings there are.
func (p Policy) Score(risks []domain.Risk) int {
	score := p.BaseScore - len(risks)*p.PenaltyPerRisk

	return max(p.MinScore, min(p.MaxScore, score))
}

// Summarizer writes the summary sentence of a report.
type Summarizer func(risks []domain.Risk) string

// StaticSummary is the fixed sentence used when summaries are not derived from
// findings.
const StaticSummary = "This contract contains standard terms, " +
	"but watch out for specific liability and dispute resolution clauses."

// Static always returns StaticSummary.
func Static(_ []domain.Risk) string { return StaticSummary }

// Dynamic describes the number of findings, their severities and the affected
// categories.
func Dynamic(risks []domain.Risk) string {
	if len(risks) == 0 {
		return "No risky clauses were detected. " +
			"Automated checks only cover known patterns, so read the full contract before signing."
	}

	counts := make(map[domain.Severity]int, 3)
	var categories []string
	seen := make(map[string]struct{}, len(risks))
	for _, r := range risks {
		counts[r.Severity]++
		if _, ok := seen[r.Category]; !ok {
			seen[r.Category] = struct{}{}
			categories = append(categories, r.Category)
		}
	}

	var parts []string
	for _, sev := range domain.Severities() {
		if n := counts[sev]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, sev))
		}
	}

	noun := "clauses"
	if len(risks) == 1 {
		noun = "clause"
	}

	return fmt.Sprintf("Found %d potentially risky %s (%s). Review the %s terms before signing.",
		len(risks), noun, strings.Join(parts, ", "), joinWords(categories))
}

// SummarizerFor maps a configured summary mode to its Summarizer.
func SummarizerFor(mode string) Summarizer {
	if mode == "static" {
		return Static
	}

	return Dynamic
}

// joinWords renders ["a"] as "a", ["a","b"] as "a and b" and longer lists as
// "a, b and c".
func joinWords(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	default:
		return strings.Join(words[:len(words)-1], ", ") + " and " + words[len(words)-1]
	}
}

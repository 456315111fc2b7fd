// Package rules holds the risk detection rules and the registry that applies
// them, in registration order, to a contract text.
package rules

import (
	"riskscanner/pkg/domain"
	"riskscanner/pkg/serrors"
)

// Registry is an ordered, immutable collection of rules. It is safe for
// concurrent use.
type Registry struct {
	rules []Rule
}

// New validates rs and returns a registry that evaluates them in the given
// order. Rule names must be unique.
func New(rs ...Rule) (*Registry, error) {
	seen := make(map[string]struct{}, len(rs))
	for i, r := range rs {
		if r == nil {
			return nil, serrors.With(serrors.ErrValidation, "rule at position %d is nil", i)
		}
		name := r.Name()
		if name == "" {
			return nil, serrors.With(serrors.ErrValidation, "rule at position %d has no name", i)
		}
		if _, ok := seen[name]; ok {
			return nil, serrors.With(serrors.ErrValidation, "duplicate rule %q", name)
		}
		seen[name] = struct{}{}
	}

	return &Registry{rules: append([]Rule(nil), rs...)}, nil
}

// With returns a new registry holding the receiver's rules followed by rs.
// The receiver is left untouched.
func (r *Registry) With(rs ...Rule) (*Registry, error) {
	all := make([]Rule, 0, len(r.rules)+len(rs))
	all = append(all, r.rules...)
	all = append(all, rs...)

	return New(all...)
}

// Rules returns a copy of the registered rules in evaluation order.
func (r *Registry) Rules() []Rule {
	return append([]Rule(nil), r.rules...)
}

// Len returns the number of registered rules.
func (r *Registry) Len() int { return len(r.rules) }

// Evaluate runs every rule against text and returns the findings in
// registration order. Each rule contributes at most one finding. The result is
// never nil.
func (r *Registry) Evaluate(text string) []domain.Risk {
	doc := NewDocument(text)
	risks := make([]domain.Risk, 0, len(r.rules))
	for _, rule := range r.rules {
		if risk, ok := rule.Match(doc); ok {
			risks = append(risks, risk)
		}
	}

	return risks
}

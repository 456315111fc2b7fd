package rules

import "riskscanner/pkg/domain"

// BaselineRules returns the built-in rule set in its canonical order.
func BaselineRules() []Rule {
	return []Rule{
		NewKeywordRule("arbitration", "arbitration", Finding{
			Category: "Dispute Resolution",
			Severity: domain.SeverityHigh,
			Description: "Forced arbitration clause detected. " +
				"This may waive your right to a jury trial.",
		}),
		NewKeywordRule("indemnification", "indemnification", Finding{
			Category:    "Liability",
			Severity:    domain.SeverityMedium,
			Description: "Indemnification clause. You may be liable for third-party claims.",
		}),
		NewKeywordRule("automatic-renewal", "automatic renewal", Finding{
			Category:    "Financial",
			Severity:    domain.SeverityMedium,
			Description: "Automatic renewal clause. Contract renews automatically unless cancelled.",
		}),
	}
}

// Baseline returns a registry holding only the built-in rules.
func Baseline() *Registry {
	r, err := New(BaselineRules()...)
	if err != nil {
		// built-in names are unique
		panic(err)
	}

	return r
}

package rules

import (
	"errors"
	"fmt"
	"os"

	"riskscanner/pkg/domain"
	"riskscanner/pkg/serrors"

	"gopkg.in/yaml.v3"
)

// ruleSpec is one entry of a YAML rule pack. Exactly one of Keyword and
// Pattern must be set.
type ruleSpec struct {
	Name        string `yaml:"name"`
	Keyword     string `yaml:"keyword"`
	Pattern     string `yaml:"pattern"`
	Category    string `yaml:"category"`
	Severity    string `yaml:"severity"`
	Description string `yaml:"description"`
}

type packSpec struct {
	Rules []ruleSpec `yaml:"rules"`
}

// Parse decodes a YAML rule pack:
//
//	rules:
//	  - name: limitation-of-liability
//	    keyword: limitation of liability
//	    category: Liability
//	    severity: high
//	    description: Caps what you can recover if the other party is at fault.
//	  - name: unilateral-changes
//	    pattern: 'may (modify|change) these terms at any time'
//	    category: Terms
//	    severity: medium
//	    description: The other party can change the contract without your consent.
func Parse(data []byte) ([]Rule, error) {
	var pack packSpec
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, serrors.Wrap(serrors.ErrValidation, err, "could not decode rule pack")
	}

	out := make([]Rule, 0, len(pack.Rules))
	for i, spec := range pack.Rules {
		r, err := spec.build()
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrValidation, err, "rule %d (%q)", i, spec.Name)
		}
		out = append(out, r)
	}

	return out, nil
}

// LoadFile reads and parses the rule pack stored at path.
func LoadFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read rule pack: %w", err)
	}

	return Parse(data)
}

func (s ruleSpec) build() (Rule, error) {
	if s.Name == "" {
		return nil, errors.New("name is required")
	}
	if s.Category == "" {
		return nil, errors.New("category is required")
	}
	sev, ok := domain.ParseSeverity(s.Severity)
	if !ok {
		return nil, fmt.Errorf("unknown severity %q", s.Severity)
	}
	finding := Finding{Category: s.Category, Severity: sev, Description: s.Description}

	switch {
	case s.Keyword != "" && s.Pattern != "":
		return nil, errors.New("keyword and pattern are mutually exclusive")
	case s.Keyword != "":
		return NewKeywordRule(s.Name, s.Keyword, finding), nil
	case s.Pattern != "":
		r, err := NewPatternRule(s.Name, s.Pattern, finding)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}

		return r, nil
	default:
		return nil, errors.New("one of keyword or pattern is required")
	}
}

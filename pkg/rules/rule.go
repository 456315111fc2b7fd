package rules

import (
	"regexp"
	"strings"

	"riskscanner/pkg/domain"
)

// Document is the view of a contract text handed to every rule. Lower is
// computed once per scan so that rules do not repeat the normalization.
type Document struct {
	Raw   string
	Lower string
}

// NewDocument builds the case-normalized view of text.
func NewDocument(text string) Document {
	return Document{Raw: text, Lower: strings.ToLower(text)}
}

// span returns the part of Raw that corresponds to [start, end) in Lower, or
// fallback when lower-casing shifted byte offsets and the raw bytes at that
// range are no longer a case variant of fallback.
func (d Document) span(start, end int, fallback string) string {
	if start < 0 || start > end || end > len(d.Raw) {
		return fallback
	}
	if raw := d.Raw[start:end]; strings.EqualFold(raw, fallback) {
		return raw
	}

	return fallback
}

// Rule is a stateless unit of detection logic. Match must be a pure function
// of the document so that one Rule can serve concurrent scans.
type Rule interface {
	// Name uniquely identifies the rule inside a registry.
	Name() string
	// Match returns the finding for doc, if any.
	Match(doc Document) (domain.Risk, bool)
}

// Finding is the template a rule copies into every risk it emits.
type Finding struct {
	Category    string
	Severity    domain.Severity
	Description string
}

func (f Finding) risk(originalText string) domain.Risk {
	return domain.Risk{
		Category:     f.Category,
		Severity:     f.Severity,
		Description:  f.Description,
		OriginalText: originalText,
	}
}

// KeywordRule fires when its trigger appears anywhere in the text, ignoring
// case.
type KeywordRule struct {
	name    string
	trigger string
	finding Finding
}

// NewKeywordRule returns a rule that matches trigger as a case-insensitive
// substring.
func NewKeywordRule(name, trigger string, finding Finding) *KeywordRule {
	return &KeywordRule{
		name:    name,
		trigger: strings.ToLower(trigger),
		finding: finding,
	}
}

// Name implements Rule.
func (r *KeywordRule) Name() string { return r.name }

// Trigger returns the lower-cased substring the rule looks for.
func (r *KeywordRule) Trigger() string { return r.trigger }

// Finding returns the template used for emitted risks.
func (r *KeywordRule) Finding() Finding { return r.finding }

// Match implements Rule. The risk carries the first occurrence in its original
// casing.
func (r *KeywordRule) Match(doc Document) (domain.Risk, bool) {
	if r.trigger == "" {
		return domain.Risk{}, false
	}
	idx := strings.Index(doc.Lower, r.trigger)
	if idx < 0 {
		return domain.Risk{}, false
	}

	return r.finding.risk(doc.span(idx, idx+len(r.trigger), r.trigger)), true
}

// PatternRule fires when its regular expression matches the raw text.
type PatternRule struct {
	name    string
	pattern string
	re      *regexp.Regexp
	finding Finding
}

// NewPatternRule compiles pattern as a case-insensitive expression.
func NewPatternRule(name, pattern string, finding Finding) (*PatternRule, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	return &PatternRule{name: name, pattern: pattern, re: re, finding: finding}, nil
}

// Name implements Rule.
func (r *PatternRule) Name() string { return r.name }

// Pattern returns the expression as it was given to NewPatternRule.
func (r *PatternRule) Pattern() string { return r.pattern }

// Finding returns the template used for emitted risks.
func (r *PatternRule) Finding() Finding { return r.finding }

// Match implements Rule.
func (r *PatternRule) Match(doc Document) (domain.Risk, bool) {
	loc := r.re.FindStringIndex(doc.Raw)
	if loc == nil {
		return domain.Risk{}, false
	}

	return r.finding.risk(doc.Raw[loc[0]:loc[1]]), true
}

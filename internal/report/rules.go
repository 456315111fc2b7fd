package report

import (
	"io"

	"riskscanner/pkg/rules"

	"github.com/olekukonko/tablewriter"
)

// describe returns the kind, trigger and finding of a rule. Rules of unknown
// types only report their name.
func describe(r rules.Rule) (kind, trigger string, finding rules.Finding) {
	switch r := r.(type) {
	case *rules.KeywordRule:
		return "keyword", r.Trigger(), r.Finding()
	case *rules.PatternRule:
		return "pattern", r.Pattern(), r.Finding()
	default:
		return "custom", "", rules.Finding{}
	}
}

// WriteRules renders the registered rules as a table, in evaluation order.
func WriteRules(w io.Writer, rs []rules.Rule) error {
	table := tablewriter.NewWriter(w)
	table.Header("Name", "Kind", "Trigger", "Category", "Severity")
	for _, r := range rs {
		kind, trigger, finding := describe(r)
		if err := table.Append(r.Name(), kind, trigger, finding.Category, string(finding.Severity)); err != nil {
			return err //nolint: wrapcheck
		}
	}

	return table.Render() //nolint: wrapcheck
}

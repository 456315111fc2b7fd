// Package report renders scan reports for humans and machines: JSON through
// jx, terminal text through lipgloss and rule listings through tablewriter.
package report

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"riskscanner/pkg/domain"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-faster/jx"
)

// Band labels a score the way the browser extension colors it.
type Band string

const (
	BandGood Band = "good"
	BandFair Band = "fair"
	BandPoor Band = "poor"
)

// BandOf returns the band of score: >=80 good, >=60 fair, else poor.
func BandOf(score int) Band {
	switch {
	case score >= 80:
		return BandGood
	case score >= 60:
		return BandFair
	default:
		return BandPoor
	}
}

var ( //nolint: gochecknoglobals
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	bandStyles = map[Band]lipgloss.Style{
		BandGood: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		BandFair: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		BandPoor: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
	severityStyles = map[domain.Severity]lipgloss.Style{
		domain.SeverityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		domain.SeverityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		domain.SeverityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	}
	quoteStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("240"))
	markStyle  = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("9"))
)

// EncodeJSON writes res in the wire format of the scan endpoint.
func EncodeJSON(e *jx.Encoder, res *domain.ScanResponse) {
	e.ObjStart()
	e.FieldStart("summary")
	e.Str(res.Summary)
	e.FieldStart("score")
	e.Int(res.Score)
	e.FieldStart("risks")
	e.ArrStart()
	for _, r := range res.Risks {
		e.ObjStart()
		e.FieldStart("category")
		e.Str(r.Category)
		e.FieldStart("severity")
		e.Str(string(r.Severity))
		e.FieldStart("description")
		e.Str(r.Description)
		e.FieldStart("original_text")
		e.Str(r.OriginalText)
		e.ObjEnd()
	}
	e.ArrEnd()
	e.ObjEnd()
}

// WriteJSON writes res as one JSON document followed by a newline.
func WriteJSON(w io.Writer, res *domain.ScanResponse) error {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	EncodeJSON(e, res)
	_, err := w.Write(append(e.Bytes(), '\n'))

	return err //nolint: wrapcheck
}

// WriteText writes a terminal friendly rendering of res.
func WriteText(w io.Writer, res *domain.ScanResponse) error {
	band := BandOf(res.Score)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render("Score:"),
		bandStyles[band].Render(fmt.Sprintf("%d (%s)", res.Score, band)))
	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render("Summary:"), res.Summary)

	if len(res.Risks) == 0 {
		b.WriteString("\nNo risky clauses found.\n")
	} else {
		fmt.Fprintf(&b, "\n%s\n", titleStyle.Render(fmt.Sprintf("Risks (%d):", len(res.Risks))))
		for i, r := range res.Risks {
			fmt.Fprintf(&b, "%d. %s %s\n   %s\n", i+1,
				severityStyles[r.Severity].Render("["+strings.ToUpper(string(r.Severity))+"]"),
				r.Category, r.Description)
			if r.OriginalText != "" {
				fmt.Fprintf(&b, "   %s\n", quoteStyle.Render(fmt.Sprintf("%q", r.OriginalText)))
			}
		}
	}

	_, err := io.WriteString(w, b.String())

	return err //nolint: wrapcheck
}

// minHighlightLength skips quotes too short to be meaningful on their own.
const minHighlightLength = 6

// Highlight marks every case-insensitive occurrence of the risks' original
// text inside text. Quotes shorter than six characters are ignored.
func Highlight(text string, risks []domain.Risk) string {
	var quoted []string
	for _, r := range risks {
		if len(r.OriginalText) >= minHighlightLength {
			quoted = append(quoted, regexp.QuoteMeta(r.OriginalText))
		}
	}
	if len(quoted) == 0 {
		return text
	}

	re := regexp.MustCompile("(?i)" + strings.Join(quoted, "|"))

	return re.ReplaceAllStringFunc(text, func(m string) string { return markStyle.Render(m) })
}

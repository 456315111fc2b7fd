package report_test

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"riskscanner/internal/report"
	"riskscanner/pkg/domain"
	"riskscanner/pkg/rules"

	"github.com/stretchr/testify/require"
)

var ansi = regexp.MustCompile("\x1b\\[[0-9;]*m")

func sampleReport() *domain.ScanResponse {
	return &domain.ScanResponse{
		Summary: "Found 1 potentially risky clause.",
		Score:   75,
		Risks: []domain.Risk{{
			Category:     "Dispute Resolution",
			Severity:     domain.SeverityHigh,
			Description:  `Forced "arbitration" clause detected.`,
			OriginalText: "Arbitration",
		}},
	}
}

func TestBandOf(t *testing.T) {
	require.Equal(t, report.BandGood, report.BandOf(100))
	require.Equal(t, report.BandGood, report.BandOf(80))
	require.Equal(t, report.BandFair, report.BandOf(79))
	require.Equal(t, report.BandFair, report.BandOf(60))
	require.Equal(t, report.BandPoor, report.BandOf(59))
	require.Equal(t, report.BandPoor, report.BandOf(0))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, sampleReport()))

	require.True(t, strings.HasSuffix(buf.String(), "}\n"))
	require.JSONEq(t, `{
		"summary": "Found 1 potentially risky clause.",
		"score": 75,
		"risks": [{
			"category": "Dispute Resolution",
			"severity": "high",
			"description": "Forced \"arbitration\" clause detected.",
			"original_text": "Arbitration"
		}]
	}`, buf.String())

	buf.Reset()
	require.NoError(t, report.WriteJSON(&buf, &domain.ScanResponse{Summary: "s", Score: 85, Risks: []domain.Risk{}}))
	require.JSONEq(t, `{"summary": "s", "score": 85, "risks": []}`, buf.String())
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, sampleReport()))

	out := buf.String()
	require.Contains(t, out, "75 (fair)")
	require.Contains(t, out, "Found 1 potentially risky clause.")
	require.Contains(t, out, "[HIGH]")
	require.Contains(t, out, "Dispute Resolution")
	require.Contains(t, out, `"Arbitration"`)

	buf.Reset()
	require.NoError(t, report.WriteText(&buf, &domain.ScanResponse{Summary: "s", Score: 85}))
	require.Contains(t, buf.String(), "85 (good)")
	require.Contains(t, buf.String(), "No risky clauses found.")
}

func TestHighlight(t *testing.T) {
	risks := []domain.Risk{
		{OriginalText: "arbitration"},
		{OriginalText: "fee"}, // too short
	}

	got := report.Highlight("ARBITRATION applies. A fee applies.", risks)
	require.Equal(t, "ARBITRATION applies. A fee applies.", ansi.ReplaceAllString(got, ""))
	require.True(t, strings.HasSuffix(got, " applies. A fee applies."))

	require.Equal(t, "plain", report.Highlight("plain", nil))
}

func TestWriteRules(t *testing.T) {
	pattern, err := rules.NewPatternRule("unilateral-changes", `may (modify|change) these terms`, rules.Finding{
		Category: "Terms", Severity: domain.SeverityMedium,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteRules(&buf, append(rules.BaselineRules(), pattern)))

	out := buf.String()
	for _, want := range []string{"arbitration", "automatic renewal", "keyword", "pattern", "Terms", "medium"} {
		require.Contains(t, out, want)
	}
	require.Less(t, strings.Index(out, "indemnification"), strings.Index(out, "unilateral-changes"))
}

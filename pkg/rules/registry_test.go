package rules_test

import (
	"sync"
	"testing"
	"unicode/utf8"

	"riskscanner/pkg/domain"
	"riskscanner/pkg/rules"
	"riskscanner/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func categories(risks []domain.Risk) []string {
	out := make([]string, 0, len(risks))
	for _, r := range risks {
		out = append(out, r.Category)
	}

	return out
}

func TestBaseline_Evaluate(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "no special clauses",
			text: "This agreement has no special clauses.",
			want: []string{},
		},
		{
			name: "arbitration only",
			text: "Disputes are subject to binding arbitration.",
			want: []string{"Dispute Resolution"},
		},
		{
			name: "indemnification and automatic renewal",
			text: "Party A agrees to indemnification and automatic renewal terms.",
			want: []string{"Liability", "Financial"},
		},
		{
			name: "upper case triggers",
			text: "ARBITRATION and INDEMNIFICATION apply.",
			want: []string{"Dispute Resolution", "Liability"},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
		{
			name: "trigger order in text does not change report order",
			text: "Automatic Renewal applies. Indemnification applies. Arbitration applies.",
			want: []string{"Dispute Resolution", "Liability", "Financial"},
		},
		{
			name: "repeated trigger yields a single finding",
			text: "arbitration, arbitration and more arbitration",
			want: []string{"Dispute Resolution"},
		},
	}

	reg := rules.Baseline()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := reg.Evaluate(tc.text)
			require.NotNil(t, got)
			require.Equal(t, tc.want, categories(got))
		})
	}
}

func TestBaseline_CaseInsensitive(t *testing.T) {
	reg := rules.Baseline()
	for _, text := range []string{"ARBITRATION", "Arbitration", "arbitration", "aRbItRaTiOn"} {
		got := reg.Evaluate(text)
		require.Len(t, got, 1, text)
		require.Equal(t, "Dispute Resolution", got[0].Category)
		require.Equal(t, domain.SeverityHigh, got[0].Severity)
		require.Equal(t, text, got[0].OriginalText, "original casing should be kept")
	}
}

func TestBaseline_Findings(t *testing.T) {
	got := rules.Baseline().Evaluate("automatic renewal, indemnification, arbitration")
	require.Equal(t, []domain.Risk{
		{
			Category:     "Dispute Resolution",
			Severity:     domain.SeverityHigh,
			Description:  "Forced arbitration clause detected. This may waive your right to a jury trial.",
			OriginalText: "arbitration",
		},
		{
			Category:     "Liability",
			Severity:     domain.SeverityMedium,
			Description:  "Indemnification clause. You may be liable for third-party claims.",
			OriginalText: "indemnification",
		},
		{
			Category:     "Financial",
			Severity:     domain.SeverityMedium,
			Description:  "Automatic renewal clause. Contract renews automatically unless cancelled.",
			OriginalText: "automatic renewal",
		},
	}, got)
}

func TestKeywordRule_FallsBackToTriggerWhenOffsetsShift(t *testing.T) {
	r := rules.NewKeywordRule("arb", "Arbitration", rules.Finding{Category: "X", Severity: domain.SeverityLow})

	// "İ" lower-cases to the shorter "i", so the lower view is shorter than
	// the raw text and offsets before the match no longer line up.
	risk, ok := r.Match(rules.NewDocument("İİ ARBITRATION"))
	require.True(t, ok)
	require.Equal(t, "arbitration", risk.OriginalText)

	// A shift after the match leaves the raw slice usable.
	risk, ok = r.Match(rules.NewDocument("ARBITRATION İ"))
	require.True(t, ok)
	require.Equal(t, "ARBITRATION", risk.OriginalText)
}

func TestBaseline_OffsetsShiftWithEqualLengths(t *testing.T) {
	// "Ⱥ" grows from 2 to 3 bytes and the Kelvin sign shrinks from 3 to 1,
	// so both views have the same length while the offsets differ.
	text := "ȺȺ arbitration \u212A"
	require.Len(t, rules.NewDocument(text).Lower, len(text))

	got := rules.Baseline().Evaluate(text)
	require.Len(t, got, 1)
	require.Equal(t, "arbitration", got[0].OriginalText)
	require.True(t, utf8.ValidString(got[0].OriginalText))
}

func TestKeywordRule_EmptyTriggerNeverMatches(t *testing.T) {
	r := rules.NewKeywordRule("empty", "", rules.Finding{Category: "X", Severity: domain.SeverityLow})
	_, ok := r.Match(rules.NewDocument("anything"))
	require.False(t, ok)
}

func TestPatternRule(t *testing.T) {
	r, err := rules.NewPatternRule("changes", `may (modify|change) these terms`, rules.Finding{
		Category: "Terms",
		Severity: domain.SeverityMedium,
	})
	require.NoError(t, err)

	risk, ok := r.Match(rules.NewDocument("We MAY CHANGE these terms at any time."))
	require.True(t, ok)
	require.Equal(t, "MAY CHANGE these terms", risk.OriginalText)
	require.Equal(t, "Terms", risk.Category)

	_, ok = r.Match(rules.NewDocument("These terms are fixed."))
	require.False(t, ok)

	_, err = rules.NewPatternRule("broken", `(`, rules.Finding{})
	require.Error(t, err)
}

func TestNew_Validation(t *testing.T) {
	f := rules.Finding{Category: "X", Severity: domain.SeverityLow}

	_, err := rules.New(rules.NewKeywordRule("a", "a", f), rules.NewKeywordRule("a", "b", f))
	require.ErrorIs(t, err, serrors.ErrValidation)

	_, err = rules.New(rules.NewKeywordRule("", "a", f))
	require.ErrorIs(t, err, serrors.ErrValidation)

	_, err = rules.New(nil)
	require.ErrorIs(t, err, serrors.ErrValidation)

	reg, err := rules.New()
	require.NoError(t, err)
	require.Empty(t, reg.Evaluate("arbitration"))
}

func TestRegistry_WithKeepsReceiver(t *testing.T) {
	base := rules.Baseline()
	extra := rules.NewKeywordRule("liability-cap", "limitation of liability", rules.Finding{
		Category: "Liability",
		Severity: domain.SeverityHigh,
	})

	ext, err := base.With(extra)
	require.NoError(t, err)
	require.Equal(t, 3, base.Len())
	require.Equal(t, 4, ext.Len())
	require.Equal(t, "liability-cap", ext.Rules()[3].Name())

	_, err = ext.With(extra)
	require.ErrorIs(t, err, serrors.ErrValidation)
}

func TestRegistry_RulesReturnsCopy(t *testing.T) {
	reg := rules.Baseline()
	rs := reg.Rules()
	rs[0] = nil
	require.NotNil(t, reg.Rules()[0])
}

func TestRegistry_Idempotent(t *testing.T) {
	reg := rules.Baseline()
	text := "Arbitration, indemnification and automatic renewal."
	require.Equal(t, reg.Evaluate(text), reg.Evaluate(text))
}

func TestRegistry_ConcurrentEvaluate(t *testing.T) {
	reg := rules.Baseline()
	text := "Binding arbitration and automatic renewal."
	want := reg.Evaluate(text)

	results := make([][]domain.Risk, 32)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = reg.Evaluate(text)
		}()
	}
	wg.Wait()

	for _, got := range results {
		require.Equal(t, want, got)
	}
}

package gemini_test

import (
	"context"
	"errors"
	"testing"

	"riskscanner/pkg/analyzer/gemini"
	"riskscanner/pkg/domain"
	"riskscanner/pkg/serrors"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	resp  *genai.GenerateContentResponse
	err   error
	parts []genai.Part
}

func (f *fakeGenerator) GenerateContent(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.parts = parts

	return f.resp, f.err
}

func textResponse(chunks ...string) *genai.GenerateContentResponse {
	parts := make([]genai.Part, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, genai.Text(c))
	}

	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func TestClient_Analyze(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse(
		`{"summary": "One risky clause.", "risks": [`,
		`{"category": "Arbitration", "severity": "high", "description": "d", "original_text": "binding arbitration"}]}`,
	)}
	c := gemini.NewFromGenerator(gen)

	got, err := c.Analyze(context.Background(), "All disputes go to binding arbitration.")
	require.NoError(t, err)
	require.Equal(t, "One risky clause.", got.Summary)
	require.Equal(t, []domain.Risk{{
		Category:     "Arbitration",
		Severity:     domain.SeverityHigh,
		Description:  "d",
		OriginalText: "binding arbitration",
	}}, got.Risks)

	require.Len(t, gen.parts, 1)
	require.Equal(t, genai.Text("All disputes go to binding arbitration."), gen.parts[0])
	require.NoError(t, c.Close())
}

func TestClient_Analyze_Errors(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{name: "transport error", gen: &fakeGenerator{err: errors.New("connection reset")}},
		{name: "no candidates", gen: &fakeGenerator{resp: &genai.GenerateContentResponse{}}},
		{name: "no content", gen: &fakeGenerator{resp: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
		}}},
		{name: "not json", gen: &fakeGenerator{resp: textResponse("I cannot help with that.")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := gemini.NewFromGenerator(tt.gen).Analyze(context.Background(), "text")
			require.Error(t, err)
			require.Nil(t, got)
			require.Equal(t, serrors.ErrUnavailable, serrors.KindOf(err))
		})
	}
}

func TestNew_RequiresAPIKey(t *testing.T) {
	c, err := gemini.New(context.Background(), gemini.Options{})
	require.Error(t, err)
	require.Nil(t, c)
}

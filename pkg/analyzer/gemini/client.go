// Package gemini provides an analyzer.Client implementation backed by the
// Google Gemini API.
package gemini

import (
	"context"
	"strings"

	"riskscanner/pkg/analyzer"
	"riskscanner/pkg/serrors"

	"github.com/go-faster/errors"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is used when Options.Model is empty.
const DefaultModel = "gemini-1.5-flash"

const systemPrompt = `You review contracts on behalf of the person asked to sign them.
Flag clauses that put that person at risk: forced arbitration, indemnification, automatic renewal,
limitation of liability, unilateral changes, data sharing, termination penalties and similar terms.
Answer with one JSON object and nothing else:
{"summary": string, "risks": [{"category": string, "severity": "high"|"medium"|"low",
"description": string, "original_text": string}]}
"original_text" must quote the clause exactly as it appears in the contract.
Report each clause once. Use an empty "risks" array when nothing is risky.`

// Generator is the subset of *genai.GenerativeModel used by the client.
type Generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Options configure the Gemini client.
type Options struct {
	// APIKey is the Gemini API key. Required.
	APIKey string
	// Model is the model name, e.g. "gemini-1.5-flash".
	Model string
}

// Client sends contract texts to Gemini and parses the JSON answer. It is safe
// for concurrent use.
type Client struct {
	client *genai.Client // client owns the connection; nil when built from a Generator
	model  Generator
}

// Ensure Client conforms to the analyzer.Client interface at compile time.
var _ analyzer.Client = (*Client)(nil)

// New connects to Gemini with the given options.
func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	name := opts.Model
	if name == "" {
		name = DefaultModel
	}

	c, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, errors.Wrap(err, "create gemini client")
	}

	model := c.GenerativeModel(name)
	model.SetTemperature(0)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}

	return &Client{client: c, model: model}, nil
}

// NewFromGenerator builds a client around an existing generator.
func NewFromGenerator(g Generator) *Client {
	return &Client{model: g}
}

// Analyze sends text to the model and parses its answer. Transport failures
// and unusable answers are reported as serrors.ErrUnavailable.
func (c *Client) Analyze(ctx context.Context, text string) (*analyzer.Analysis, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(text))
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, errors.Wrap(err, "generate content"), "gemini request failed")
	}

	answer, err := responseText(resp)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "gemini returned no answer")
	}

	analysis, err := ParseAnalysis([]byte(answer))
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "gemini returned an unusable answer")
	}

	return analysis, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}

	return c.client.Close() //nolint: wrapcheck
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("no candidates")
	}
	cand := resp.Candidates[0]
	if cand.Content == nil {
		return "", errors.Errorf("candidate has no content (finish reason %v)", cand.FinishReason)
	}

	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if b.Len() == 0 {
		return "", errors.New("candidate has no text")
	}

	return b.String(), nil
}

// Package agent holds the LLM-backed steps of the authoring pipeline:
// profiling, standards alignment, knowledge-graph enrichment, design
// option generation, and refinement. Every agent degrades to a
// deterministic fallback when the model call fails, so the pipeline
// always produces a usable result.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Request is one generation call: a system instruction plus the user
// prompt. Model overrides the client default when set.
type Request struct {
	System      string
	Prompt      string
	Model       string
	Temperature float32
}

// Client generates model completions. Responses are expected to be
// JSON documents matching the schema described in the system
// instruction.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeminiClient talks to the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a client bound to the given default model.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Generate runs a single completion and returns the raw response text.
func (c *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(req.Temperature),
	}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("model %s returned an empty response", model)
	}
	return text, nil
}

// decodeJSON unmarshals a model response into out, tolerating the
// markdown fences some models wrap around JSON output.
func decodeJSON(raw string, out any) error {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	if err := json.Unmarshal([]byte(s), out); err != nil {
		return fmt.Errorf("decode model response: %w", err)
	}
	return nil
}

// UnavailableClient satisfies Client when no API key is configured.
// Every call errors, which routes each agent to its fallback result.
type UnavailableClient struct{}

// Generate always fails.
func (UnavailableClient) Generate(context.Context, Request) (string, error) {
	return "", fmt.Errorf("no model client configured")
}

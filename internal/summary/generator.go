package summary

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const promptInstruction = "You are an Agile PM assistant. Using the structured context below, " +
	"produce a crisp sprint summary for the selected sprint only. " +
	"Include totals, at-risk counts, key risks with reasons, and 2-3 actions. " +
	"Use the verdict field to explain whether the sprint timeline was MET, MISSED, or is ONGOING. " +
	"If it is MISSED, explicitly name the items in missed_items and how many days each is overdue. " +
	"Keep it under ~250 words.\n\nCONTEXT:\n"

// Generator produces the sprint summary text from a prompt context.
// Implementations are fallible and may phrase identical input differently
// between calls; callers must be ready to substitute Fallback.
type Generator interface {
	Generate(ctx context.Context, pc PromptContext) (string, error)
}

// GeminiGenerator generates summaries through the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a generator for the given API key and model.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate performs a single blocking generation call.
func (g *GeminiGenerator) Generate(ctx context.Context, pc PromptContext) (string, error) {
	prompt := promptInstruction + pc.JSON()
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini generation failed: %w", err)
	}
	return strings.TrimSpace(result.Text()), nil
}

// Produce runs the generator and recovers to the deterministic fallback on
// failure or empty output. The second return reports whether the result is
// degraded. A nil generator (no API key configured) goes straight to the
// fallback without being treated as degraded.
func Produce(ctx context.Context, gen Generator, pc PromptContext) (text string, degraded bool, err error) {
	if gen == nil {
		return Fallback(pc), false, nil
	}
	text, genErr := gen.Generate(ctx, pc)
	if genErr != nil || strings.TrimSpace(text) == "" {
		return Fallback(pc), true, genErr
	}
	return text, false, nil
}

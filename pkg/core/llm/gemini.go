package llm

import (
	"context"
	"fmt"
	"iter"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider implements the Provider interface for Google's Gemini models.
type GeminiProvider struct {
	Model  string
	client *genai.Client
}

// Ensure interface compliance
var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider creates the GenAI client once; it is reused for every request.
func NewGeminiProvider(ctx context.Context, apiKey string, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiProvider{Model: model, client: client}, nil
}

func (p *GeminiProvider) GenerateStream(ctx context.Context, prompt string, options map[string]interface{}) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		config := &genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(optFloat(options, OptionTemperature, 0))),
			ResponseMIMEType: "application/json",
		}
		model := optString(options, OptionModel, p.Model)

		for resp, err := range p.client.Models.GenerateContentStream(ctx, model, genai.Text(prompt), config) {
			if err != nil {
				yield("", fmt.Errorf("gemini stream failed: %w", err))
				return
			}
			if !yield(resp.Text(), nil) {
				return
			}
		}
	}
}

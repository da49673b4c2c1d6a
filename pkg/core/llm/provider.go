package llm

import (
	"context"
	"iter"
)

// Provider is the interface for all streaming LLM providers.
// GenerateStream sends prompt as a single user message and yields text
// fragments in the order the upstream delivers them. A non-nil error ends
// the sequence.
type Provider interface {
	GenerateStream(ctx context.Context, prompt string, options map[string]interface{}) iter.Seq2[string, error]
}

// Option keys understood by every provider.
const (
	OptionModel       = "model"
	OptionTemperature = "temperature"
)

func optString(options map[string]interface{}, key, fallback string) string {
	if val, ok := options[key].(string); ok && val != "" {
		return val
	}
	return fallback
}

func optFloat(options map[string]interface{}, key string, fallback float64) float64 {
	switch val := options[key].(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	}
	return fallback
}

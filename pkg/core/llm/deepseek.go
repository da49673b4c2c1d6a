package llm

import "github.com/openai/openai-go/option"

const (
	DeepSeekBaseURL      = "https://api.deepseek.com/"
	DefaultDeepSeekModel = "deepseek-chat"
)

// NewDeepSeekProvider returns an OpenAI-compatible provider pointed at DeepSeek.
func NewDeepSeekProvider(apiKey string, model string) *OpenAIProvider {
	if model == "" {
		model = DefaultDeepSeekModel
	}
	return NewOpenAIProvider(apiKey, model, option.WithBaseURL(DeepSeekBaseURL))
}

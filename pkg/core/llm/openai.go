package llm

import (
	"context"
	"fmt"
	"iter"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider streams chat completions from OpenAI or any
// OpenAI-compatible endpoint.
type OpenAIProvider struct {
	Model  string
	client openai.Client
}

// Ensure interface compliance
var _ Provider = (*OpenAIProvider)(nil)

// NewOpenAIProvider builds a provider with SDK retries disabled; a failed
// call is reported to the caller as-is.
func NewOpenAIProvider(apiKey string, model string, opts ...option.RequestOption) *OpenAIProvider {
	if model == "" {
		model = DefaultOpenAIModel
	}
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	reqOpts = append(reqOpts, opts...)

	return &OpenAIProvider{
		Model:  model,
		client: openai.NewClient(reqOpts...),
	}
}

func (p *OpenAIProvider) GenerateStream(ctx context.Context, prompt string, options map[string]interface{}) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		params := openai.ChatCompletionNewParams{
			Model: openai.ChatModel(optString(options, OptionModel, p.Model)),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
			Temperature: openai.Float(optFloat(options, OptionTemperature, 0)),
		}

		stream := p.client.Chat.Completions.NewStreaming(ctx, params)
		defer stream.Close()

		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 {
				continue
			}
			if !yield(chunk.Choices[0].Delta.Content, nil) {
				return
			}
		}
		if err := stream.Err(); err != nil {
			yield("", fmt.Errorf("openai stream failed: %w", err))
		}
	}
}

// Package bootstrap builds the long-lived process state shared by the API
// server and the CLI: providers, the agent manager, the prompt template and
// the projection generator.
package bootstrap

import (
	"context"
	"fmt"

	"investment_projection/pkg/core/agent"
	"investment_projection/pkg/core/config"
	"investment_projection/pkg/core/llm"
	"investment_projection/pkg/core/projection"
	"investment_projection/pkg/core/prompt"
)

// Providers constructs a client for every provider that has a credential.
func Providers(ctx context.Context, cfg *config.Config) (map[string]llm.Provider, error) {
	providers := make(map[string]llm.Provider)

	if cfg.OpenAIAPIKey != "" {
		providers["openai"] = llm.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.Models.Providers["openai"].Model)
	}
	if cfg.DeepSeekAPIKey != "" {
		providers["deepseek"] = llm.NewDeepSeekProvider(cfg.DeepSeekAPIKey, cfg.Models.Providers["deepseek"].Model)
	}
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.Models.Providers["gemini"].Model)
		if err != nil {
			return nil, err
		}
		providers["gemini"] = gemini
	}

	if _, ok := providers[cfg.ProjectionProvider()]; !ok {
		return nil, fmt.Errorf("provider %s has no credential", cfg.ProjectionProvider())
	}
	return providers, nil
}

// Template loads and validates the projection prompt.
func Template(cfg *config.Config) (*prompt.Template, error) {
	return prompt.LoadFile(cfg.PromptTemplatePath, prompt.ProjectionPlaceholders)
}

// Manager builds the provider manager from configuration.
func Manager(ctx context.Context, cfg *config.Config) (*agent.Manager, error) {
	providers, err := Providers(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return agent.NewManager(cfg.Models, providers), nil
}

// Generator loads the template and binds it to upstream.
func Generator(cfg *config.Config, upstream projection.Upstream) (*projection.Generator, error) {
	tmpl, err := Template(cfg)
	if err != nil {
		return nil, err
	}
	return projection.NewGenerator(tmpl, upstream, cfg.UpstreamTimeout)
}

package agent

import (
	"context"
	"fmt"
	"iter"
	"sort"

	"investment_projection/pkg/core/llm"
)

// AgentProjection is the agent type used by the projection endpoint.
const AgentProjection = "projection"

// DefaultProvider is used when the models file names no provider.
const DefaultProvider = "openai"

type Config struct {
	ActiveProvider string                    `yaml:"active_provider"`
	Providers      map[string]ProviderConfig `yaml:"providers"`
	Agents         map[string]AgentConfig    `yaml:"agents"`
}

// ProviderConfig selects the model for a provider. Sampling temperature is
// not configurable: every call runs at 0.
type ProviderConfig struct {
	Model string `yaml:"model"`
}

type AgentConfig struct {
	Provider    string `yaml:"provider"` // Optional override
	Description string `yaml:"description"`
}

// Manager resolves which provider serves an agent type. It is read-only
// after construction.
type Manager struct {
	config    Config
	providers map[string]llm.Provider
}

func NewManager(config Config, providers map[string]llm.Provider) *Manager {
	return &Manager{
		config:    config,
		providers: providers,
	}
}

// ResolveProviderName returns the provider name configured for agentType.
func (c Config) ResolveProviderName(agentType string) string {
	// 1. Agent-specific override
	if agentConfig, ok := c.Agents[agentType]; ok && agentConfig.Provider != "" {
		return agentConfig.Provider
	}
	// 2. Global active provider
	if c.ActiveProvider != "" {
		return c.ActiveProvider
	}
	// 3. Fallback
	return DefaultProvider
}

// GetProvider returns the provider for agentType along with its name.
func (m *Manager) GetProvider(agentType string) (string, llm.Provider, error) {
	name := m.config.ResolveProviderName(agentType)
	p, ok := m.providers[name]
	if !ok {
		return name, nil, fmt.Errorf("provider %s not registered", name)
	}
	return name, p, nil
}

// Options returns the call options for a provider: its configured model and
// a temperature of 0.
func (m *Manager) Options(providerName string) map[string]interface{} {
	opts := map[string]interface{}{
		llm.OptionTemperature: 0.0,
	}
	if pc, ok := m.config.Providers[providerName]; ok && pc.Model != "" {
		opts[llm.OptionModel] = pc.Model
	}
	return opts
}

// StreamPrompt sends prompt to the provider configured for agentType.
func (m *Manager) StreamPrompt(ctx context.Context, agentType string, prompt string) iter.Seq2[string, error] {
	name, provider, err := m.GetProvider(agentType)
	if err != nil {
		return func(yield func(string, error) bool) {
			yield("", err)
		}
	}
	return provider.GenerateStream(ctx, prompt, m.Options(name))
}

func (m *Manager) GetActiveProvider() string {
	return m.config.ResolveProviderName(AgentProjection)
}

// Model returns the configured model for a provider, or "" for the provider default.
func (m *Manager) Model(providerName string) string {
	return m.config.Providers[providerName].Model
}

// Available lists the registered provider names in sorted order.
func (m *Manager) Available() []string {
	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

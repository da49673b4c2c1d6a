// Package config resolves process configuration from .env, the environment
// and the models file. Everything is read once at startup.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"investment_projection/pkg/core/agent"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	OpenAIAPIKey   string `env:"OPENAI_API_KEY"`
	GeminiAPIKey   string `env:"GEMINI_API_KEY"`
	DeepSeekAPIKey string `env:"DEEPSEEK_API_KEY"`

	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PORT" envDefault:"5000"`

	PromptTemplatePath string `env:"PROMPT_TEMPLATE_PATH" envDefault:"resources/prompts/investment_projection_prompt_monthly.txt"`
	ModelsConfigPath   string `env:"MODELS_CONFIG_PATH" envDefault:"config/models.yaml"`

	UpstreamTimeout    time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	MaxInterestsLength int           `env:"MAX_INTERESTS_LENGTH" envDefault:"0"`

	LogMode string `env:"LOG_MODE" envDefault:"dev"`

	// Filled from ModelsConfigPath, not the environment.
	Models agent.Config
}

// Load reads the configuration and validates it.
func Load() (*Config, error) {
	cfg, err := Read()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read resolves .env (optional), the environment and the models file
// without checking credentials.
func Read() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	models, err := LoadModels(cfg.ModelsConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.Models = models
	return &cfg, nil
}

// LoadModels reads the provider/agent mapping. A missing file yields defaults.
func LoadModels(path string) (agent.Config, error) {
	cfg := agent.Config{ActiveProvider: agent.DefaultProvider}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read models config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse models config %s: %w", path, err)
	}
	return cfg, nil
}

// ProjectionProvider is the provider name that will serve projections.
func (c *Config) ProjectionProvider() string {
	return c.Models.ResolveProviderName(agent.AgentProjection)
}

// APIKeyFor returns the credential for a provider name.
func (c *Config) APIKeyFor(provider string) string {
	switch provider {
	case "openai":
		return c.OpenAIAPIKey
	case "gemini":
		return c.GeminiAPIKey
	case "deepseek":
		return c.DeepSeekAPIKey
	}
	return ""
}

// Validate fails when the projection provider has no credential.
func (c *Config) Validate() error {
	provider := c.ProjectionProvider()
	switch provider {
	case "openai", "gemini", "deepseek":
	default:
		return fmt.Errorf("unknown provider %q in %s", provider, c.ModelsConfigPath)
	}
	if c.APIKeyFor(provider) == "" {
		return fmt.Errorf("%s not found in environment variables", apiKeyEnv[provider])
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	return nil
}

var apiKeyEnv = map[string]string{
	"openai":   "OPENAI_API_KEY",
	"gemini":   "GEMINI_API_KEY",
	"deepseek": "DEEPSEEK_API_KEY",
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures the generation backend.
type Config struct {
	// Provider is one of "gemini", "openai", "anthropic", "openrouter", "mock".
	Provider string `yaml:"provider"`

	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Retry      RetryConfig      `yaml:"retry"`

	// Timeout bounds one generation action, retries included.
	Timeout time.Duration `yaml:"timeout"`
}

type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// RetryConfig configures exponential backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig targets Gemini Flash with three attempts and a 30s budget.
func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ApplyEnv overlays QUIZCRAFT_* environment variables onto cfg.
func ApplyEnv(cfg Config) Config {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	set(&cfg.Provider, "QUIZCRAFT_LLM_PROVIDER")
	set(&cfg.Gemini.APIKey, "QUIZCRAFT_GEMINI_API_KEY")
	set(&cfg.Gemini.Model, "QUIZCRAFT_GEMINI_MODEL")
	set(&cfg.OpenAI.APIKey, "QUIZCRAFT_OPENAI_API_KEY")
	set(&cfg.OpenAI.Model, "QUIZCRAFT_OPENAI_MODEL")
	set(&cfg.OpenAI.BaseURL, "QUIZCRAFT_OPENAI_BASE_URL")
	set(&cfg.Anthropic.APIKey, "QUIZCRAFT_ANTHROPIC_API_KEY")
	set(&cfg.Anthropic.Model, "QUIZCRAFT_ANTHROPIC_MODEL")
	set(&cfg.OpenRouter.APIKey, "QUIZCRAFT_OPENROUTER_API_KEY")
	set(&cfg.OpenRouter.Model, "QUIZCRAFT_OPENROUTER_MODEL")

	if v := os.Getenv("QUIZCRAFT_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		} else {
			fmt.Fprintf(os.Stderr, "warning: ignoring QUIZCRAFT_LLM_TIMEOUT=%q: %v\n", v, err)
		}
	}
	return cfg
}

// Discover fills in a provider from the vendors' standard API key variables
// when cfg has no usable key. Probe order: Gemini, OpenAI, Anthropic,
// OpenRouter. It reports whether a usable provider was found.
func Discover(cfg Config) (Config, bool) {
	if cfg.Validate() == nil {
		return cfg, true
	}

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}
	return cfg, false
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	var key, envName string
	switch c.Provider {
	case "gemini":
		key, envName = c.Gemini.APIKey, "QUIZCRAFT_GEMINI_API_KEY"
	case "openai":
		key, envName = c.OpenAI.APIKey, "QUIZCRAFT_OPENAI_API_KEY"
	case "anthropic":
		key, envName = c.Anthropic.APIKey, "QUIZCRAFT_ANTHROPIC_API_KEY"
	case "openrouter":
		key, envName = c.OpenRouter.APIKey, "QUIZCRAFT_OPENROUTER_API_KEY"
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", envName, c.Provider)
	}
	return nil
}

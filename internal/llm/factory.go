package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/quizcraft/internal/store"
)

// NewProvider builds the configured backend and wraps it as
// caller → retry → logging → base. A nil recorder disables call logging.
func NewProvider(ctx context.Context, cfg Config, recorder store.CallRecorder) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if recorder != nil {
		base = WithLogging(base, cfg.Provider, recorder)
	}
	return WithRetry(base, cfg.Retry), nil
}

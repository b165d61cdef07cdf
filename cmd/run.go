package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizcraft/internal/app"
	"github.com/abhisek/quizcraft/internal/catalog"
	"github.com/abhisek/quizcraft/internal/config"
	"github.com/abhisek/quizcraft/internal/generate"
	"github.com/abhisek/quizcraft/internal/llm"
	"github.com/abhisek/quizcraft/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	opts := app.Options{Load: catalogLoader(cfg)}

	provider, err := buildProvider(ctx, cfg, st.Calls())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI generation will be unavailable.")
	} else {
		opts.Generator = generate.NewService(provider, generatorConfig(cfg))
		opts.Model = provider.ModelID()
	}

	return app.Run(opts)
}

// buildProvider discovers credentials and builds the configured provider.
func buildProvider(ctx context.Context, cfg config.Config, recorder store.CallRecorder) (llm.Provider, error) {
	llmCfg, ok := llm.Discover(cfg.LLM)
	if !ok {
		return nil, llmCfg.Validate()
	}
	return llm.NewProvider(ctx, llmCfg, recorder)
}

func generatorConfig(cfg config.Config) generate.Config {
	gc := generate.DefaultConfig()
	if cfg.LLM.Timeout > 0 {
		gc.Timeout = cfg.LLM.Timeout
	}
	return gc
}

// catalogLoader resolves the configured source lazily so the TUI can show
// its loading screen while the fetch runs.
func catalogLoader(cfg config.Config) func(ctx context.Context) (*catalog.Catalog, error) {
	return func(ctx context.Context) (*catalog.Catalog, error) {
		return loadCatalog(ctx, cfg)
	}
}

func loadCatalog(ctx context.Context, cfg config.Config) (*catalog.Catalog, error) {
	src, err := catalog.ParseSource(cfg.Catalog, cfg.SourceOptions())
	if err != nil {
		return nil, err
	}
	if c, ok := src.(io.Closer); ok {
		defer c.Close()
	}
	return catalog.Load(ctx, src)
}

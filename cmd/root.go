package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizcraft/internal/config"
	"github.com/abhisek/quizcraft/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizcraft",
	Short: "Personality quizzes in your terminal",
	Long:  "Quizcraft: play personality quizzes and write your own, with optional AI-generated questions and results.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides QUIZCRAFT_CONFIG env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Quiz catalog: embedded, a file, an http(s) URL or a redis:// URL")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZCRAFT_DB env var)")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file, then the environment, then the
// persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	required := path != ""
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return config.Config{}, err
	}

	if v, _ := cmd.Flags().GetString("catalog"); v != "" {
		cfg.Catalog = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DB = v
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db or the config file
// (highest priority), then QUIZCRAFT_DB, then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

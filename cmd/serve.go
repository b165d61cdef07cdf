package cmd

import (
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizcraft/internal/catalogserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz catalog over HTTP",
	Long: `Serve the loaded catalog read-only. /quiz.json returns the whole
document in the same shape the catalog loader reads, so another quizcraft
can point --catalog at it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Serve.Addr = addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		c, err := loadCatalog(ctx, cfg)
		if err != nil {
			return err
		}

		h := catalogserver.NewHandler(c, catalogserver.Options{CORSOrigins: cfg.Serve.CORSOrigins})
		log.Printf("serving %d quizzes on %s (catalog=%s)", c.Len(), cfg.Serve.Addr, cfg.Catalog)
		if err := catalogserver.ListenAndServe(ctx, cfg.Serve.Addr, h); err != nil {
			return err
		}
		log.Printf("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides serve.addr in config)")
}

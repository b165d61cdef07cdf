package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizcraft/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and export the quiz catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List quizzes in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalogFromFlags(cmd)
		if err != nil {
			return err
		}
		if c.Len() == 0 {
			fmt.Println("No quizzes found.")
			return nil
		}

		fmt.Printf("%-24s  %-40s  %9s  %7s  %5s\n", "ID", "Title", "Questions", "Results", "Max")
		fmt.Println(strings.Repeat("─", 93))
		for _, q := range c.List() {
			fmt.Printf("%-24s  %-40s  %9d  %7d  %5d\n",
				truncate(q.ID, 24), truncate(q.Title, 40), len(q.Questions), len(q.Results), q.MaxScore())
		}
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one quiz with its questions and results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalogFromFlags(cmd)
		if err != nil {
			return err
		}
		q, err := c.Get(args[0])
		if err != nil {
			return fmt.Errorf("%w: %s", err, args[0])
		}

		sep := strings.Repeat("─", 60)
		fmt.Printf("ID:        %s\n", q.ID)
		fmt.Printf("Title:     %s\n", q.Title)
		fmt.Printf("Max score: %d\n", q.MaxScore())

		fmt.Println()
		fmt.Println(sep)
		fmt.Println("QUESTIONS")
		fmt.Println(sep)
		for i, question := range q.Questions {
			fmt.Printf("%d. %s\n", i+1, question.Text)
			for _, a := range question.Answers {
				fmt.Printf("     [%d] %s\n", a.Points, a.Text)
			}
		}

		fmt.Println(sep)
		fmt.Println("RESULTS")
		fmt.Println(sep)
		for _, r := range q.Results {
			fmt.Printf("≤ %-4d %s\n", r.Threshold, r.Title)
			fmt.Printf("       %s\n", r.Description)
			if r.ImageURL != "" {
				fmt.Printf("       %s\n", r.ImageURL)
			}
		}
		return nil
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the catalog document to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		c, err := catalogFromFlags(cmd)
		if err != nil {
			return err
		}

		switch format {
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(c)
		case "yaml":
			return catalog.EncodeYAML(os.Stdout, c)
		default:
			return fmt.Errorf("unknown format %q (want json or yaml)", format)
		}
	},
}

var catalogPushCmd = &cobra.Command{
	Use:   "push <redis-url>",
	Short: "Store the catalog in Redis so other instances can load it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c, err := loadCatalog(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		src, err := catalog.ParseSource(args[0], cfg.SourceOptions())
		if err != nil {
			return err
		}
		rs, ok := src.(catalog.RedisSource)
		if !ok {
			return fmt.Errorf("%s is not a redis:// URL", args[0])
		}
		defer rs.Close()

		if err := rs.Publish(cmd.Context(), c); err != nil {
			return fmt.Errorf("publish catalog: %w", err)
		}
		fmt.Printf("Stored %d quizzes in %s\n", c.Len(), rs)
		return nil
	},
}

func catalogFromFlags(cmd *cobra.Command) (*catalog.Catalog, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return loadCatalog(cmd.Context(), cfg)
}

func init() {
	catalogExportCmd.Flags().StringP("format", "f", "json", "Output format: json or yaml")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	catalogCmd.AddCommand(catalogPushCmd)
}

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizcraft/internal/draft"
	"github.com/abhisek/quizcraft/internal/generate"
	"github.com/abhisek/quizcraft/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Preview generated quiz content (nothing is saved)",
	Long: `Ask the configured LLM for a quiz name, a batch of questions or a
batch of results, and print what the creator screen would receive.

The output is checked the same way the creator checks it, so a schema or
content problem shows up here as an error.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringP("kind", "k", "questions", "What to generate: category, questions or results")
	generateCmd.Flags().StringP("category", "c", "", "Quiz name the content is for")
	generateCmd.Flags().IntP("questions", "q", 4, "Question count the results should be pitched against")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	kindFlag, _ := cmd.Flags().GetString("kind")
	category, _ := cmd.Flags().GetString("category")
	questions, _ := cmd.Flags().GetInt("questions")

	kind, err := generate.ParseKind(kindFlag)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var recorder store.CallRecorder
	if dbPath, err := resolveDBPath(cfg); err != nil {
		warnf("call log disabled: %v", err)
	} else if st, err := store.Open(dbPath); err != nil {
		warnf("call log disabled: %v", err)
	} else {
		defer st.Close()
		recorder = st.Calls()
	}

	provider, err := buildProvider(ctx, cfg, recorder)
	if err != nil {
		return fmt.Errorf("LLM provider not configured: %w", err)
	}
	svc := generate.NewService(provider, generatorConfig(cfg))

	req := generate.Request{Kind: kind, CategoryName: category, QuestionCount: questions}
	fmt.Printf("Generating %s with %s...\n\n", kind, provider.ModelID())

	content, err := svc.Generate(ctx, req)
	if err != nil {
		var ve *draft.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("cannot generate %s: %w", kind, ve)
		}
		return err
	}

	scratch := draft.New()
	scratch.CategoryName = category
	if err := content.Apply(scratch); err != nil {
		return fmt.Errorf("generated content rejected: %w", err)
	}

	printContent(content)
	return nil
}

func printContent(c *generate.Content) {
	switch c.Kind {
	case generate.KindCategory:
		fmt.Println(c.Category)
	case generate.KindQuestions:
		for i, q := range c.Questions {
			fmt.Printf("%d. %s\n", i+1, q.Text)
			for _, a := range q.Answers {
				fmt.Printf("     [%d] %s\n", a.Points, a.Text)
			}
		}
	case generate.KindResults:
		for _, r := range c.Results {
			fmt.Printf("≤ %-4d %s\n", r.Threshold, r.Title)
			fmt.Printf("       %s\n", r.Description)
		}
	}
}

package generate

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizcraft/internal/draft"
)

const systemPrompt = `You write short, playful personality quizzes.
Questions are situational or about preferences, never about facts, and have no right answer.
Each answer option reflects a different personality trait.
Write in plain language without emoji.`

func categoryPrompt() string {
	return "Suggest one topic for a personality quiz, four words or fewer, " +
		`for example "Your working style" or "What kind of traveler are you?". ` +
		"Reply with the topic only."
}

func questionsPrompt(req Request, cfg Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "For a personality quiz titled %q, write %d situational or preference questions.\n",
		strings.TrimSpace(req.CategoryName), cfg.QuestionsPerBatch)
	fmt.Fprintf(&b, "Each question has exactly %d answers that reflect different traits.\n", draft.AnswersPerQuestion)
	fmt.Fprintf(&b, "Give each answer points from 1 to %d; use each value once per question.\n", draft.MaxPointsPerAnswer)
	if req.QuestionCount > 0 {
		fmt.Fprintf(&b, "The quiz already has %d questions, so do not repeat common ones.\n", req.QuestionCount)
	}
	return b.String()
}

func resultsPrompt(req Request, cfg Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "For a personality quiz titled %q with %d questions, write %d personality results.\n",
		strings.TrimSpace(req.CategoryName), req.QuestionCount, cfg.ResultsPerBatch)
	fmt.Fprintf(&b, "Scores range from %d to %d.\n", req.QuestionCount, req.MaxScore())
	b.WriteString("Each result has a score_threshold, a title and a description of the personality.\n")
	fmt.Fprintf(&b, "A score maps to the lowest threshold at or above it, so the highest threshold should be %d.\n", req.MaxScore())
	return b.String()
}

// cleanCategory reduces a free-text reply to a single title line.
func cleanCategory(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = strings.Trim(strings.TrimSpace(s), `"'*`+"`")
	return strings.TrimSpace(s)
}

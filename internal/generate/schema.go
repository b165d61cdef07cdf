package generate

import (
	"github.com/abhisek/quizcraft/internal/draft"
	"github.com/abhisek/quizcraft/internal/llm"
)

// QuestionsSchema constrains a questions batch. Arrays are wrapped in an
// object because structured-output APIs require an object at the root.
var QuestionsSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "Personality quiz questions, each with scored answer options",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "A situational or preference question",
						},
						"answers": map[string]any{
							"type":     "array",
							"minItems": draft.AnswersPerQuestion,
							"maxItems": draft.AnswersPerQuestion,
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"text": map[string]any{
										"type":        "string",
										"description": "An answer reflecting one personality trait",
									},
									"points": map[string]any{
										"type":    "integer",
										"minimum": 1,
										"maximum": draft.MaxPointsPerAnswer,
									},
								},
								"required":             []any{"text", "points"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []any{"question", "answers"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// ResultsSchema constrains a results batch.
var ResultsSchema = &llm.Schema{
	Name:        "quiz-results",
	Description: "Personality result buckets keyed by score threshold",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"results": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"score_threshold": map[string]any{
							"type":        "integer",
							"minimum":     1,
							"description": "Highest score that maps to this result",
						},
						"title": map[string]any{
							"type":        "string",
							"description": "Short name for the personality type",
						},
						"description": map[string]any{
							"type":        "string",
							"description": "Two or three sentences describing the personality",
						},
					},
					"required":             []any{"score_threshold", "title", "description"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"results"},
		"additionalProperties": false,
	},
}

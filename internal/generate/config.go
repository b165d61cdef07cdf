package generate

import "time"

// Config tunes the LLM-backed Service.
type Config struct {
	// QuestionsPerBatch is how many questions one request asks for.
	QuestionsPerBatch int

	// ResultsPerBatch is how many result buckets one request asks for.
	ResultsPerBatch int

	MaxTokens   int
	Temperature float64

	// Timeout bounds one Generate call, provider retries included. Zero
	// means no extra deadline.
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		QuestionsPerBatch: 2,
		ResultsPerBatch:   3,
		MaxTokens:         2048,
		Temperature:       0.9,
		Timeout:           30 * time.Second,
	}
}

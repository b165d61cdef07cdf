package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/semaphore"

	"github.com/abhisek/quizcraft/internal/draft"
	"github.com/abhisek/quizcraft/internal/llm"
	"github.com/abhisek/quizcraft/internal/quiz"
)

// Service is the LLM-backed Generator. At most one request runs at a time;
// a second concurrent call fails fast with ErrAlreadyInProgress.
type Service struct {
	provider llm.Provider
	cfg      Config
	inflight *semaphore.Weighted
}

// Compile-time interface check.
var _ Generator = (*Service)(nil)

func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{
		provider: provider,
		cfg:      cfg,
		inflight: semaphore.NewWeighted(1),
	}
}

// Generate runs one generation request. Questions and results need a
// category name; results additionally need at least one question so the
// score range is known. Those precondition failures are draft validation
// errors, everything else wraps ErrGenerationFailed.
func (s *Service) Generate(ctx context.Context, req Request) (*Content, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	if !s.inflight.TryAcquire(1) {
		return nil, ErrAlreadyInProgress
	}
	defer s.inflight.Release(1)

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, req.Kind.String())

	var (
		content *Content
		err     error
	)
	switch req.Kind {
	case KindQuestions:
		content, err = s.questions(ctx, req)
	case KindResults:
		content, err = s.results(ctx, req)
	default:
		content, err = s.category(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	return content, nil
}

func checkRequest(req Request) error {
	if req.Kind == KindCategory {
		return nil
	}
	if strings.TrimSpace(req.CategoryName) == "" {
		return draft.ErrMissingCategoryName
	}
	if req.Kind == KindResults && req.QuestionCount <= 0 {
		return draft.ErrNoQuestions
	}
	return nil
}

func (s *Service) request(prompt string, schema *llm.Schema) llm.Request {
	r := llm.UserPrompt(systemPrompt, prompt)
	r.Schema = schema
	r.MaxTokens = s.cfg.MaxTokens
	r.Temperature = s.cfg.Temperature
	return r
}

func (s *Service) category(ctx context.Context) (*Content, error) {
	resp, err := s.provider.Generate(ctx, s.request(categoryPrompt(), nil))
	if err != nil {
		return nil, err
	}
	name := cleanCategory(resp.Text())
	if name == "" {
		return nil, errors.New("empty category name")
	}
	return &Content{Kind: KindCategory, Category: name}, nil
}

type questionsOutput struct {
	Questions []quiz.Question `json:"questions"`
}

func (s *Service) questions(ctx context.Context, req Request) (*Content, error) {
	resp, err := s.provider.Generate(ctx, s.request(questionsPrompt(req, s.cfg), QuestionsSchema))
	if err != nil {
		return nil, err
	}
	var out questionsOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return &Content{Kind: KindQuestions, Questions: out.Questions}, nil
}

type resultsOutput struct {
	Results []quiz.Result `json:"results"`
}

func (s *Service) results(ctx context.Context, req Request) (*Content, error) {
	resp, err := s.provider.Generate(ctx, s.request(resultsPrompt(req, s.cfg), ResultsSchema))
	if err != nil {
		return nil, err
	}
	var out resultsOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	return &Content{Kind: KindResults, Results: out.Results}, nil
}

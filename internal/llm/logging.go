package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/quizcraft/internal/store"
)

// LoggingProvider records every call it forwards in the call log.
type LoggingProvider struct {
	inner    Provider
	provider string
	recorder store.CallRecorder
}

// WithLogging wraps p so each Generate is recorded under providerName.
func WithLogging(p Provider, providerName string, recorder store.CallRecorder) Provider {
	return &LoggingProvider{inner: p, provider: providerName, recorder: recorder}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	call := store.LLMCall{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: describeRequest(req),
	}
	if resp != nil {
		call.InputTokens = resp.Usage.InputTokens
		call.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			call.Model = resp.Model
		}
		call.ResponseBody = string(resp.Content)
	}
	if err != nil {
		call.ErrorMessage = err.Error()
	}

	// A logging failure never fails the generation itself.
	if logErr := l.recorder.RecordLLMCall(context.WithoutCancel(ctx), call); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record LLM call: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// describeRequest renders req the way `quizcraft llm view` prints it.
func describeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const callsTable = "llm_calls"

// LLMCall captures a single LLM request as seen by the logging decorator.
type LLMCall struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMCallRecord is a persisted LLMCall.
type LLMCallRecord struct {
	LLMCall
	ID        int
	Timestamp time.Time
}

// LLMUsageStats aggregates calls sharing a purpose or model.
type LLMUsageStats struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// QueryOpts filters and paginates call queries.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int       // id > After
	Before  int       // id < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string
}

// CallRecorder receives LLM calls. The LLM logging decorator depends on this
// rather than on *CallLog so tests can capture calls in memory.
type CallRecorder interface {
	RecordLLMCall(ctx context.Context, call LLMCall) error
}

// CallLog is an append-only log of LLM calls.
type CallLog struct {
	db  *sql.DB
	now func() time.Time
}

var _ CallRecorder = (*CallLog)(nil)

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (l *CallLog) clock() time.Time {
	if l.now != nil {
		return l.now()
	}
	return time.Now()
}

// RecordLLMCall appends a call to the log.
func (l *CallLog) RecordLLMCall(ctx context.Context, c LLMCall) error {
	query, args := builder().Insert(callsTable).
		Columns("created_at", "provider", "model", "purpose", "input_tokens",
			"output_tokens", "latency_ms", "success", "error_message",
			"request_body", "response_body").
		Values(l.clock().UnixMilli(), c.Provider, c.Model, c.Purpose, c.InputTokens,
			c.OutputTokens, c.LatencyMs, c.Success, c.ErrorMessage,
			c.RequestBody, c.ResponseBody).
		Query()

	if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM call: %w", err)
	}
	return nil
}

var recordColumns = []string{
	"id", "created_at", "provider", "model", "purpose", "input_tokens",
	"output_tokens", "latency_ms", "success", "error_message",
	"request_body", "response_body",
}

// List returns calls newest first.
func (l *CallLog) List(ctx context.Context, opts QueryOpts) ([]LLMCallRecord, error) {
	sel := builder().Select(recordColumns...).
		From(entsql.Table(callsTable)).
		OrderBy(entsql.Desc("id"))

	if opts.After > 0 {
		sel.Where(entsql.GT("id", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("id", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("created_at", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("created_at", opts.To.UnixMilli()))
	}
	if opts.Purpose != "" {
		sel.Where(entsql.EQ("purpose", opts.Purpose))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM calls: %w", err)
	}
	defer rows.Close()

	var out []LLMCallRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Get returns the call with the given id, or nil if it does not exist.
func (l *CallLog) Get(ctx context.Context, id int) (*LLMCallRecord, error) {
	query, args := builder().Select(recordColumns...).
		From(entsql.Table(callsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get LLM call: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	rec, err := scanRecord(rows)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func scanRecord(rows *sql.Rows) (LLMCallRecord, error) {
	var (
		rec       LLMCallRecord
		createdAt int64
	)
	err := rows.Scan(&rec.ID, &createdAt, &rec.Provider, &rec.Model, &rec.Purpose,
		&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &rec.Success,
		&rec.ErrorMessage, &rec.RequestBody, &rec.ResponseBody)
	if err != nil {
		return LLMCallRecord{}, fmt.Errorf("scan LLM call: %w", err)
	}
	rec.Timestamp = time.UnixMilli(createdAt)
	return rec, nil
}

// UsageByPurpose aggregates token usage grouped by purpose.
func (l *CallLog) UsageByPurpose(ctx context.Context) ([]LLMUsageStats, error) {
	return l.usage(ctx, "purpose", func(s *LLMUsageStats) *string { return &s.Purpose })
}

// UsageByModel aggregates token usage grouped by model.
func (l *CallLog) UsageByModel(ctx context.Context) ([]LLMUsageStats, error) {
	return l.usage(ctx, "model", func(s *LLMUsageStats) *string { return &s.Model })
}

func (l *CallLog) usage(ctx context.Context, column string, key func(*LLMUsageStats) *string) ([]LLMUsageStats, error) {
	query, args := builder().Select(
		column,
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
		entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
		entsql.As(entsql.Avg("latency_ms"), "avg_latency"),
	).
		From(entsql.Table(callsTable)).
		GroupBy(column).
		OrderBy(column).
		Query()

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregate LLM calls by %s: %w", column, err)
	}
	defer rows.Close()

	var out []LLMUsageStats
	for rows.Next() {
		var (
			st  LLMUsageStats
			avg sql.NullFloat64
		)
		if err := rows.Scan(key(&st), &st.Calls, &st.InputTokens, &st.OutputTokens, &avg); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		st.AvgLatencyMs = int64(avg.Float64)
		out = append(out, st)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return out, nil
}

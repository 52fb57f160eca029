package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match, empty for all
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
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

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates calls and tokens for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates calls and tokens for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo records and reads LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose sums usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel sums usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

type eventRepo struct {
	drv *entsql.Driver
}

var eventSelectColumns = []string{
	"id", "timestamp", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	query, args := builder().
		Insert(eventsTable).
		Columns(eventSelectColumns[1:]...).
		Values(
			time.Now().UTC(),
			data.Provider,
			data.Model,
			data.Purpose,
			data.InputTokens,
			data.OutputTokens,
			data.LatencyMs,
			data.Success,
			data.ErrorMessage,
			data.RequestBody,
			data.ResponseBody,
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
	sel := builder().
		Select(eventSelectColumns...).
		From(builder().Table(eventsTable)).
		OrderBy(entsql.Desc("id"))

	if opts.Purpose != "" {
		sel = sel.Where(entsql.EQ("purpose", opts.Purpose))
	}
	if !opts.From.IsZero() {
		sel = sel.Where(entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel = sel.Where(entsql.LTE("timestamp", opts.To.UTC()))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	records, err := r.scanEvents(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error) {
	query, args := builder().
		Select(eventSelectColumns...).
		From(builder().Table(eventsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	records, err := r.scanEvents(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func (r *eventRepo) scanEvents(ctx context.Context, query string, args []any) ([]LLMRequestEventRecord, error) {
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []LLMRequestEventRecord
	for rows.Next() {
		var e LLMRequestEventRecord
		if err := rows.Scan(
			&e.ID,
			&e.Timestamp,
			&e.Provider,
			&e.Model,
			&e.Purpose,
			&e.InputTokens,
			&e.OutputTokens,
			&e.LatencyMs,
			&e.Success,
			&e.ErrorMessage,
			&e.RequestBody,
			&e.ResponseBody,
		); err != nil {
			return nil, err
		}
		records = append(records, e)
	}
	return records, rows.Err()
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error) {
	query, args := builder().
		Select(
			"purpose",
			entsql.Count("*"),
			entsql.Sum("input_tokens"),
			entsql.Sum("output_tokens"),
			"CAST(AVG(latency_ms) AS INTEGER)",
		).
		From(builder().Table(eventsTable)).
		GroupBy("purpose").
		OrderBy("purpose").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var stats []LLMUsageStats
	for rows.Next() {
		var s LLMUsageStats
		if err := rows.Scan(&s.Purpose, &s.Calls, &s.InputTokens, &s.OutputTokens, &s.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage by purpose: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	query, args := builder().
		Select(
			"model",
			entsql.Count("*"),
			entsql.Sum("input_tokens"),
			entsql.Sum("output_tokens"),
		).
		From(builder().Table(eventsTable)).
		GroupBy("model").
		OrderBy("model").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var usage []LLMModelUsage
	for rows.Next() {
		var u LLMModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan usage by model: %w", err)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}

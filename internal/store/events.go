package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with the ent SQL builder and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

// insert appends one event row, assigning the next sequence.
func (r *eventRepo) insert(ctx context.Context, table string, columns []string, values []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(table).
		Columns(append([]string{"sequence", "created_at"}, columns...)...).
		Values(append([]any{seqNum, time.Now().UTC()}, values...)...).
		Query()
	return r.drv.Exec(ctx, query, args, nil)
}

// selectEvents starts a query over table with the common filters applied,
// newest first.
func selectEvents(table string, opts QueryOpts, columns ...string) *entsql.Selector {
	sel := entsql.Dialect(dialect.SQLite).
		Select(append([]string{"id", "sequence", "created_at"}, columns...)...).
		From(entsql.Table(table))
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("created_at", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("created_at", opts.To.UTC()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}

// scanAll runs sel and calls scan for each row.
func (r *eventRepo) scanAll(ctx context.Context, sel *entsql.Selector, scan func(*entsql.Rows) error) error {
	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.insert(ctx, tableSessionEvents,
		[]string{"session_id", "action", "lesson_name", "total", "blocks_played", "duration_secs"},
		[]any{data.SessionID, data.Action, data.LessonName, data.Total, data.BlocksPlayed, data.DurationSecs},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendBlockEvent(ctx context.Context, data BlockEventData) error {
	err := r.insert(ctx, tableBlockEvents,
		[]string{"session_id", "block_index", "block_id", "block_type", "score", "expired", "skipped"},
		[]any{data.SessionID, data.Index, data.BlockID, data.BlockType, data.Score, data.Expired, data.Skipped},
	)
	if err != nil {
		return fmt.Errorf("save block event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	err := r.insert(ctx, tableLLMEvents,
		[]string{"provider", "model", "purpose", "input_tokens", "output_tokens", "latency_ms", "success", "error_message", "request_body", "response_body"},
		[]any{data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody},
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	sel := selectEvents(tableSessionEvents, opts,
		"session_id", "action", "lesson_name", "total", "blocks_played", "duration_secs")

	var out []SessionEvent
	err := r.scanAll(ctx, sel, func(rows *entsql.Rows) error {
		var e SessionEvent
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp,
			&e.SessionID, &e.Action, &e.LessonName, &e.Total, &e.BlocksPlayed, &e.DurationSecs); err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) SessionBlocks(ctx context.Context, sessionID string) ([]BlockEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "sequence", "created_at", "session_id", "block_index", "block_id", "block_type", "score", "expired", "skipped").
		From(entsql.Table(tableBlockEvents)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence")

	var out []BlockEvent
	err := r.scanAll(ctx, sel, func(rows *entsql.Rows) error {
		var e BlockEvent
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp,
			&e.SessionID, &e.Index, &e.BlockID, &e.BlockType, &e.Score, &e.Expired, &e.Skipped); err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query block events: %w", err)
	}
	return out, nil
}

var llmColumns = []string{
	"provider", "model", "purpose", "input_tokens", "output_tokens",
	"latency_ms", "success", "error_message", "request_body", "response_body",
}

func scanLLMEvent(rows *entsql.Rows) (LLMEvent, error) {
	var e LLMEvent
	err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp,
		&e.Provider, &e.Model, &e.Purpose, &e.InputTokens, &e.OutputTokens,
		&e.LatencyMs, &e.Success, &e.ErrorMessage, &e.RequestBody, &e.ResponseBody)
	return e, err
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	var out []LLMEvent
	err := r.scanAll(ctx, selectEvents(tableLLMEvents, opts, llmColumns...), func(rows *entsql.Rows) error {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	sel := selectEvents(tableLLMEvents, QueryOpts{Limit: 1}, llmColumns...).
		Where(entsql.EQ("id", id))

	var found *LLMEvent
	err := r.scanAll(ctx, sel, func(rows *entsql.Rows) error {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return err
		}
		found = &e
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	return found, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(
			"purpose",
			entsql.As(entsql.Count("*"), "calls"),
			entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
			entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
			entsql.As(entsql.Avg("latency_ms"), "avg_latency"),
		).
		From(entsql.Table(tableLLMEvents)).
		GroupBy("purpose").
		OrderBy("purpose")

	var out []PurposeUsage
	err := r.scanAll(ctx, sel, func(rows *entsql.Rows) error {
		var u PurposeUsage
		var avg float64
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &avg); err != nil {
			return err
		}
		u.AvgLatencyMs = int64(avg)
		out = append(out, u)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM usage: %w", err)
	}
	return out, nil
}

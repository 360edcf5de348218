package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexchase32/lessbuilder/internal/logging"
	"github.com/alexchase32/lessbuilder/internal/store"
)

// recording appends every call to the event store.
type recording struct {
	inner    Provider
	provider string
	events   store.EventRepo
	log      *logging.Logger
}

// WithRecording wraps p so each call is stored as an LLM request event.
// A failure to store the event is logged and does not fail the call.
func WithRecording(p Provider, provider string, events store.EventRepo, log *logging.Logger) Provider {
	if log == nil {
		log = logging.Nop()
	}
	return &recording{inner: p, provider: provider, events: events, log: log}
}

func (r *recording) ModelID() string { return r.inner.ModelID() }

func (r *recording) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := r.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    r.provider,
		Model:       r.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: describeRequest(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
		r.log.Warn("llm request failed", "provider", r.provider, "purpose", ev.Purpose, "error", err)
	} else {
		r.log.Debug("llm request", "provider", r.provider, "purpose", ev.Purpose,
			"tokens", resp.Usage.Total(), "latency_ms", ev.LatencyMs)
	}

	if r.events != nil {
		if serr := r.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); serr != nil {
			r.log.Warn("record llm request", "error", serr)
		}
	}
	return resp, err
}

// describeRequest renders req as readable text for the event log.
func describeRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	fmt.Fprintf(&b, "[user]\n%s\n", req.Prompt)
	if req.Schema != nil {
		fmt.Fprintf(&b, "\n[schema: %s]\n", req.Schema.Name)
	}
	return b.String()
}

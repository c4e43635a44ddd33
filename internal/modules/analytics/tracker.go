// Package analytics is a best-effort event side channel. Capture failures
// are logged and never propagate into orchestration results.
package analytics

import (
	"context"
	"log/slog"
	"time"

	"funnelpay.com/app/internal/transport"
)

type Tracker struct {
	api *transport.Client
	log *slog.Logger
}

func NewTracker(api *transport.Client, log *slog.Logger) *Tracker {
	return &Tracker{api: api, log: log}
}

type event struct {
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// Capture posts the event and swallows any failure. A nil tracker is a
// no-op, so callers never need to guard.
func (t *Tracker) Capture(ctx context.Context, name string, props map[string]any) {
	if t == nil {
		return
	}
	ev := event{Name: name, Properties: props, OccurredAt: time.Now().UTC()}
	if err := t.api.Post(ctx, "/v1/events", ev, nil); err != nil {
		if t.log != nil {
			t.log.Warn("analytics_capture_failed", "event", name, "error", err)
		}
	}
}

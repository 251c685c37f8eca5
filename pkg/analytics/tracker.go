// Package analytics records user interactions with the calculator. Trackers
// are owned by the transport layer; the calculation packages never see them.
package analytics

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventButtonClick is the only event name emitted by the calculator.
const EventButtonClick = "button_click"

// Buttons that emit EventButtonClick.
const (
	ButtonCalculate     = "btn-form-calculate"
	ButtonDownloadImage = "btn-download-image"
	ButtonDownloadExcel = "btn-download-excel"
	ButtonDownloadPDF   = "btn-download-pdf"
	ButtonDownloadCSV   = "btn-download-csv"
	ButtonCopyLink      = "btn-copy-link"
)

// Event is a single tracked interaction.
type Event struct {
	ID     string            `json:"id"`
	Name   string            `json:"event"`
	Button string            `json:"button_name"`
	Params map[string]string `json:"params,omitempty"`
	At     time.Time         `json:"at"`
}

// NewButtonClick builds a button_click event stamped with a fresh ID and the
// current time.
func NewButtonClick(button string, params map[string]string) Event {
	return Event{
		ID:     uuid.NewString(),
		Name:   EventButtonClick,
		Button: button,
		Params: params,
		At:     time.Now().UTC(),
	}
}

// Tracker records events.
type Tracker interface {
	Track(ctx context.Context, event Event) error
}

// Counter reports per-button click counts for the UTC day containing at.
type Counter interface {
	Counts(ctx context.Context, at time.Time) (map[string]int64, error)
}

// Nop discards every event.
type Nop struct{}

// Track implements Tracker.
func (Nop) Track(context.Context, Event) error { return nil }

// LogTracker writes each event to a zap logger at info level.
type LogTracker struct {
	logger *zap.Logger
}

// NewLogTracker returns a LogTracker; a nil logger discards events.
func NewLogTracker(logger *zap.Logger) *LogTracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogTracker{logger: logger}
}

// Track implements Tracker.
func (t *LogTracker) Track(_ context.Context, event Event) error {
	fields := []zap.Field{
		zap.String("op", "analytics.LogTracker.Track"),
		zap.String("event_id", event.ID),
		zap.String("button_name", event.Button),
		zap.Time("at", event.At),
	}
	for key, value := range event.Params {
		fields = append(fields, zap.String("param_"+key, value))
	}
	t.logger.Info(event.Name, fields...)
	return nil
}

// MemoryTracker keeps events in memory. It is safe for concurrent use.
type MemoryTracker struct {
	mu     sync.Mutex
	events []Event
}

// NewMemoryTracker returns an empty MemoryTracker.
func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{}
}

// Track implements Tracker.
func (t *MemoryTracker) Track(_ context.Context, event Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, event)
	return nil
}

// Events returns a copy of the recorded events in arrival order.
func (t *MemoryTracker) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Event(nil), t.events...)
}

// Count returns how many recorded events came from button.
func (t *MemoryTracker) Count(button string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, e := range t.events {
		if e.Button == button {
			n++
		}
	}
	return n
}

// Counts implements Counter.
func (t *MemoryTracker) Counts(_ context.Context, at time.Time) (map[string]int64, error) {
	day := at.UTC().Format(time.DateOnly)

	t.mu.Lock()
	defer t.mu.Unlock()
	counts := make(map[string]int64)
	for _, e := range t.events {
		if e.At.UTC().Format(time.DateOnly) == day {
			counts[e.Button]++
		}
	}
	return counts, nil
}

// Multi fans an event out to every tracker. All trackers are called even when
// some fail; their errors are joined.
type Multi []Tracker

// Track implements Tracker.
func (m Multi) Track(ctx context.Context, event Event) error {
	var errs []error
	for _, t := range m {
		if t == nil {
			continue
		}
		if err := t.Track(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

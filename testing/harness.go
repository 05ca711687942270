package pbtimetest

import (
	"context"
	"testing"

	"github.com/blockberries/pbtime"
	"github.com/blockberries/pbtime/types"
)

// Harness wraps a Clock with helpers that fail the test on error.
type Harness struct {
	t     *testing.T
	clock pbtime.Clock
}

// NewHarness creates a test harness around clock.
func NewHarness(t *testing.T, clock pbtime.Clock) *Harness {
	t.Helper()
	return &Harness{t: t, clock: clock}
}

// Clock returns the wrapped clock for direct access.
func (h *Harness) Clock() pbtime.Clock {
	return h.clock
}

// Now reads the clock.
func (h *Harness) Now() types.Timestamp {
	h.t.Helper()
	ts, err := h.clock.Now(context.Background())
	if err != nil {
		h.t.Fatalf("Now failed: %v", err)
	}
	return ts
}

// Format renders ts.
func (h *Harness) Format(ts types.Timestamp) string {
	h.t.Helper()
	text, err := h.clock.Format(context.Background(), ts)
	if err != nil {
		h.t.Fatalf("Format(%d, %d) failed: %v", ts.Seconds, ts.Nanos, err)
	}
	return text
}

// Parse reads text.
func (h *Harness) Parse(text string) types.Timestamp {
	h.t.Helper()
	ts, err := h.clock.Parse(context.Background(), text)
	if err != nil {
		h.t.Fatalf("Parse(%q) failed: %v", text, err)
	}
	return ts
}

// RoundTrip formats ts and parses the result back.
func (h *Harness) RoundTrip(ts types.Timestamp) types.Timestamp {
	h.t.Helper()
	return h.Parse(h.Format(ts))
}

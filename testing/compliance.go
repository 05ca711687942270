package pbtimetest

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/blockberries/pbtime"
	"github.com/blockberries/pbtime/types"
)

// RunComplianceSuite runs a standard compliance test suite against
// a Clock to verify conversion and text encoding behavior.
//
// The factory function should return a fresh clock for each test,
// reading its time from FixedSource(ReferenceTime).
func RunComplianceSuite(t *testing.T, factory func() pbtime.Clock) {
	t.Helper()

	t.Run("now_reports_source", func(t *testing.T) {
		h := NewHarness(t, factory())
		got := h.Now()
		want := types.TimeToTimestamp(ReferenceTime)
		if got != want {
			t.Errorf("Now = %#v, want %#v", got, want)
		}
	})

	t.Run("known_instant", func(t *testing.T) {
		h := NewHarness(t, factory())
		ts := types.Timestamp{Seconds: 1431680400}
		if text := h.Format(ts); text != "2015-05-15T09:00:00Z" {
			t.Errorf("Format = %q", text)
		}
		if got := h.Parse("2015-05-15T09:00:00Z"); got != ts {
			t.Errorf("Parse = %#v, want %#v", got, ts)
		}
	})

	t.Run("sub_second_precision", func(t *testing.T) {
		h := NewHarness(t, factory())
		ts := types.Timestamp{Seconds: 1431680400, Nanos: 123456789}
		text := h.Format(ts)
		if text != "2015-05-15T09:00:00.123456789Z" {
			t.Errorf("Format = %q", text)
		}
		if got := h.Parse(text); got != ts {
			t.Errorf("Parse = %#v, want %#v", got, ts)
		}
	})

	t.Run("round_trip_normalized", func(t *testing.T) {
		h := NewHarness(t, factory())
		for _, ts := range []types.Timestamp{
			{},
			{Seconds: -1, Nanos: 999_999_999},
			{Seconds: -62135596800},
			{Seconds: 253402300799, Nanos: 999_999_999},
			{Seconds: 1_700_000_000, Nanos: 1_000},
		} {
			if got := h.RoundTrip(ts); got != ts {
				t.Errorf("round trip: got %#v, want %#v", got, ts)
			}
		}
	})

	t.Run("offset_normalized_to_utc", func(t *testing.T) {
		h := NewHarness(t, factory())
		ts := h.Parse("2015-05-15T11:00:00.5+02:00")
		if text := h.Format(ts); text != "2015-05-15T09:00:00.500Z" {
			t.Errorf("Format = %q", text)
		}
	})

	t.Run("parse_failure_keeps_diagnostic", func(t *testing.T) {
		clock := factory()
		_, err := clock.Parse(context.Background(), "not-a-date")
		if err == nil {
			t.Fatal("expected parse error")
		}
		if !strings.Contains(err.Error(), `cannot parse "not-a-date"`) {
			t.Errorf("error %q lacks the parser diagnostic", err.Error())
		}
	})

	t.Run("format_out_of_range_fails", func(t *testing.T) {
		clock := factory()
		_, err := clock.Format(context.Background(), types.Timestamp{Seconds: 1 << 62})
		if err == nil {
			t.Fatal("expected format error")
		}
	})

	t.Run("concurrent_calls", func(t *testing.T) {
		h := NewHarness(t, factory())

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				ts := types.Timestamp{Seconds: int64(i) * 3600, Nanos: int32(i) * 1_000_000}
				text, err := h.Clock().Format(context.Background(), ts)
				if err != nil {
					t.Errorf("concurrent Format failed: %v", err)
					return
				}
				got, err := h.Clock().Parse(context.Background(), text)
				if err != nil {
					t.Errorf("concurrent Parse failed: %v", err)
					return
				}
				if got != ts {
					t.Errorf("concurrent round trip: got %#v, want %#v", got, ts)
				}
			}(i)
		}
		wg.Wait()
	})
}

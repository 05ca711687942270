// Package pbtimetest provides test utilities for code built on pbtime,
// including deterministic time sources, a configurable mock clock,
// a test harness, and a Clock compliance test suite.
package pbtimetest

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blockberries/pbtime"
	"github.com/blockberries/pbtime/server"
	"github.com/blockberries/pbtime/types"
)

// Compile-time check that MockClock satisfies Connection.
var _ pbtime.Connection = (*MockClock)(nil)

// ReferenceTime is the instant FixedSource is expected to report when
// running the compliance suite: 2015-05-15T09:00:00.123456789Z.
var ReferenceTime = time.Date(2015, time.May, 15, 9, 0, 0, 123456789, time.UTC)

// FixedSource returns a time source that always reports t.
func FixedSource(t time.Time) server.TimeSource {
	return func() time.Time { return t }
}

// SteppingSource returns a time source that reports start on its first
// call and advances by step on every call after that.
func SteppingSource(start time.Time, step time.Duration) server.TimeSource {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(step)
		return t
	}
}

// MockClock is a configurable mock Clock for testing callers.
// Unconfigured methods fall back to the real conversions in package
// types, with Now reporting ReferenceTime.
type MockClock struct {
	NowFn    func(context.Context) (types.Timestamp, error)
	FormatFn func(context.Context, types.Timestamp) (string, error)
	ParseFn  func(context.Context, string) (types.Timestamp, error)

	// Call counters (atomic for concurrent access).
	NowCalls    atomic.Int64
	FormatCalls atomic.Int64
	ParseCalls  atomic.Int64
	Closed      atomic.Bool
}

func (m *MockClock) Now(ctx context.Context) (types.Timestamp, error) {
	m.NowCalls.Add(1)
	if m.NowFn != nil {
		return m.NowFn(ctx)
	}
	return types.TimeToTimestamp(ReferenceTime), nil
}

func (m *MockClock) Format(ctx context.Context, ts types.Timestamp) (string, error) {
	m.FormatCalls.Add(1)
	if m.FormatFn != nil {
		return m.FormatFn(ctx, ts)
	}
	return ts.Format()
}

func (m *MockClock) Parse(ctx context.Context, text string) (types.Timestamp, error) {
	m.ParseCalls.Add(1)
	if m.ParseFn != nil {
		return m.ParseFn(ctx, text)
	}
	return types.ParseTimestamp(text)
}

func (m *MockClock) Close() error {
	m.Closed.Store(true)
	return nil
}

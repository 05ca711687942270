// Package server provides the Clock implementation shared by the
// in-process and gRPC transports.
package server

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/blockberries/pbtime"
	"github.com/blockberries/pbtime/types"
)

// ErrClosed is returned by every method once Close has been called.
var ErrClosed = errors.New("pbtime: clock closed")

// Compile-time interface check.
var _ pbtime.Clock = (*Server)(nil)

// TimeSource supplies the current time. time.Now is the default.
type TimeSource func() time.Time

// Server answers Clock calls from a TimeSource. It holds no mutable
// state besides the closed flag and is safe for concurrent use.
type Server struct {
	now    TimeSource
	logger *slog.Logger
	closed atomic.Bool
}

// Option configures a Server.
type Option func(*Server)

// WithTimeSource replaces time.Now, typically with a fixed source in tests.
func WithTimeSource(src TimeSource) Option {
	return func(s *Server) {
		if src != nil {
			s.now = src
		}
	}
}

// WithLogger sets the logger used for per-call diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Server. Without options it reads time.Now and logs
// through slog.Default.
func New(opts ...Option) *Server {
	s := &Server{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the time source's current reading.
func (s *Server) Now(ctx context.Context) (types.Timestamp, error) {
	if err := s.check(ctx); err != nil {
		return types.Timestamp{}, err
	}
	return types.TimeToTimestamp(s.now()), nil
}

// Format renders ts as RFC 3339.
func (s *Server) Format(ctx context.Context, ts types.Timestamp) (string, error) {
	if err := s.check(ctx); err != nil {
		return "", err
	}
	text, err := ts.Format()
	if err != nil {
		s.logger.WarnContext(ctx, "format failed",
			slog.Int64("seconds", ts.Seconds),
			slog.Int64("nanos", int64(ts.Nanos)),
			slog.Any("error", err))
		return "", err
	}
	s.logger.DebugContext(ctx, "formatted timestamp", slog.String("text", text))
	return text, nil
}

// Parse reads an RFC 3339 string.
func (s *Server) Parse(ctx context.Context, text string) (types.Timestamp, error) {
	if err := s.check(ctx); err != nil {
		return types.Timestamp{}, err
	}
	ts, err := types.ParseTimestamp(text)
	if err != nil {
		s.logger.WarnContext(ctx, "parse failed",
			slog.String("text", text),
			slog.Any("error", err))
		return types.Timestamp{}, err
	}
	s.logger.DebugContext(ctx, "parsed timestamp",
		slog.Int64("seconds", ts.Seconds),
		slog.Int64("nanos", int64(ts.Nanos)))
	return ts, nil
}

// Logger returns the logger the server reports through.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// Close marks the server closed. It is idempotent.
func (s *Server) Close() error {
	s.closed.Store(true)
	return nil
}

func (s *Server) check(ctx context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return ctx.Err()
}

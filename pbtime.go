// Package pbtime provides protobuf-shaped time values and a small clock
// service built on them.
//
// The value types live in [types]. This package defines the [Clock]
// interface that the in-process adapter (package local) and the gRPC
// transport (package grpc) both satisfy, so callers can switch between
// them without touching their own code.
package pbtime

import (
	"context"

	"github.com/blockberries/pbtime/types"
)

// Clock reads the current time and converts Timestamps to and from their
// RFC 3339 text form.
//
// Implementations MUST be safe for concurrent use.
type Clock interface {
	// Now returns the current time as a normalized Timestamp.
	Now(ctx context.Context) (types.Timestamp, error)

	// Format renders ts as a canonical RFC 3339 string in UTC.
	// Fails with a *types.FormatError (or its transport equivalent)
	// when ts cannot be represented.
	Format(ctx context.Context, ts types.Timestamp) (string, error)

	// Parse reads a strict RFC 3339 string. The error keeps the
	// parser diagnostic.
	Parse(ctx context.Context, text string) (types.Timestamp, error)
}

// Connection represents a transport-agnostic connection to a Clock.
// Both gRPC clients and in-process adapters implement this.
type Connection interface {
	Clock

	// Close terminates the connection.
	Close() error
}

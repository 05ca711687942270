// Package local provides a zero-copy, in-process Clock connection.
//
// For callers compiled into the same binary as the clock, this adapter
// wraps a server.Server with no serialization overhead.
package local

import (
	"context"

	"github.com/blockberries/pbtime"
	"github.com/blockberries/pbtime/server"
	"github.com/blockberries/pbtime/types"
)

// Compile-time interface check.
var _ pbtime.Connection = (*Connection)(nil)

// Connection wraps a local server.Server.
type Connection struct {
	srv *server.Server
}

// NewConnection creates an in-process connection. Options are passed
// through to server.New.
func NewConnection(opts ...server.Option) *Connection {
	return &Connection{srv: server.New(opts...)}
}

func (c *Connection) Now(ctx context.Context) (types.Timestamp, error) {
	return c.srv.Now(ctx)
}

func (c *Connection) Format(ctx context.Context, ts types.Timestamp) (string, error) {
	return c.srv.Format(ctx, ts)
}

func (c *Connection) Parse(ctx context.Context, text string) (types.Timestamp, error) {
	return c.srv.Parse(ctx, text)
}

func (c *Connection) Close() error { return c.srv.Close() }

// Server returns the underlying server for advanced use cases.
func (c *Connection) Server() *server.Server {
	return c.srv
}

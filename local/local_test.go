package local

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blockberries/pbtime/server"
	"github.com/blockberries/pbtime/types"
)

func TestLocalConnection_FullCycle(t *testing.T) {
	at := time.Date(2015, 5, 15, 9, 0, 0, 0, time.UTC)
	conn := NewConnection(server.WithTimeSource(func() time.Time { return at }))
	defer conn.Close()
	ctx := context.Background()

	ts, err := conn.Now(ctx)
	if err != nil {
		t.Fatalf("Now failed: %v", err)
	}
	if ts != (types.Timestamp{Seconds: 1431680400}) {
		t.Fatalf("Now = %#v", ts)
	}

	text, err := conn.Format(ctx, ts)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if text != "2015-05-15T09:00:00Z" {
		t.Fatalf("Format = %q", text)
	}

	back, err := conn.Parse(ctx, text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if back != ts {
		t.Fatalf("Parse = %#v, want %#v", back, ts)
	}
}

func TestLocalConnection_ErrorsAreTyped(t *testing.T) {
	conn := NewConnection()
	defer conn.Close()
	ctx := context.Background()

	if _, err := conn.Parse(ctx, "not-a-date"); err == nil {
		t.Fatal("expected parse error")
	} else if _, ok := types.IsParse(err); !ok {
		t.Fatalf("expected ParseError, got %T", err)
	}

	if _, err := conn.Format(ctx, types.Timestamp{Seconds: 1 << 62}); err == nil {
		t.Fatal("expected format error")
	} else if _, ok := types.IsRange(err); !ok {
		t.Fatalf("expected RangeError cause, got %v", err)
	}
}

func TestLocalConnection_Close(t *testing.T) {
	conn := NewConnection()
	if err := conn.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := conn.Now(context.Background()); !errors.Is(err, server.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if conn.Server() == nil {
		t.Fatal("Server() returned nil")
	}
}

package pbtimegrpc_test

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/blockberries/pbtime"
	pbtimegrpc "github.com/blockberries/pbtime/grpc"
	"github.com/blockberries/pbtime/server"
	pbtimetest "github.com/blockberries/pbtime/testing"
	"github.com/blockberries/pbtime/types"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// startServer starts a gRPC server on a random port and returns
// the listener address and a cleanup function.
func startServer(t *testing.T, gs *pbtimegrpc.GRPCServer) (string, func()) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	s := gs.NewServer()

	go s.Serve(lis)

	return lis.Addr().String(), func() {
		gs.Stop(s)
	}
}

type dialFunc func(context.Context, string, ...grpc.DialOption) (*pbtimegrpc.Client, error)

func dial(t *testing.T, addr string, fn dialFunc) *pbtimegrpc.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := fn(ctx, addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	return client
}

func fixedServer() *pbtimegrpc.GRPCServer {
	return pbtimegrpc.NewGRPCServer(
		server.WithTimeSource(pbtimetest.FixedSource(pbtimetest.ReferenceTime)),
		server.WithLogger(slog.New(slog.DiscardHandler)),
	)
}

func TestGRPC_Compliance(t *testing.T) {
	for name, fn := range dialers {
		t.Run(name, func(t *testing.T) {
			addr, cleanup := startServer(t, fixedServer())
			defer cleanup()

			var (
				mu      sync.Mutex
				clients []*pbtimegrpc.Client
			)
			defer func() {
				for _, c := range clients {
					c.Close()
				}
			}()

			pbtimetest.RunComplianceSuite(t, func() pbtime.Clock {
				c := dial(t, addr, fn)
				mu.Lock()
				clients = append(clients, c)
				mu.Unlock()
				return c
			})
		})
	}
}

func TestGRPC_ParseErrorCode(t *testing.T) {
	addr, cleanup := startServer(t, fixedServer())
	defer cleanup()

	client := dial(t, addr, pbtimegrpc.Dial)
	defer client.Close()

	_, err := client.Parse(context.Background(), "not-a-date")
	if err == nil {
		t.Fatal("expected error")
	}
	if code := status.Code(err); code != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %s (%v)", code, err)
	}
	if !strings.Contains(err.Error(), `cannot parse "not-a-date" as "2006"`) {
		t.Fatalf("error %q lacks the parser diagnostic", err.Error())
	}
}

var dialers = map[string]dialFunc{
	"cramberry": pbtimegrpc.Dial,
	"json":      pbtimegrpc.DialJSON,
}

func TestGRPC_FormatOutOfRangeCode(t *testing.T) {
	addr, cleanup := startServer(t, fixedServer())
	defer cleanup()

	for name, fn := range dialers {
		t.Run(name, func(t *testing.T) {
			client := dial(t, addr, fn)
			defer client.Close()

			_, err := client.Format(context.Background(), types.Timestamp{Seconds: 1 << 62})
			if code := status.Code(err); code != codes.OutOfRange {
				t.Fatalf("expected OutOfRange, got %s (%v)", code, err)
			}
			if !strings.Contains(err.Error(), "seconds=4611686018427387904") {
				t.Fatalf("error %q lacks the range detail", err.Error())
			}
		})
	}
}

// Non-normalized values reach the server unchanged under both codecs.
func TestGRPC_NonNormalizedFormat(t *testing.T) {
	addr, cleanup := startServer(t, fixedServer())
	defer cleanup()

	for name, fn := range dialers {
		t.Run(name, func(t *testing.T) {
			client := dial(t, addr, fn)
			defer client.Close()

			text, err := client.Format(context.Background(), types.Timestamp{Seconds: 1431680399, Nanos: 1_500_000_000})
			if err != nil {
				t.Fatalf("Format: %v", err)
			}
			if text != "2015-05-15T09:00:00.500Z" {
				t.Fatalf("Format = %q", text)
			}
		})
	}
}

func TestJSONCodec_FormatRequestWireForm(t *testing.T) {
	var codec pbtimegrpc.JSONCodec
	data, err := codec.Marshal(&pbtimegrpc.FormatRequest{Seconds: 1 << 62, Nanos: -1})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"seconds":4611686018427387904,"nanos":-1}` {
		t.Fatalf("Marshal = %s", data)
	}
}

func TestGRPC_ClosedServerUnavailable(t *testing.T) {
	gs := fixedServer()
	addr, cleanup := startServer(t, gs)
	defer cleanup()

	client := dial(t, addr, pbtimegrpc.Dial)
	defer client.Close()

	gs.Server().Close()
	_, err := client.Now(context.Background())
	if code := status.Code(err); code != codes.Unavailable {
		t.Fatalf("expected Unavailable, got %s (%v)", code, err)
	}
}

func TestGRPC_LoggingInterceptor(t *testing.T) {
	var (
		mu  sync.Mutex
		buf bytes.Buffer
	)
	logger := slog.New(slog.NewTextHandler(&lockedWriter{mu: &mu, w: &buf}, &slog.HandlerOptions{Level: slog.LevelDebug}))
	gs := pbtimegrpc.NewGRPCServer(server.WithLogger(logger))
	addr, cleanup := startServer(t, gs)

	client := dial(t, addr, pbtimegrpc.Dial)
	if _, err := client.Now(context.Background()); err != nil {
		t.Fatalf("Now: %v", err)
	}
	if _, err := client.Parse(context.Background(), "bogus"); err == nil {
		t.Fatal("expected parse error")
	}
	client.Close()
	cleanup()

	mu.Lock()
	out := buf.String()
	mu.Unlock()
	for _, want := range []string{
		"method=/pbtime.v1.ClockService/Now",
		"code=OK",
		"method=/pbtime.v1.ClockService/Parse",
		"code=InvalidArgument",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestCodecByName(t *testing.T) {
	if c := pbtimegrpc.CodecByName("cramberry"); c == nil || c.Name() != "cramberry" {
		t.Fatalf("cramberry codec = %v", c)
	}
	if c := pbtimegrpc.CodecByName("json"); c == nil || c.Name() != "json" {
		t.Fatalf("json codec = %v", c)
	}
	if c := pbtimegrpc.CodecByName("proto"); c != nil {
		t.Fatalf("unexpected codec %v", c)
	}
}

func TestJSONCodec_TimestampWireForm(t *testing.T) {
	var codec pbtimegrpc.JSONCodec
	data, err := codec.Marshal(&types.Timestamp{Seconds: 1431680400, Nanos: 1_000_000})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"2015-05-15T09:00:00.001Z"` {
		t.Fatalf("Marshal = %s", data)
	}
	var ts types.Timestamp
	if err := codec.Unmarshal([]byte(`1431680400`), &ts); err == nil {
		t.Fatal("expected error for a number")
	}
}

type lockedWriter struct {
	mu *sync.Mutex
	w  *bytes.Buffer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

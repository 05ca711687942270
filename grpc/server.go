package pbtimegrpc

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"github.com/blockberries/pbtime/server"
	"github.com/blockberries/pbtime/types"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Compile-time interface check.
var _ ClockServiceServer = (*GRPCServer)(nil)

// GRPCServer exposes a server.Server over gRPC. No type conversion is
// needed: domain types are serialized directly by the selected codec.
type GRPCServer struct {
	srv *server.Server
}

// NewGRPCServer creates a gRPC server. Options are passed through to
// server.New.
func NewGRPCServer(opts ...server.Option) *GRPCServer {
	return &GRPCServer{
		srv: server.New(opts...),
	}
}

// Register adds the clock service to a gRPC server.
func (s *GRPCServer) Register(gs *grpc.Server) {
	RegisterClockServiceServer(gs, s)
}

// NewServer builds a grpc.Server with request logging installed and
// the clock service registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(LoggingInterceptor(s.srv.Logger())))
	gs := grpc.NewServer(opts...)
	s.Register(gs)
	return gs
}

// Serve starts the gRPC server on the given listener.
func (s *GRPCServer) Serve(lis net.Listener, opts ...grpc.ServerOption) error {
	return s.NewServer(opts...).Serve(lis)
}

// Stop gracefully stops the gRPC server.
func (s *GRPCServer) Stop(gs *grpc.Server) {
	gs.GracefulStop()
}

// Server returns the underlying server for advanced use.
func (s *GRPCServer) Server() *server.Server {
	return s.srv
}

func (s *GRPCServer) Now(ctx context.Context, _ *NowRequest) (*types.Timestamp, error) {
	ts, err := s.srv.Now(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ts, nil
}

func (s *GRPCServer) Format(ctx context.Context, req *FormatRequest) (*FormatResponse, error) {
	text, err := s.srv.Format(ctx, types.Timestamp{Seconds: req.Seconds, Nanos: req.Nanos})
	if err != nil {
		return nil, toStatus(err)
	}
	return &FormatResponse{Text: text}, nil
}

func (s *GRPCServer) Parse(ctx context.Context, req *ParseRequest) (*types.Timestamp, error) {
	ts, err := s.srv.Parse(ctx, req.Text)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ts, nil
}

// LoggingInterceptor logs every unary call with its status code and
// latency.
func LoggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		logger.LogAttrs(ctx, level, "rpc",
			slog.String("method", info.FullMethod),
			slog.String("code", status.Code(err).String()),
			slog.Duration("latency", time.Since(start)))
		return resp, err
	}
}

// toStatus maps clock errors onto gRPC status codes. The message keeps
// the full error text, including any parser diagnostic.
func toStatus(err error) error {
	var fe *types.FormatError
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, server.ErrClosed):
		return status.Error(codes.Unavailable, err.Error())
	}
	if _, ok := types.IsParse(err); ok {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if _, ok := types.IsRange(err); ok || errors.As(err, &fe) {
		return status.Error(codes.OutOfRange, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

package pbtimegrpc

import (
	"context"
	"fmt"

	"github.com/blockberries/pbtime/types"

	"google.golang.org/grpc"
)

const serviceName = "pbtime.v1.ClockService"

// ClockServiceServer is the server-side interface for the clock gRPC service.
type ClockServiceServer interface {
	Now(context.Context, *NowRequest) (*types.Timestamp, error)
	Format(context.Context, *FormatRequest) (*FormatResponse, error)
	Parse(context.Context, *ParseRequest) (*types.Timestamp, error)
}

// RegisterClockServiceServer registers the ClockServiceServer on a gRPC server.
func RegisterClockServiceServer(s grpc.ServiceRegistrar, srv ClockServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

// --- Handler functions ---

func handlerNow(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(NowRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ClockServiceServer).Now(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod("Now")}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ClockServiceServer).Now(ctx, req.(*NowRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func handlerFormat(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(FormatRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ClockServiceServer).Format(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod("Format")}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ClockServiceServer).Format(ctx, req.(*FormatRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func handlerParse(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(ParseRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ClockServiceServer).Parse(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod("Parse")}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ClockServiceServer).Parse(ctx, req.(*ParseRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// fullMethod builds the full gRPC method path.
func fullMethod(method string) string {
	return fmt.Sprintf("/%s/%s", serviceName, method)
}

// serviceDesc is the manual gRPC service descriptor for the clock service.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ClockServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Now", Handler: handlerNow},
		{MethodName: "Format", Handler: handlerFormat},
		{MethodName: "Parse", Handler: handlerParse},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "github.com/blockberries/pbtime/v1/clock.cram",
}

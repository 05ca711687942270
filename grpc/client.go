package pbtimegrpc

import (
	"context"
	"fmt"

	"github.com/blockberries/pbtime"
	"github.com/blockberries/pbtime/types"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// Compile-time interface check.
var _ pbtime.Connection = (*Client)(nil)

// Client implements pbtime.Connection for a remote clock over gRPC.
type Client struct {
	cc *grpc.ClientConn
}

// Dial connects to a remote clock using cramberry serialization.
func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*Client, error) {
	return DialCodec(ctx, addr, CramberryCodec{}, opts...)
}

// DialJSON connects to a remote clock using the JSON codec.
func DialJSON(ctx context.Context, addr string, opts ...grpc.DialOption) (*Client, error) {
	return DialCodec(ctx, addr, JSONCodec{}, opts...)
}

// DialCodec connects to a remote clock using the given codec, which
// must also be registered on the server side.
func DialCodec(ctx context.Context, addr string, codec encoding.Codec, opts ...grpc.DialOption) (*Client, error) {
	opts = append(opts, grpc.WithDefaultCallOptions(
		grpc.ForceCodec(codec),
	))
	cc, err := grpc.DialContext(ctx, addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("pbtime client: dial %s: %w", addr, err)
	}
	return &Client{cc: cc}, nil
}

func (c *Client) Close() error {
	return c.cc.Close()
}

func (c *Client) Now(ctx context.Context) (types.Timestamp, error) {
	resp := new(types.Timestamp)
	if err := c.cc.Invoke(ctx, fullMethod("Now"), &NowRequest{}, resp); err != nil {
		return types.Timestamp{}, fmt.Errorf("pbtime client: now: %w", err)
	}
	return *resp, nil
}

func (c *Client) Format(ctx context.Context, ts types.Timestamp) (string, error) {
	resp := new(FormatResponse)
	req := &FormatRequest{Seconds: ts.Seconds, Nanos: ts.Nanos}
	if err := c.cc.Invoke(ctx, fullMethod("Format"), req, resp); err != nil {
		return "", fmt.Errorf("pbtime client: format: %w", err)
	}
	return resp.Text, nil
}

func (c *Client) Parse(ctx context.Context, text string) (types.Timestamp, error) {
	resp := new(types.Timestamp)
	req := &ParseRequest{Text: text}
	if err := c.cc.Invoke(ctx, fullMethod("Parse"), req, resp); err != nil {
		return types.Timestamp{}, fmt.Errorf("pbtime client: parse: %w", err)
	}
	return *resp, nil
}

// Package remote talks to another machine's hwscore daemon over gRPC.
package remote

import (
	"context"
	"time"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/go-tangra/go-tangra-hwscore/internal/server"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// DefaultCallTimeout bounds a unary call when the caller set no deadline.
const DefaultCallTimeout = 60 * time.Second

// Client calls the inventory service of a remote daemon. When secret is
// non-empty it is sent as the x-client-secret gRPC metadata header.
type Client struct {
	addr   string
	secret string
	conn   *grpc.ClientConn
}

// Option configures a Client.
type Option func(*options)

type options struct {
	dial []grpc.DialOption
}

// WithDialOptions appends gRPC dial options.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(o *options) {
		o.dial = append(o.dial, opts...)
	}
}

// Dial prepares a client for addr. The connection is established lazily.
func Dial(addr, secret string, opts ...Option) (*Client, error) {
	o := options{dial: []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}}
	for _, opt := range opts {
		opt(&o)
	}

	conn, err := grpc.NewClient(addr, o.dial...)
	if err != nil {
		return nil, errors.New().Wrap(errors.ErrConnectionUnavailable, err).WithData(addr)
	}
	return &Client{addr: addr, secret: secret, conn: conn}, nil
}

// Close releases the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) outgoing(ctx context.Context) context.Context {
	if c.secret != "" {
		return metadata.AppendToOutgoingContext(ctx, "x-client-secret", c.secret)
	}
	return ctx
}

func (c *Client) invoke(ctx context.Context, method string, in any) (*structpb.Struct, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCallTimeout)
		defer cancel()
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(c.outgoing(ctx), server.FullMethod(method), in, out); err != nil {
		return nil, errors.New().Wrap(errors.ErrRemote, err).WithData(c.addr + " " + method)
	}
	return out, nil
}

// Snapshot asks the daemon for a full scored snapshot.
func (c *Client) Snapshot(ctx context.Context) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetSnapshot", &emptypb.Empty{})
}

// Domain asks the daemon for one domain.
func (c *Client) Domain(ctx context.Context, name string) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetDomain", wrapperspb.String(name))
}

// Usage asks the daemon for one utilization reading.
func (c *Client) Usage(ctx context.Context) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetUsage", &emptypb.Empty{})
}

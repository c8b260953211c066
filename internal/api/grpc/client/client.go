// Package client calls the admin gRPC API.
package client

import (
	"context"
	"crypto/tls"
	"fmt"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/rostersync/internal/api/grpc/handler"
)

// Client is an admin API connection.
type Client struct {
	conn  *grpc.ClientConn
	token string
}

// Option customizes the dial.
type Option func(*options)

type options struct {
	tls      bool
	insecure bool
	dial     []grpc.DialOption
}

// WithTLS dials with TLS. skipVerify disables certificate checks.
func WithTLS(skipVerify bool) Option {
	return func(o *options) {
		o.tls = true
		o.insecure = skipVerify
	}
}

// WithDialOptions appends raw grpc dial options.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(o *options) {
		o.dial = append(o.dial, opts...)
	}
}

// New connects to addr and authenticates every call with token.
func New(addr, token string, opts ...Option) (*Client, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	creds := insecure.NewCredentials()
	if o.tls {
		creds = credentials.NewTLS(&tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: o.insecure, //nolint:gosec // opt-in for self-signed admin endpoints
		})
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(creds),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}, o.dial...)

	conn, err := grpc.NewClient(addr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin client: %w", err)
	}
	return &Client{conn: conn, token: token}, nil
}

// Call invokes an admin method with a free-form request and returns the
// decoded response.
func (c *Client) Call(ctx context.Context, method string, req map[string]interface{}) (map[string]interface{}, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, handler.FullMethod(method), in, out, grpc.PerRPCCredentials(bearer(c.token))); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

type bearer string

func (b bearer) GetRequestMetadata(_ context.Context, _ ...string) (map[string]string, error) {
	if b == "" {
		return nil, nil
	}
	return map[string]string{"authorization": "Bearer " + string(b)}, nil
}

// RequireTransportSecurity is false so tokens can be sent over loopback
// without TLS.
func (b bearer) RequireTransportSecurity() bool {
	return false
}

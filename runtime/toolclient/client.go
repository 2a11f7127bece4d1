// Package toolclient implements a typed gRPC gateway to the external tool
// service that every agent and workflow node calls for document search,
// editing, web research, charting, and org-inbox operations. It wraps a
// single long-lived grpc.ClientConn shared across turns behind a narrow Go
// interface fronting the RPC calls.
package toolclient

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/adamsih300u/orchestrator/runtime/toolerrors"
)

// maxMessageBytes bounds both send and receive message size at 100 MB per
// direction.
const maxMessageBytes = 100 * 1024 * 1024

// serviceName is the fully-qualified gRPC service name every operation is
// invoked against.
const serviceName = "backend.tool.v1.ToolService"

// Options configures dialing the backend tool service.
type Options struct {
	// Host defaults to "backend".
	Host string
	// Port defaults to "50052".
	Port string
	// DialOptions lets callers inject transport credentials or interceptors;
	// Insecure transport credentials are used when absent (intra-cluster
	// traffic is assumed to run over a private network).
	DialOptions []grpc.DialOption
}

// Client is the concrete gRPC-backed tool client. A single instance is
// shared across turns and goroutines.
type Client struct {
	conn *grpc.ClientConn
}

// Dial opens the long-lived connection to the backend tool service.
func Dial(ctx context.Context, opts Options) (*Client, error) {
	host := opts.Host
	if host == "" {
		host = "backend"
	}
	port := opts.Port
	if port == "" {
		port = "50052"
	}
	target := fmt.Sprintf("%s:%s", host, port)

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(maxMessageBytes),
			grpc.MaxCallSendMsgSize(maxMessageBytes),
			grpc.CallContentSubtype(jsonCodecName),
		),
	}, opts.DialOptions...)

	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, toolerrors.Wrap(toolerrors.KindTransport, fmt.Errorf("dial backend tool service at %s: %w", target, err))
	}
	return &Client{conn: conn}, nil
}

// Close shuts down the underlying connection. Call once at process shutdown.
func (c *Client) Close() error { return c.conn.Close() }

// call invokes a single unary RPC method on the tool service, translating
// transport failures into a toolerrors.KindTransport error so callers can
// apply their transport-error recovery uniformly.
func (c *Client) call(ctx context.Context, method string, req, resp any) error {
	fullMethod := fmt.Sprintf("/%s/%s", serviceName, method)
	if err := c.conn.Invoke(ctx, fullMethod, req, resp); err != nil {
		return toolerrors.Wrap(toolerrors.KindTransport, fmt.Errorf("%s: %w", method, err))
	}
	return nil
}

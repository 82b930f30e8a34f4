package mcp

import "context"

// Transport is the interface for MCP gateway communication.
// Implementations handle the details of sending JSON-RPC requests and
// receiving responses, including session affinity headers.
type Transport interface {
	// Send sends a JSON-RPC request and returns the response.
	Send(ctx context.Context, req *Request) (*Response, error)

	// Notify sends a JSON-RPC notification (no response expected).
	Notify(ctx context.Context, notif *Notification) error

	// Close shuts down the transport and releases resources.
	Close() error
}

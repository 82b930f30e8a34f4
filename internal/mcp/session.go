package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// protocolVersion is the MCP protocol version advertised during
// initialization and echoed in the Mcp-Protocol-Version header.
const protocolVersion = "2024-11-05"

// Client identity presented to the gateway in clientInfo and the
// User-Agent header.
const (
	clientName    = "OpenWebUI-MCP-Jira"
	clientVersion = "1.2.0"
)

// Fixed JSON-RPC request ids. The gateway starts a fresh session per
// operation, so a Session sends at most one request per id and the
// ids never collide. Multiplexing concurrent requests over one
// Session would require real id allocation.
const (
	initializeID int64 = 1
	listToolsID  int64 = 2
	callToolID   int64 = 3
)

const (
	// notifyTimeout bounds the fire-and-forget initialized
	// notification.
	notifyTimeout = 10 * time.Second

	// discoveryTimeout bounds tools/list, independent of the
	// per-caller operation timeout.
	discoveryTimeout = 60 * time.Second
)

// handshakeTimeout bounds the initialize request: a quarter of the
// operation timeout (whole seconds), never less than 30 seconds.
func handshakeTimeout(timeoutSecs int) time.Duration {
	secs := timeoutSecs / 4
	if secs < 30 {
		secs = 30
	}
	return time.Duration(secs) * time.Second
}

// ToolDefinition is an MCP tool as returned by tools/list.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// ContentBlock is a single content item in a tools/call response.
type ContentBlock struct {
	Type     string         `json:"type"`
	Text     string         `json:"text,omitempty"`
	Resource *ResourceBlock `json:"resource,omitempty"`
}

// ResourceBlock is the resource payload of a resource content item.
type ResourceBlock struct {
	URI string `json:"uri"`
}

// callToolResult is the result payload of a tools/call response.
type callToolResult struct {
	Content []ContentBlock `json:"content"`
}

// toolsListResult is the result payload of a tools/list response.
type toolsListResult struct {
	Tools []ToolDefinition `json:"tools"`
}

// serverInfo is returned in the initialize response.
type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// initializeResult is the initialize response result.
type initializeResult struct {
	ProtocolVersion string     `json:"protocolVersion"`
	ServerInfo      serverInfo `json:"serverInfo"`
}

// ProtocolError is a JSON-RPC error returned by the gateway despite a
// successful HTTP exchange. Raw preserves the error value exactly as
// received; it is not always a standard {code, message} object.
type ProtocolError struct {
	Raw json.RawMessage
}

// Error implements the error interface for ProtocolError.
func (e *ProtocolError) Error() string {
	return "MCP Error: " + string(e.Raw)
}

// Message extracts a human-readable message from the error value.
// Objects yield their "message" field when present, plain strings
// their value, anything else the raw JSON.
func (e *ProtocolError) Message() string {
	var obj map[string]any
	if err := json.Unmarshal(e.Raw, &obj); err == nil {
		if msg, ok := obj["message"].(string); ok {
			return msg
		}
		return string(e.Raw)
	}

	var s string
	if err := json.Unmarshal(e.Raw, &s); err == nil {
		return s
	}

	return string(e.Raw)
}

// Session drives the MCP protocol over a transport for one logical
// operation. The gateway treats every operation as its own
// short-lived session: initialize, the initialized notification, then
// exactly one tools/list or tools/call. Sessions are not safe for
// concurrent use; build a fresh one per operation.
type Session struct {
	transport Transport
	timeout   int // tools/call deadline in whole seconds
	logger    *slog.Logger
}

// NewSession creates a session over the given transport. timeoutSecs
// bounds tools/call; the handshake deadline derives from it.
func NewSession(transport Transport, timeoutSecs int, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		transport: transport,
		timeout:   timeoutSecs,
		logger:    logger,
	}
}

// Initialize performs the MCP handshake: an initialize request
// followed by the initialized notification. The notification is
// fire-and-forget; delivery failures are logged at debug and never
// fail the handshake.
//
// Transport and protocol errors return unwrapped so that operation
// layers can surface the gateway's wording verbatim.
func (s *Session) Initialize(ctx context.Context) error {
	params := map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]any{
			"roots":    map[string]any{"listChanged": true},
			"sampling": map[string]any{},
		},
		"clientInfo": map[string]any{
			"name":    clientName,
			"version": clientVersion,
		},
	}

	hctx, hcancel := context.WithTimeout(ctx, handshakeTimeout(s.timeout))
	defer hcancel()

	resp, err := s.transport.Send(hctx, NewRequest(initializeID, "initialize", params))
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return fmt.Errorf("MCP Error: %s", resp.Error)
	}

	// The result body is informational only; log it when parseable.
	var info initializeResult
	if err := json.Unmarshal(resp.Result, &info); err == nil {
		s.logger.Debug("MCP session initialized",
			"server_name", info.ServerInfo.Name,
			"server_version", info.ServerInfo.Version,
			"protocol_version", info.ProtocolVersion,
		)
	}

	nctx, ncancel := context.WithTimeout(ctx, notifyTimeout)
	defer ncancel()

	if err := s.transport.Notify(nctx, NewNotification("notifications/initialized", nil)); err != nil {
		s.logger.Debug("initialized notification failed", "error", err)
	}

	return nil
}

// ListTools calls tools/list and returns the available tool
// definitions. The request runs under the fixed discovery deadline.
func (s *Session) ListTools(ctx context.Context) ([]ToolDefinition, error) {
	lctx, lcancel := context.WithTimeout(ctx, discoveryTimeout)
	defer lcancel()

	resp, err := s.transport.Send(lctx, NewRequest(listToolsID, "tools/list", map[string]any{}))
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, &ProtocolError{Raw: resp.Error}
	}

	var result toolsListResult
	if len(resp.Result) > 0 {
		if err := json.Unmarshal(resp.Result, &result); err != nil {
			return nil, fmt.Errorf("unmarshal tools/list result: %w", err)
		}
	}

	s.logger.Debug("discovered MCP tools", "count", len(result.Tools))
	return result.Tools, nil
}

// CallTool invokes a tool by name with the given arguments. Text
// content blocks are joined with newlines and resource blocks are
// rendered as bracketed URI references; a response with no renderable
// content comes back as the raw response body.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	params := map[string]any{
		"name":      name,
		"arguments": args,
	}

	cctx, ccancel := context.WithTimeout(ctx, time.Duration(s.timeout)*time.Second)
	defer ccancel()

	resp, err := s.transport.Send(cctx, NewRequest(callToolID, "tools/call", params))
	if err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", &ProtocolError{Raw: resp.Error}
	}

	var result callToolResult
	if len(resp.Result) > 0 {
		if err := json.Unmarshal(resp.Result, &result); err != nil {
			return "", fmt.Errorf("unmarshal tools/call result: %w", err)
		}
	}

	text, ok := extractText(result.Content)
	if !ok {
		// Nothing renderable; hand the gateway's response back wholesale.
		if raw := resp.Raw(); len(raw) > 0 {
			return string(raw), nil
		}
		data, err := json.Marshal(resp)
		if err != nil {
			return "", fmt.Errorf("re-encode response: %w", err)
		}
		return string(data), nil
	}

	return text, nil
}

// extractText renders tools/call content blocks for a text-only
// caller. Content types other than text and resource carry nothing a
// text channel can use and are dropped. The boolean reports whether
// any renderable block was found; note that a single empty text block
// counts as renderable and yields the empty string.
func extractText(blocks []ContentBlock) (string, bool) {
	var parts []string
	for _, b := range blocks {
		switch b.Type {
		case "text":
			parts = append(parts, b.Text)
		case "resource":
			uri := "unknown"
			if b.Resource != nil && b.Resource.URI != "" {
				uri = b.Resource.URI
			}
			parts = append(parts, fmt.Sprintf("[Resource: %s]", uri))
		}
	}
	if parts == nil {
		return "", false
	}
	return strings.Join(parts, "\n"), true
}

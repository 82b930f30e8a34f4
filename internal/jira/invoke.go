package jira

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/GilGedje/OWUI-Tools/internal/mcp"
)

// errorResult is the JSON payload every failing operation returns.
type errorResult struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// errorPayload renders a failure the way callers expect: a JSON
// object with a single "error" member.
func errorPayload(msg string) string {
	data, _ := json.Marshal(errorResult{Error: msg})
	return string(data)
}

// patMissingPayload tells the caller how to fix an absent token.
func patMissingPayload() string {
	data, _ := json.Marshal(errorResult{
		Error:   "Jira PAT not configured",
		Message: "Please configure your Jira Personal Access Token in User Settings",
	})
	return string(data)
}

// callTool runs one MCP tool invocation end to end: credential gate,
// fresh gateway session, the call itself, and error-to-payload
// conversion. It never returns a Go error; every failure becomes a
// structured result string.
//
// The token check runs before any transport is built, so a caller
// without a PAT never generates network traffic.
func (c *Connector) callTool(ctx context.Context, name string, args map[string]any, creds Credentials) string {
	if creds.PAT == "" {
		return patMissingPayload()
	}

	tr := c.transport(creds)
	defer tr.Close()

	sess := mcp.NewSession(tr, creds.Timeout, c.logger)

	if err := sess.Initialize(ctx); err != nil {
		c.logger.Warn("MCP handshake failed", "tool", name, "error", err)
		return convertError(err, creds.Timeout)
	}

	result, err := sess.CallTool(ctx, name, args)
	if err != nil {
		c.logger.Warn("MCP tool call failed", "tool", name, "error", err)
		return convertError(err, creds.Timeout)
	}

	c.logger.Debug("MCP tool call completed", "tool", name, "result_bytes", len(result))
	return result
}

// convertError maps a session failure onto the caller-visible payload
// contract. Timeouts get an actionable message naming the timeout
// setting; gateway-reported tool errors surface their message field;
// everything else (transport status errors, handshake protocol
// errors, network faults) passes through with its own wording.
func convertError(err error, timeoutSecs int) string {
	if isTimeout(err) {
		return errorPayload(fmt.Sprintf(
			"Request timeout after %ds - try increasing REQUEST_TIMEOUT in user settings",
			timeoutSecs,
		))
	}

	var perr *mcp.ProtocolError
	if errors.As(err, &perr) {
		return errorPayload(perr.Message())
	}

	return errorPayload(err.Error())
}

// isTimeout reports whether err is a client-side deadline failure.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}

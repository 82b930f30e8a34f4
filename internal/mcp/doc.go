// Package mcp implements the client side of MCP (Model Context
// Protocol) as spoken by a LiteLLM-style gateway: JSON-RPC 2.0 over
// HTTP POST with session affinity carried in the Mcp-Session-Id
// header.
//
// The gateway treats every logical operation as its own short-lived
// session. A Session performs the initialize handshake (plus the
// fire-and-forget initialized notification) and then exactly one
// tools/list or tools/call. Results are normalized to plain text for
// the caller, and JSON-RPC error values are preserved verbatim so
// upstream wording survives all the way out.
//
// This implementation covers the client/host side only; it never acts
// as an MCP server.
package mcp

// Package jira exposes Jira operations backed by an MCP gateway.
//
// The Connector translates each operation (search, issue reads, sprint
// and board listings, writes, discovery, and a generic pass-through)
// into a short-lived MCP session against a LiteLLM-style proxy that
// routes to an Atlassian MCP server. Callers authenticate per request:
// the caller context carries a Jira personal access token, an optional
// proxy API key, and a request timeout.
//
// Operations never return Go errors. Every failure, from a missing
// token or timeout to a gateway-reported error or a policy-blocked
// write, becomes a structured string result at the operation boundary
// for the caller to parse or display.
package jira

package jira

import (
	"log/slog"

	"github.com/GilGedje/OWUI-Tools/internal/mcp"
	"github.com/GilGedje/OWUI-Tools/internal/tools"
)

// Config holds the process-wide connector settings. Per-caller
// settings (token, proxy key, timeout) arrive with each request
// instead; see Credentials.
type Config struct {
	// URL is the MCP gateway endpoint.
	URL string

	// ServerGroup selects the backend server group at the gateway
	// (the x-mcp-servers routing header).
	ServerGroup string

	// ReadOnly blocks every write tool, both the dedicated write
	// operations and writes attempted through the pass-through.
	ReadOnly bool

	// EnabledTools restricts discovery to the named tools. Empty
	// means every discovered jira_ tool is listed.
	EnabledTools []string
}

// Connector exposes Jira operations over an MCP gateway.
type Connector struct {
	cfg    Config
	logger *slog.Logger

	// transport builds the per-operation transport for the given
	// caller credentials. Tests substitute their own.
	transport func(creds Credentials) mcp.Transport
}

// New creates a connector for the given gateway configuration.
func New(cfg Config, logger *slog.Logger) *Connector {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Connector{
		cfg:    cfg,
		logger: logger.With("component", "jira"),
	}
	c.transport = c.httpTransport
	return c
}

// httpTransport builds the gateway transport for one operation. The
// routing group rides on every request; auth headers only when the
// caller supplied the matching credential.
func (c *Connector) httpTransport(creds Credentials) mcp.Transport {
	headers := map[string]string{
		"x-mcp-servers": c.cfg.ServerGroup,
	}
	if creds.APIKey != "" {
		headers["x-litellm-api-key"] = "Bearer " + creds.APIKey
	}
	if creds.PAT != "" {
		headers["x-mcp-jira-authorization"] = "Token " + creds.PAT
	}

	return mcp.NewHTTPTransport(mcp.HTTPConfig{
		URL:     c.cfg.URL,
		Headers: headers,
		Logger:  c.logger,
	})
}

// RegisterTools installs every Jira operation into the registry.
func (c *Connector) RegisterTools(r *tools.Registry) {
	c.registerDiscovery(r)
	c.registerReadTools(r)
	c.registerWriteTools(r)
	c.registerGeneric(r)
}

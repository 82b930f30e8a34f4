package jira

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/GilGedje/OWUI-Tools/internal/mcp"
	"github.com/GilGedje/OWUI-Tools/internal/tools"
)

// discoveredTool is one row of the discovery listing handed to the LLM.
type discoveredTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

func (c *Connector) registerDiscovery(r *tools.Registry) {
	r.Register(&tools.Tool{
		Name:        "discover_jira_tools",
		Description: "Discover all available Jira tools on the MCP server, with their descriptions and input schemas.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			return c.DiscoverTools(ctx, tools.CallerFromContext(ctx)), nil
		},
	})
}

// DiscoverTools runs its own handshake against the gateway, lists the
// server's tools, and filters the result to the jira_ prefix, the
// configured allow-list, and the read-only policy. The survivors are
// returned as indented JSON; every failure is returned as a structured
// error string, never as a Go error.
func (c *Connector) DiscoverTools(ctx context.Context, caller map[string]any) string {
	creds := resolveCredentials(caller)
	if creds.PAT == "" {
		return patMissingPayload()
	}

	tr := c.transport(creds)
	defer tr.Close()

	sess := mcp.NewSession(tr, creds.Timeout, c.logger)
	if err := sess.Initialize(ctx); err != nil {
		c.logger.Warn("discovery handshake failed", "error", err)
		return errorPayload("Discovery failed: " + err.Error())
	}

	defs, err := sess.ListTools(ctx)
	if err != nil {
		c.logger.Warn("discovery listing failed", "error", err)

		var te *mcp.TransportError
		if errors.As(err, &te) {
			return errorPayload(te.Error())
		}
		// The listing's own error object goes back whole, not just its
		// message field.
		var pe *mcp.ProtocolError
		if errors.As(err, &pe) {
			if out, merr := json.Marshal(map[string]any{"error": pe.Raw}); merr == nil {
				return string(out)
			}
		}
		return errorPayload("Discovery failed: " + err.Error())
	}

	allowed := map[string]struct{}{}
	for _, name := range c.cfg.EnabledTools {
		if name = strings.TrimSpace(name); name != "" {
			allowed[name] = struct{}{}
		}
	}

	listed := []discoveredTool{}
	for _, def := range defs {
		if !strings.HasPrefix(def.Name, "jira_") {
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[def.Name]; !ok {
				continue
			}
		}
		if c.cfg.ReadOnly && isWriteTool(def.Name) {
			continue
		}

		schema := def.InputSchema
		if schema == nil {
			schema = map[string]any{}
		}
		listed = append(listed, discoveredTool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: schema,
		})
	}

	c.logger.Debug("tool discovery complete", "total", len(defs), "listed", len(listed))

	out, err := json.MarshalIndent(listed, "", "  ")
	if err != nil {
		return errorPayload("Discovery failed: " + err.Error())
	}
	return string(out)
}

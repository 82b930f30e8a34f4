package jira

import (
	"context"
	"encoding/json"

	"github.com/GilGedje/OWUI-Tools/internal/tools"
)

// registerGeneric installs the pass-through operation for gateway tools
// that have no dedicated registration, such as the batch and sprint
// management tools. The read-only gate looks the requested name up in
// the write set dynamically since the name is caller-supplied.
func (c *Connector) registerGeneric(r *tools.Registry) {
	r.Register(&tools.Tool{
		Name:        "call_mcp_tool",
		Description: "Call any Jira MCP tool directly by name. Use discover_jira_tools first to see available tools and their schemas.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"tool_name": map[string]any{
					"type":        "string",
					"description": `The MCP tool name (e.g., "jira_batch_create_issues")`,
				},
				"arguments": map[string]any{
					"type":        "string",
					"description": `Tool arguments as a JSON object string (e.g., "{\"project_key\": \"PROJ\"}")`,
				},
			},
			"required": []string{"tool_name"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			toolName := stringArg(args, "tool_name", "")
			if c.cfg.ReadOnly && isWriteTool(toolName) {
				return readOnlyMessage("execute '" + toolName + "'"), nil
			}

			var arguments map[string]any
			raw := stringArg(args, "arguments", "")
			if raw == "" {
				arguments = map[string]any{}
			} else if err := json.Unmarshal([]byte(raw), &arguments); err != nil {
				return errorPayload("Invalid JSON arguments: " + err.Error()), nil
			}

			creds := resolveCredentials(tools.CallerFromContext(ctx))
			return c.callTool(ctx, toolName, arguments, creds), nil
		},
	})
}

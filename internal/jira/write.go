package jira

import (
	"context"
	"strings"

	"github.com/GilGedje/OWUI-Tools/internal/tools"
)

// registerWriteTools installs the mutating operations. Every handler
// checks the read-only policy before resolving credentials so that a
// locked-down deployment never reaches the gateway.
func (c *Connector) registerWriteTools(r *tools.Registry) {
	r.Register(&tools.Tool{
		Name:        "jira_create_issue",
		Description: "Create a new Jira issue.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"project_key": map[string]any{
					"type":        "string",
					"description": `The project key (e.g., "PROJ")`,
				},
				"summary": map[string]any{
					"type":        "string",
					"description": "Issue title/summary",
				},
				"issue_type": map[string]any{
					"type":        "string",
					"description": `Issue type (e.g., "Task", "Bug", "Story"; default: "Task")`,
				},
				"description": map[string]any{
					"type":        "string",
					"description": "Detailed issue description",
				},
				"assignee": map[string]any{
					"type":        "string",
					"description": "Username or email of the assignee",
				},
				"priority": map[string]any{
					"type":        "string",
					"description": `Priority name (e.g., "High", "Medium", "Low")`,
				},
				"labels": map[string]any{
					"type":        "string",
					"description": "Comma-separated list of labels",
				},
			},
			"required": []string{"project_key", "summary"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			if c.cfg.ReadOnly {
				return readOnlyMessage("create a new Jira issue"), nil
			}
			creds := resolveCredentials(tools.CallerFromContext(ctx))

			arguments := map[string]any{
				"project_key": stringArg(args, "project_key", ""),
				"summary":     stringArg(args, "summary", ""),
				"issue_type":  stringArg(args, "issue_type", "Task"),
			}
			if description := stringArg(args, "description", ""); description != "" {
				arguments["description"] = description
			}
			if assignee := stringArg(args, "assignee", ""); assignee != "" {
				arguments["assignee"] = assignee
			}
			if priority := stringArg(args, "priority", ""); priority != "" {
				arguments["priority"] = priority
			}
			if labels := stringArg(args, "labels", ""); labels != "" {
				arguments["labels"] = labels
			}

			return c.callTool(ctx, "jira_create_issue", arguments, creds), nil
		},
	})

	r.Register(&tools.Tool{
		Name:        "jira_update_issue",
		Description: "Update an existing Jira issue's fields.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"issue_key": map[string]any{
					"type":        "string",
					"description": `The issue key (e.g., "PROJ-123")`,
				},
				"summary": map[string]any{
					"type":        "string",
					"description": "New summary/title",
				},
				"description": map[string]any{
					"type":        "string",
					"description": "New description",
				},
				"assignee": map[string]any{
					"type":        "string",
					"description": "New assignee username or email",
				},
				"priority": map[string]any{
					"type":        "string",
					"description": `New priority name (e.g., "High")`,
				},
				"labels": map[string]any{
					"type":        "string",
					"description": "Comma-separated list of labels (replaces existing labels)",
				},
			},
			"required": []string{"issue_key"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			issueKey := stringArg(args, "issue_key", "")
			if c.cfg.ReadOnly {
				return readOnlyMessage("update issue " + issueKey), nil
			}
			creds := resolveCredentials(tools.CallerFromContext(ctx))

			fields := map[string]any{}
			if summary := stringArg(args, "summary", ""); summary != "" {
				fields["summary"] = summary
			}
			if description := stringArg(args, "description", ""); description != "" {
				fields["description"] = description
			}
			if assignee := stringArg(args, "assignee", ""); assignee != "" {
				fields["assignee"] = assignee
			}
			if priority := stringArg(args, "priority", ""); priority != "" {
				fields["priority"] = map[string]any{"name": priority}
			}
			if labels := stringArg(args, "labels", ""); labels != "" {
				parts := strings.Split(labels, ",")
				for i := range parts {
					parts[i] = strings.TrimSpace(parts[i])
				}
				fields["labels"] = parts
			}

			arguments := map[string]any{
				"issue_key": issueKey,
				"fields":    fields,
			}

			return c.callTool(ctx, "jira_update_issue", arguments, creds), nil
		},
	})

	r.Register(&tools.Tool{
		Name:        "jira_transition_issue",
		Description: "Transition an issue to a new status (e.g., move to In Progress, Done).",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"issue_key": map[string]any{
					"type":        "string",
					"description": `The issue key (e.g., "PROJ-123")`,
				},
				"transition_id": map[string]any{
					"type":        "string",
					"description": "The transition ID (get available IDs from jira_get_transitions)",
				},
				"comment": map[string]any{
					"type":        "string",
					"description": "Optional comment to add with the transition",
				},
			},
			"required": []string{"issue_key", "transition_id"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			issueKey := stringArg(args, "issue_key", "")
			if c.cfg.ReadOnly {
				return readOnlyMessage("transition issue " + issueKey), nil
			}
			creds := resolveCredentials(tools.CallerFromContext(ctx))

			arguments := map[string]any{
				"issue_key":     issueKey,
				"transition_id": stringArg(args, "transition_id", ""),
			}
			if comment := stringArg(args, "comment", ""); comment != "" {
				arguments["comment"] = comment
			}

			return c.callTool(ctx, "jira_transition_issue", arguments, creds), nil
		},
	})

	r.Register(&tools.Tool{
		Name:        "jira_add_comment",
		Description: "Add a comment to a Jira issue.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"issue_key": map[string]any{
					"type":        "string",
					"description": `The issue key (e.g., "PROJ-123")`,
				},
				"comment": map[string]any{
					"type":        "string",
					"description": "The comment text (supports Jira markup)",
				},
			},
			"required": []string{"issue_key", "comment"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			issueKey := stringArg(args, "issue_key", "")
			if c.cfg.ReadOnly {
				return readOnlyMessage("add a comment to issue " + issueKey), nil
			}
			creds := resolveCredentials(tools.CallerFromContext(ctx))

			arguments := map[string]any{
				"issue_key": issueKey,
				"comment":   stringArg(args, "comment", ""),
			}

			return c.callTool(ctx, "jira_add_comment", arguments, creds), nil
		},
	})

	r.Register(&tools.Tool{
		Name:        "jira_add_worklog",
		Description: "Log work time on a Jira issue.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"issue_key": map[string]any{
					"type":        "string",
					"description": `The issue key (e.g., "PROJ-123")`,
				},
				"time_spent": map[string]any{
					"type":        "string",
					"description": `Time spent in Jira format (e.g., "2h 30m", "1d", "45m")`,
				},
				"comment": map[string]any{
					"type":        "string",
					"description": "Optional description of the work done",
				},
				"started": map[string]any{
					"type":        "string",
					"description": "Optional start time in ISO format (defaults to now)",
				},
			},
			"required": []string{"issue_key", "time_spent"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			issueKey := stringArg(args, "issue_key", "")
			if c.cfg.ReadOnly {
				return readOnlyMessage("add a worklog to issue " + issueKey), nil
			}
			creds := resolveCredentials(tools.CallerFromContext(ctx))

			arguments := map[string]any{
				"issue_key":  issueKey,
				"time_spent": stringArg(args, "time_spent", ""),
			}
			if comment := stringArg(args, "comment", ""); comment != "" {
				arguments["comment"] = comment
			}
			if started := stringArg(args, "started", ""); started != "" {
				arguments["started"] = started
			}

			return c.callTool(ctx, "jira_add_worklog", arguments, creds), nil
		},
	})

	r.Register(&tools.Tool{
		Name:        "jira_link_to_epic",
		Description: "Link an issue to an epic.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"issue_key": map[string]any{
					"type":        "string",
					"description": `The issue key to link (e.g., "PROJ-123")`,
				},
				"epic_key": map[string]any{
					"type":        "string",
					"description": `The epic's issue key (e.g., "PROJ-100")`,
				},
			},
			"required": []string{"issue_key", "epic_key"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			issueKey := stringArg(args, "issue_key", "")
			epicKey := stringArg(args, "epic_key", "")
			if c.cfg.ReadOnly {
				return readOnlyMessage("link issue " + issueKey + " to epic " + epicKey), nil
			}
			creds := resolveCredentials(tools.CallerFromContext(ctx))

			arguments := map[string]any{
				"issue_key": issueKey,
				"epic_key":  epicKey,
			}

			return c.callTool(ctx, "jira_link_to_epic", arguments, creds), nil
		},
	})

	r.Register(&tools.Tool{
		Name:        "jira_create_issue_link",
		Description: "Create a link between two issues (e.g., blocks, relates to).",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"link_type": map[string]any{
					"type":        "string",
					"description": `The link type name (get available types from jira_get_link_types, e.g., "Blocks")`,
				},
				"inward_issue_key": map[string]any{
					"type":        "string",
					"description": `The inward issue key (e.g., "PROJ-123")`,
				},
				"outward_issue_key": map[string]any{
					"type":        "string",
					"description": `The outward issue key (e.g., "PROJ-456")`,
				},
				"comment": map[string]any{
					"type":        "string",
					"description": "Optional comment to add with the link",
				},
			},
			"required": []string{"link_type", "inward_issue_key", "outward_issue_key"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			inwardKey := stringArg(args, "inward_issue_key", "")
			outwardKey := stringArg(args, "outward_issue_key", "")
			if c.cfg.ReadOnly {
				return readOnlyMessage("create a link between " + inwardKey + " and " + outwardKey), nil
			}
			creds := resolveCredentials(tools.CallerFromContext(ctx))

			arguments := map[string]any{
				"link_type":         stringArg(args, "link_type", ""),
				"inward_issue_key":  inwardKey,
				"outward_issue_key": outwardKey,
			}
			if comment := stringArg(args, "comment", ""); comment != "" {
				arguments["comment"] = comment
			}

			return c.callTool(ctx, "jira_create_issue_link", arguments, creds), nil
		},
	})

	r.Register(&tools.Tool{
		Name:        "jira_delete_issue",
		Description: "Delete a Jira issue. Use with caution - this is permanent.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"issue_key": map[string]any{
					"type":        "string",
					"description": `The issue key to delete (e.g., "PROJ-123")`,
				},
			},
			"required": []string{"issue_key"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			issueKey := stringArg(args, "issue_key", "")
			if c.cfg.ReadOnly {
				return readOnlyMessage("delete issue " + issueKey), nil
			}
			creds := resolveCredentials(tools.CallerFromContext(ctx))

			arguments := map[string]any{
				"issue_key": issueKey,
			}

			return c.callTool(ctx, "jira_delete_issue", arguments, creds), nil
		},
	})
}

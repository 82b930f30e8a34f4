package jira

import (
	"context"

	"github.com/GilGedje/OWUI-Tools/internal/tools"
)

// registerReadTools installs the read-side operations. These never
// consult the read-only policy; they are safe under any configuration.
func (c *Connector) registerReadTools(r *tools.Registry) {
	r.Register(&tools.Tool{
		Name:        "jira_search",
		Description: "Search for Jira issues using JQL (Jira Query Language).",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"jql": map[string]any{
					"type":        "string",
					"description": `JQL query string (e.g., "project = MYPROJ AND status = Open", "assignee = currentUser()", "updated >= -7d")`,
				},
				"max_results": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 20)",
				},
				"fields": map[string]any{
					"type":        "string",
					"description": "Comma-separated list of fields to return (leave empty for default fields)",
				},
			},
			"required": []string{"jql"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			creds := resolveCredentials(tools.CallerFromContext(ctx))

			arguments := map[string]any{
				"jql":   stringArg(args, "jql", ""),
				"limit": intArg(args, "max_results", 20),
			}
			if fields := stringArg(args, "fields", ""); fields != "" {
				arguments["fields"] = fields
			}

			return c.callTool(ctx, "jira_search", arguments, creds), nil
		},
	})

	r.Register(&tools.Tool{
		Name:        "jira_get_issue",
		Description: "Get detailed information about a specific Jira issue.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"issue_key": map[string]any{
					"type":        "string",
					"description": `The issue key (e.g., "PROJ-123", "DEV-456")`,
				},
				"expand": map[string]any{
					"type":        "string",
					"description": `Optional comma-separated list of fields to expand (e.g., "changelog,transitions")`,
				},
			},
			"required": []string{"issue_key"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			creds := resolveCredentials(tools.CallerFromContext(ctx))

			arguments := map[string]any{
				"issue_key": stringArg(args, "issue_key", ""),
			}
			if expand := stringArg(args, "expand", ""); expand != "" {
				arguments["expand"] = expand
			}

			return c.callTool(ctx, "jira_get_issue", arguments, creds), nil
		},
	})

	r.Register(&tools.Tool{
		Name:        "jira_get_all_projects",
		Description: "Get a list of all Jira projects the user has access to.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			creds := resolveCredentials(tools.CallerFromContext(ctx))
			return c.callTool(ctx, "jira_get_all_projects", map[string]any{}, creds), nil
		},
	})

	r.Register(&tools.Tool{
		Name:        "jira_get_project_issues",
		Description: "Get all issues from a specific project.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"project_key": map[string]any{
					"type":        "string",
					"description": `The project key (e.g., "PROJ", "DEV")`,
				},
				"max_results": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 50)",
				},
			},
			"required": []string{"project_key"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			creds := resolveCredentials(tools.CallerFromContext(ctx))

			arguments := map[string]any{
				"project_key": stringArg(args, "project_key", ""),
				"limit":       intArg(args, "max_results", 50),
			}

			return c.callTool(ctx, "jira_get_project_issues", arguments, creds), nil
		},
	})

	r.Register(&tools.Tool{
		Name:        "jira_get_transitions",
		Description: "Get available status transitions for an issue. Use this to see what status changes are possible.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"issue_key": map[string]any{
					"type":        "string",
					"description": `The issue key (e.g., "PROJ-123")`,
				},
			},
			"required": []string{"issue_key"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			creds := resolveCredentials(tools.CallerFromContext(ctx))

			arguments := map[string]any{
				"issue_key": stringArg(args, "issue_key", ""),
			}

			return c.callTool(ctx, "jira_get_transitions", arguments, creds), nil
		},
	})

	r.Register(&tools.Tool{
		Name:        "jira_get_agile_boards",
		Description: "Get all agile boards, optionally filtered by project.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"project_key": map[string]any{
					"type":        "string",
					"description": "Optional project key to filter boards",
				},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			creds := resolveCredentials(tools.CallerFromContext(ctx))

			arguments := map[string]any{}
			if projectKey := stringArg(args, "project_key", ""); projectKey != "" {
				arguments["project_key"] = projectKey
			}

			return c.callTool(ctx, "jira_get_agile_boards", arguments, creds), nil
		},
	})

	r.Register(&tools.Tool{
		Name:        "jira_get_sprints_from_board",
		Description: "Get sprints from a specific agile board.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"board_id": map[string]any{
					"type":        "string",
					"description": "The board ID (get this from jira_get_agile_boards)",
				},
				"state": map[string]any{
					"type":        "string",
					"description": `Optional filter by state: "active", "closed", or "future"`,
				},
			},
			"required": []string{"board_id"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			creds := resolveCredentials(tools.CallerFromContext(ctx))

			arguments := map[string]any{
				"board_id": stringArg(args, "board_id", ""),
			}
			if state := stringArg(args, "state", ""); state != "" {
				arguments["state"] = state
			}

			return c.callTool(ctx, "jira_get_sprints_from_board", arguments, creds), nil
		},
	})

	r.Register(&tools.Tool{
		Name:        "jira_get_sprint_issues",
		Description: "Get all issues in a specific sprint.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"sprint_id": map[string]any{
					"type":        "string",
					"description": "The sprint ID (get this from jira_get_sprints_from_board)",
				},
			},
			"required": []string{"sprint_id"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			creds := resolveCredentials(tools.CallerFromContext(ctx))

			arguments := map[string]any{
				"sprint_id": stringArg(args, "sprint_id", ""),
			}

			return c.callTool(ctx, "jira_get_sprint_issues", arguments, creds), nil
		},
	})

	r.Register(&tools.Tool{
		Name:        "jira_get_worklog",
		Description: "Get worklog entries for a specific issue.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"issue_key": map[string]any{
					"type":        "string",
					"description": `The issue key (e.g., "PROJ-123")`,
				},
			},
			"required": []string{"issue_key"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			creds := resolveCredentials(tools.CallerFromContext(ctx))

			arguments := map[string]any{
				"issue_key": stringArg(args, "issue_key", ""),
			}

			return c.callTool(ctx, "jira_get_worklog", arguments, creds), nil
		},
	})

	r.Register(&tools.Tool{
		Name:        "jira_get_user_profile",
		Description: "Get profile information for a Jira user.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"user_identifier": map[string]any{
					"type":        "string",
					"description": "User email, username, or account ID",
				},
			},
			"required": []string{"user_identifier"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			creds := resolveCredentials(tools.CallerFromContext(ctx))

			arguments := map[string]any{
				"user_identifier": stringArg(args, "user_identifier", ""),
			}

			return c.callTool(ctx, "jira_get_user_profile", arguments, creds), nil
		},
	})

	r.Register(&tools.Tool{
		Name:        "jira_search_fields",
		Description: "Search for available Jira fields by keyword. Useful for finding custom field IDs.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"keyword": map[string]any{
					"type":        "string",
					"description": "Search keyword (leave empty to list all fields)",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results (default: 10)",
				},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			creds := resolveCredentials(tools.CallerFromContext(ctx))

			// Both arguments are always sent, even an empty keyword.
			arguments := map[string]any{
				"keyword": stringArg(args, "keyword", ""),
				"limit":   intArg(args, "limit", 10),
			}

			return c.callTool(ctx, "jira_search_fields", arguments, creds), nil
		},
	})

	r.Register(&tools.Tool{
		Name:        "jira_get_project_versions",
		Description: "Get all versions/releases for a project.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"project_key": map[string]any{
					"type":        "string",
					"description": `The project key (e.g., "PROJ")`,
				},
			},
			"required": []string{"project_key"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			creds := resolveCredentials(tools.CallerFromContext(ctx))

			arguments := map[string]any{
				"project_key": stringArg(args, "project_key", ""),
			}

			return c.callTool(ctx, "jira_get_project_versions", arguments, creds), nil
		},
	})

	r.Register(&tools.Tool{
		Name:        "jira_get_board_issues",
		Description: "Get issues from a specific agile board, optionally filtered by JQL.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"board_id": map[string]any{
					"type":        "string",
					"description": "The board ID",
				},
				"jql": map[string]any{
					"type":        "string",
					"description": "Optional JQL to filter issues",
				},
				"max_results": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results (default: 50)",
				},
			},
			"required": []string{"board_id"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			creds := resolveCredentials(tools.CallerFromContext(ctx))

			// An empty JQL falls back to board rank order.
			jql := stringArg(args, "jql", "")
			if jql == "" {
				jql = "order by rank"
			}

			arguments := map[string]any{
				"board_id": stringArg(args, "board_id", ""),
				"jql":      jql,
				"limit":    intArg(args, "max_results", 50),
			}

			return c.callTool(ctx, "jira_get_board_issues", arguments, creds), nil
		},
	})

	r.Register(&tools.Tool{
		Name:        "jira_get_link_types",
		Description: `Get all available issue link types (e.g., "blocks", "is blocked by", "relates to").`,
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			creds := resolveCredentials(tools.CallerFromContext(ctx))
			return c.callTool(ctx, "jira_get_link_types", map[string]any{}, creds), nil
		},
	})
}

package jira

import (
	"net/http/httptest"
	"reflect"
	"testing"
)

// TestReadToolArguments pins the exact gateway argument shape for every
// read operation, including defaulted limits and omitted optionals.
func TestReadToolArguments(t *testing.T) {
	cases := []struct {
		name string
		tool string
		args string
		want map[string]any
	}{
		{
			name: "search defaults",
			tool: "jira_search",
			args: `{"jql":"project = X AND status = Open"}`,
			want: map[string]any{"jql": "project = X AND status = Open", "limit": float64(20)},
		},
		{
			name: "search with fields and limit",
			tool: "jira_search",
			args: `{"jql":"assignee = currentUser()","max_results":5,"fields":"summary,status"}`,
			want: map[string]any{"jql": "assignee = currentUser()", "limit": float64(5), "fields": "summary,status"},
		},
		{
			name: "get issue",
			tool: "jira_get_issue",
			args: `{"issue_key":"PROJ-123"}`,
			want: map[string]any{"issue_key": "PROJ-123"},
		},
		{
			name: "get issue with expand",
			tool: "jira_get_issue",
			args: `{"issue_key":"PROJ-123","expand":"changelog,transitions"}`,
			want: map[string]any{"issue_key": "PROJ-123", "expand": "changelog,transitions"},
		},
		{
			name: "all projects",
			tool: "jira_get_all_projects",
			args: `{}`,
			want: map[string]any{},
		},
		{
			name: "project issues default limit",
			tool: "jira_get_project_issues",
			args: `{"project_key":"PROJ"}`,
			want: map[string]any{"project_key": "PROJ", "limit": float64(50)},
		},
		{
			name: "transitions",
			tool: "jira_get_transitions",
			args: `{"issue_key":"PROJ-7"}`,
			want: map[string]any{"issue_key": "PROJ-7"},
		},
		{
			name: "agile boards unfiltered",
			tool: "jira_get_agile_boards",
			args: `{}`,
			want: map[string]any{},
		},
		{
			name: "agile boards by project",
			tool: "jira_get_agile_boards",
			args: `{"project_key":"PROJ"}`,
			want: map[string]any{"project_key": "PROJ"},
		},
		{
			name: "sprints from board",
			tool: "jira_get_sprints_from_board",
			args: `{"board_id":"42"}`,
			want: map[string]any{"board_id": "42"},
		},
		{
			name: "sprints from board with state",
			tool: "jira_get_sprints_from_board",
			args: `{"board_id":"42","state":"active"}`,
			want: map[string]any{"board_id": "42", "state": "active"},
		},
		{
			name: "sprint issues",
			tool: "jira_get_sprint_issues",
			args: `{"sprint_id":"101"}`,
			want: map[string]any{"sprint_id": "101"},
		},
		{
			name: "worklog",
			tool: "jira_get_worklog",
			args: `{"issue_key":"PROJ-9"}`,
			want: map[string]any{"issue_key": "PROJ-9"},
		},
		{
			name: "user profile",
			tool: "jira_get_user_profile",
			args: `{"user_identifier":"jdoe@example.com"}`,
			want: map[string]any{"user_identifier": "jdoe@example.com"},
		},
		{
			name: "search fields sends empty keyword",
			tool: "jira_search_fields",
			args: `{}`,
			want: map[string]any{"keyword": "", "limit": float64(10)},
		},
		{
			name: "search fields with keyword",
			tool: "jira_search_fields",
			args: `{"keyword":"sprint","limit":3}`,
			want: map[string]any{"keyword": "sprint", "limit": float64(3)},
		},
		{
			name: "project versions",
			tool: "jira_get_project_versions",
			args: `{"project_key":"PROJ"}`,
			want: map[string]any{"project_key": "PROJ"},
		},
		{
			name: "board issues falls back to rank order",
			tool: "jira_get_board_issues",
			args: `{"board_id":"9"}`,
			want: map[string]any{"board_id": "9", "jql": "order by rank", "limit": float64(50)},
		},
		{
			name: "board issues with jql",
			tool: "jira_get_board_issues",
			args: `{"board_id":"9","jql":"type = Bug","max_results":10}`,
			want: map[string]any{"board_id": "9", "jql": "type = Bug", "limit": float64(10)},
		},
		{
			name: "link types",
			tool: "jira_get_link_types",
			args: `{}`,
			want: map[string]any{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := &fakeGateway{}
			srv := httptest.NewServer(gw.handler())
			defer srv.Close()

			_, r := newTestConnector(t, Config{URL: srv.URL})
			execute(t, r, patContext(), tc.tool, tc.args)

			if name := gw.lastCallName(t); name != tc.tool {
				t.Errorf("forwarded tool = %q, want %q", name, tc.tool)
			}
			if got := gw.lastCallArguments(t); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("arguments = %#v, want %#v", got, tc.want)
			}
		})
	}
}

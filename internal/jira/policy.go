package jira

// writeTools names every tool that mutates Jira state. The read-only
// gate blocks these by name, covering both the dedicated write
// operations and anything reached through the generic pass-through.
var writeTools = map[string]struct{}{
	"jira_create_issue":             {},
	"jira_update_issue":             {},
	"jira_delete_issue":             {},
	"jira_batch_create_issues":      {},
	"jira_add_comment":              {},
	"jira_transition_issue":         {},
	"jira_add_worklog":              {},
	"jira_link_to_epic":             {},
	"jira_create_sprint":            {},
	"jira_update_sprint":            {},
	"jira_create_issue_link":        {},
	"jira_remove_issue_link":        {},
	"jira_create_version":           {},
	"jira_batch_create_versions":    {},
	"jira_create_remote_issue_link": {},
}

// isWriteTool reports whether the named tool mutates Jira state.
func isWriteTool(name string) bool {
	_, ok := writeTools[name]
	return ok
}

// readOnlyMessage explains a blocked write in terms the caller can
// act on. operation describes the attempted action in the imperative,
// e.g. "update issue PROJ-123".
func readOnlyMessage(operation string) string {
	return "🔒 **Read-Only Mode Active**\n\n" +
		"I cannot " + operation + " because the Jira integration is currently in read-only mode. " +
		"This is a safety setting configured by your administrator.\n\n" +
		"If you need to perform this action, please:\n" +
		"1. Contact your administrator to enable write access, or\n" +
		"2. Perform this action directly in Jira"
}

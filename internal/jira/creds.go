package jira

import "strconv"

// defaultTimeout is the tools/call deadline in seconds when the
// caller does not choose one.
const defaultTimeout = 120

// Credentials are the per-caller settings resolved from the request's
// caller context.
type Credentials struct {
	// APIKey authenticates against the LiteLLM proxy. Optional.
	APIKey string

	// PAT is the caller's Jira personal access token. Operations
	// refuse to touch the network without one.
	PAT string

	// Timeout is the tools/call deadline in whole seconds.
	Timeout int
}

// resolveCredentials pulls per-caller settings out of the opaque
// caller context. The context's "valves" entry is a loose map keyed
// the way user settings arrive from the host (LITELLM_API_KEY,
// JIRA_PAT, REQUEST_TIMEOUT); absent entries and unknown shapes fall
// back to defaults.
func resolveCredentials(caller map[string]any) Credentials {
	creds := Credentials{Timeout: defaultTimeout}

	if caller == nil {
		return creds
	}
	valves, ok := caller["valves"].(map[string]any)
	if !ok {
		return creds
	}

	if v, ok := valves["LITELLM_API_KEY"].(string); ok {
		creds.APIKey = v
	}
	if v, ok := valves["JIRA_PAT"].(string); ok {
		creds.PAT = v
	}

	switch v := valves["REQUEST_TIMEOUT"].(type) {
	case float64:
		creds.Timeout = int(v)
	case int:
		creds.Timeout = v
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			creds.Timeout = n
		}
	}

	return creds
}

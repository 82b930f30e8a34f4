package tools

import "context"

type contextKey string

const callerKey contextKey = "caller"

// WithCaller attaches the opaque caller context (the request's user
// object, including its valves) to ctx. Nil callers are ignored
// (the original context is returned unchanged).
func WithCaller(ctx context.Context, caller map[string]any) context.Context {
	if caller == nil {
		return ctx
	}
	return context.WithValue(ctx, callerKey, caller)
}

// CallerFromContext extracts the caller context. Returns nil when the
// request carried none.
func CallerFromContext(ctx context.Context) map[string]any {
	if c, ok := ctx.Value(callerKey).(map[string]any); ok {
		return c
	}
	return nil
}

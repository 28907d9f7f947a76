// Package kit holds the context keys shared between the HTTP middleware
// layers and the request handlers.
package kit

import "context"

type contextKey string

const (
	UserKey    contextKey = "kit_user"
	TraceIDKey contextKey = "kit_trace_id"
)

func WithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, UserKey, username)
}

// GetUser returns the authenticated username, or "" when the request
// carries no session.
func GetUser(ctx context.Context) string {
	v, _ := ctx.Value(UserKey).(string)
	return v
}

func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, TraceIDKey, id)
}

func GetTraceID(ctx context.Context) string {
	v, _ := ctx.Value(TraceIDKey).(string)
	return v
}

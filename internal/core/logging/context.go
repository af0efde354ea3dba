package logging

import "context"

type contextKey string

const (
	todoFileKey contextKey = "todo_file"
	runIDKey    contextKey = "run_id"
)

// WithTodoFile adds the resolved todo file path to the context.
func WithTodoFile(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, todoFileKey, path)
}

// WithRunID adds a per-invocation identifier to the context.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// GetTodoFile retrieves the todo file path from the context.
// Returns empty string if not present.
func GetTodoFile(ctx context.Context) string {
	if v, ok := ctx.Value(todoFileKey).(string); ok {
		return v
	}
	return ""
}

// GetRunID retrieves the run ID from the context.
// Returns empty string if not present.
func GetRunID(ctx context.Context) string {
	if v, ok := ctx.Value(runIDKey).(string); ok {
		return v
	}
	return ""
}

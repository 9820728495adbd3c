package services

import "context"

type contextKey string

const (
	runIDKey   contextKey = "run_id"
	serviceKey contextKey = "service"
)

// WithRunID annotates context with the identifier of the current invocation.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the invocation identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithService annotates context with the media service being reconciled.
func WithService(ctx context.Context, service string) context.Context {
	if service == "" {
		return ctx
	}
	return context.WithValue(ctx, serviceKey, service)
}

// ServiceFromContext returns the media service name if present.
func ServiceFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(serviceKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

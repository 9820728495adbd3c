package logging

import (
	"context"
	"log/slog"

	"mediasweep/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized key for the per-invocation identifier.
	FieldRunID = "run_id"
	// FieldService is the standardized key for the media service (radarr, sonarr).
	FieldService = "service"
	// FieldPath is the standardized key for filesystem paths.
	FieldPath = "path"
	// FieldCount is the standardized key for set and list sizes.
	FieldCount = "count"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if rid, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, rid))
	}
	if svc, ok := services.ServiceFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldService, svc))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}

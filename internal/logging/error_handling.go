package logging

import (
	"context"
	"io"
	"log/slog"
)

// SafeCloseWithLogging closes a resource and logs any errors that occur
func SafeCloseWithLogging(closer io.Closer, logger *slog.Logger, operation string) {
	if closer == nil {
		return
	}

	if err := closer.Close(); err != nil {
		LogError(logger, "failed to close resource", err,
			slog.String("operation", operation),
			slog.String("component", "resource_management"))
	}
}

// Shutdowner is implemented by *http.Server.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// ShutdownWithLogging gracefully stops s and logs a failure instead of
// returning it; it is meant for deferred cleanup during process exit.
func ShutdownWithLogging(ctx context.Context, s Shutdowner, logger *slog.Logger, operation string) {
	if s == nil {
		return
	}

	if err := s.Shutdown(ctx); err != nil {
		LogError(logger, "graceful shutdown failed", err,
			slog.String("operation", operation),
			slog.String("component", "lifecycle"))
		return
	}
	LogOperation(logger, "shutdown_complete", slog.String("operation", operation))
}

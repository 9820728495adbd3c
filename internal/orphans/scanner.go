package orphans

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"mediasweep/internal/logging"
	"mediasweep/internal/services"
)

// PathLister returns the canonical directories a media manager tracks.
type PathLister interface {
	ListPaths(ctx context.Context) ([]string, error)
}

// Scanner builds the Known and Observed sets for one media library.
type Scanner struct {
	Lister     PathLister
	MediaRoot  string
	Extensions Extensions
	Logger     *slog.Logger

	// ServiceName and ServiceURL only label log output.
	ServiceName string
	ServiceURL  string
}

// Run fetches the canonical directories, walks them and the media root, and
// reconciles the two sets. Errors from the lister are returned unchanged so
// callers can inspect status failures.
func (s *Scanner) Run(ctx context.Context) (Result, error) {
	if s.Lister == nil {
		return Result{}, services.Wrap(services.ErrConfiguration, "orphans", "run", "path lister is required", nil)
	}
	if len(s.Extensions) == 0 {
		return Result{}, services.Wrap(services.ErrConfiguration, "orphans", "run", "at least one extension is required", nil)
	}
	logger := s.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.WithContext(ctx, logger)

	dirs, err := s.Lister.ListPaths(ctx)
	if err != nil {
		return Result{}, err
	}
	logger.Info(fmt.Sprintf("Connected to %s at %s", s.serviceName(), s.ServiceURL),
		logging.Int("directories", len(dirs)),
	)

	known, err := s.collectKnown(ctx, logger, dirs)
	if err != nil {
		return Result{}, err
	}
	logger.Info(fmt.Sprintf("Known database files collected: %d", known.Len()))

	observed, err := Walk(ctx, s.MediaRoot, s.Extensions)
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			return Result{}, err
		}
		logger.Warn("media root not found; treating it as empty",
			logging.String(logging.FieldPath, s.MediaRoot),
			logging.Error(err),
		)
	}
	logger.Info(fmt.Sprintf("Found %d eligible files in %s.", len(observed), s.MediaRoot))

	result := Reconcile(known, observed)
	logger.Debug("reconciliation complete",
		logging.Int("orphaned", len(result.Orphaned)),
		logging.Int("exclusive", len(result.Exclusive)),
	)
	return result, nil
}

func (s *Scanner) collectKnown(ctx context.Context, logger *slog.Logger, dirs []string) (PathSet, error) {
	known := make(PathSet)
	for _, dir := range dirs {
		paths, err := Walk(ctx, dir, s.Extensions)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				logger.Debug("canonical directory missing on disk",
					logging.String(logging.FieldPath, dir),
				)
				continue
			}
			return nil, err
		}
		for _, p := range paths {
			known.Add(p)
		}
	}
	return known, nil
}

func (s *Scanner) serviceName() string {
	if s.ServiceName != "" {
		return s.ServiceName
	}
	return "service"
}

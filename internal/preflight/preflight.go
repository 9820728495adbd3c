package preflight

import (
	"context"

	"mediasweep/internal/config"
	"mediasweep/internal/services/arr"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Options selects the optional checks RunService performs.
type Options struct {
	// Connect queries the service API in addition to the local checks.
	Connect bool
}

// RunService executes the checks for one service section.
func RunService(ctx context.Context, cfg *config.Config, kind arr.Kind, opts Options) []Result {
	if cfg == nil {
		return nil
	}
	svc, err := cfg.Service(kind.ConfigSection())
	if err != nil {
		return []Result{{Name: kind.ServiceName(), Detail: err.Error()}}
	}

	results := []Result{
		CheckAPIKey(cfg, kind),
		CheckDirectoryAccess("Media dir", svc.MediaDir, AccessRead),
	}
	if opts.Connect {
		results = append(results, CheckService(ctx, kind, svc))
	}
	return results
}

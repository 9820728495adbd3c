package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"mediasweep/internal/config"
	"mediasweep/internal/services/arr"
)

// Access is the permission set CheckDirectoryAccess requires.
type Access uint32

const (
	// AccessRead needs list and traverse permission.
	AccessRead Access = unix.R_OK | unix.X_OK
	// AccessWrite additionally needs permission to create files.
	AccessWrite Access = unix.R_OK | unix.W_OK | unix.X_OK
)

const serviceCheckTimeout = 10 * time.Second

// CheckAPIKey reports whether a key is configured for the service.
func CheckAPIKey(cfg *config.Config, kind arr.Kind) Result {
	const name = "API key"
	if err := cfg.ValidateService(kind.ConfigSection()); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("missing; %s scans will fail", kind.ServiceName())}
	}
	return Result{Name: name, Passed: true, Detail: "set"}
}

// CheckService performs the same single GET a scan issues and reports how many
// items the service tracks. It uses a short timeout and a single attempt.
func CheckService(ctx context.Context, kind arr.Kind, svc *config.Service) Result {
	const name = "Connection"

	checkCtx, cancel := context.WithTimeout(ctx, serviceCheckTimeout)
	defer cancel()

	client, err := arr.NewClient(arr.Config{
		Kind:    kind,
		BaseURL: svc.URL,
		APIKey:  svc.APIKey,
		Timeout: serviceCheckTimeout,
	})
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}

	paths, err := client.ListPaths(checkCtx)
	if err != nil {
		var statusErr *arr.StatusError
		if errors.As(err, &statusErr) {
			switch statusErr.StatusCode {
			case 401, 403:
				return Result{Name: name, Detail: "auth failed (invalid api key)"}
			default:
				return Result{Name: name, Detail: fmt.Sprintf("request failed (%d)", statusErr.StatusCode)}
			}
		}
		return Result{Name: name, Detail: fmt.Sprintf("unreachable (%v)", err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("reachable, %d items", len(paths))}
}

// CheckDirectoryAccess verifies that the directory exists and grants want.
func CheckDirectoryAccess(name, path string, want Access) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, uint32(want)); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s ok)", path, want)}
}

// CheckResultsLocation verifies the results file's directory accepts new files.
func CheckResultsLocation(resultsFile string) Result {
	result := CheckDirectoryAccess("Results dir", filepath.Dir(resultsFile), AccessWrite)
	if result.Passed {
		result.Detail = resultsFile + " (writable)"
	}
	return result
}

func (a Access) String() string {
	if a&unix.W_OK != 0 {
		return "read/write"
	}
	return "read"
}

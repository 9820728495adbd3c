package orphans

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"mediasweep/internal/services"
)

// DefaultPrintLimit is the largest orphan count printed inline.
const DefaultPrintLimit = 10

// ReportOptions controls how a Result is presented.
type ReportOptions struct {
	// ResultsFile receives the orphan list when it exceeds PrintLimit. The
	// exclusive list goes to its sibling, see ExclusivePath.
	ResultsFile string
	PrintLimit  int
	// Quiet suppresses the prose lines; files are still written.
	Quiet bool
}

// Outputs names the files a report wrote. Empty fields were not written.
type Outputs struct {
	ResultsFile   string `json:"results_file,omitempty"`
	ExclusiveFile string `json:"exclusive_file,omitempty"`
}

// ExclusivePath derives the exclusive list's filename from the results file:
// orphaned_files.txt becomes orphaned_files_exclusive.txt and results becomes
// results_exclusive.
func ExclusivePath(resultsFile string) string {
	dir, base := filepath.Split(resultsFile)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" || ext == "." {
		stem, ext = base, ""
	}
	return filepath.Join(dir, stem+"_exclusive"+ext)
}

// Report prints the reconciliation outcome to w and writes the results and
// exclusive files as needed. An empty Observed set produces no output at all.
func Report(w io.Writer, result Result, opts ReportOptions) (Outputs, error) {
	var outputs Outputs
	if result.ObservedEmpty {
		return outputs, nil
	}
	if opts.PrintLimit < 0 {
		opts.PrintLimit = DefaultPrintLimit
	}
	resultsFile := strings.TrimSpace(opts.ResultsFile)
	if resultsFile == "" {
		return outputs, services.Wrap(services.ErrConfiguration, "orphans", "report", "results file is required", nil)
	}

	writeOrphans := len(result.Orphaned) > opts.PrintLimit
	writeExclusive := len(result.Exclusive) > 0
	if writeOrphans || writeExclusive {
		unlock, err := lockResults(resultsFile)
		if err != nil {
			return outputs, err
		}
		defer unlock()
	}

	switch {
	case writeOrphans:
		if err := writeLines(resultsFile, result.Orphaned); err != nil {
			return outputs, err
		}
		outputs.ResultsFile = resultsFile
		if !opts.Quiet {
			fmt.Fprintf(w, "Orphaned files (%d) found. Results written to '%s'.\n", len(result.Orphaned), resultsFile)
		}
	case len(result.Orphaned) > 0:
		if !opts.Quiet {
			fmt.Fprintln(w, "Orphaned files found:")
			for _, p := range result.Orphaned {
				fmt.Fprintln(w, p)
			}
		}
	default:
		if !opts.Quiet {
			fmt.Fprintln(w, "No orphaned files found.")
		}
	}

	if writeExclusive {
		if !opts.Quiet {
			fmt.Fprintf(w, "Exclusive files %d were either not found in the database or not found on disk.\n", len(result.Exclusive))
		}
		exclusiveFile := ExclusivePath(resultsFile)
		if err := writeLines(exclusiveFile, result.Exclusive); err != nil {
			return outputs, err
		}
		outputs.ExclusiveFile = exclusiveFile
	}
	return outputs, nil
}

func lockResults(resultsFile string) (func(), error) {
	lock := flock.New(resultsFile + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "orphans", "lock results", resultsFile, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrTransient, "orphans", "lock results", "another scan is writing "+resultsFile, nil)
	}
	return func() { _ = lock.Unlock() }, nil
}

func writeLines(path string, lines []string) error {
	file, err := os.Create(path)
	if err != nil {
		return services.Wrap(services.ErrValidation, "orphans", "write report", path, err)
	}
	writer := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := writer.WriteString(line + "\n"); err != nil {
			_ = file.Close()
			return services.Wrap(services.ErrValidation, "orphans", "write report", path, err)
		}
	}
	if err := writer.Flush(); err != nil {
		_ = file.Close()
		return services.Wrap(services.ErrValidation, "orphans", "write report", path, err)
	}
	if err := file.Close(); err != nil {
		return services.Wrap(services.ErrValidation, "orphans", "write report", path, err)
	}
	return nil
}

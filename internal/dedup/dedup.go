package dedup

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"mediasweep/internal/services"
)

const (
	outputMarker = ".dedup"
	// maxLineBytes caps a single line; the scanner errors past it.
	maxLineBytes     = 256 << 20
	cancelCheckEvery = 4096
)

// ProgressFunc receives the cumulative number of input bytes consumed.
type ProgressFunc func(bytesRead int64)

// Options tunes a deduplication run.
type Options struct {
	OnProgress ProgressFunc
}

// Stats summarizes a deduplication run.
type Stats struct {
	Lines      int   `json:"lines"`
	Unique     int   `json:"unique"`
	Duplicates int   `json:"duplicates"`
	Bytes      int64 `json:"bytes"`
}

// Result describes a completed file deduplication.
type Result struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Stats  Stats  `json:"stats"`
}

// OutputPath returns the sibling path the deduplicated copy of input is
// written to: notes.txt becomes notes.dedup.txt, README becomes README.dedup.
func OutputPath(input string) string {
	dir, base := filepath.Split(input)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" || ext == "." {
		// Dotfiles and names ending in a bare dot have no suffix to keep.
		stem, ext = base, ""
	}
	return filepath.Join(dir, stem+outputMarker+ext)
}

// File deduplicates the file at input into OutputPath(input).
func File(ctx context.Context, input string, opts Options) (Result, error) {
	absInput, err := filepath.Abs(input)
	if err != nil {
		return Result{}, services.Wrap(services.ErrValidation, "dedup", "resolve input", input, err)
	}
	info, err := os.Stat(absInput)
	if err != nil {
		return Result{}, classifyOpenError(absInput, err)
	}
	if info.IsDir() {
		return Result{}, services.Wrap(services.ErrValidation, "dedup", "open input", absInput+" is a directory", nil)
	}

	output := OutputPath(absInput)
	if output == absInput {
		return Result{}, services.Wrap(services.ErrValidation, "dedup", "resolve output", "output would overwrite input", nil)
	}

	in, err := os.Open(absInput)
	if err != nil {
		return Result{}, classifyOpenError(absInput, err)
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		return Result{}, services.Wrap(services.ErrValidation, "dedup", "create output", output, err)
	}

	stats, err := lines(ctx, in, out, opts)
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close output: %w", closeErr)
	}
	if err != nil {
		_ = os.Remove(output)
		return Result{}, err
	}
	return Result{Input: absInput, Output: output, Stats: stats}, nil
}

// Lines copies every distinct line of r to w in first-occurrence order.
func Lines(r io.Reader, w io.Writer, opts Options) (Stats, error) {
	return lines(context.Background(), r, w, opts)
}

func lines(ctx context.Context, r io.Reader, w io.Writer, opts Options) (Stats, error) {
	counter := &countingReader{r: r}
	decoded := transform.NewReader(counter, unicode.UTF8.NewDecoder())

	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	scanner.Split(scanUniversalLines)

	writer := bufio.NewWriter(w)
	seen := make(map[string]struct{})
	var stats Stats

	for scanner.Scan() {
		stats.Lines++
		if stats.Lines%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}
		line := scanner.Text()
		if _, dup := seen[line]; dup {
			stats.Duplicates++
		} else {
			seen[line] = struct{}{}
			stats.Unique++
			if _, err := writer.WriteString(line); err != nil {
				return stats, fmt.Errorf("write line: %w", err)
			}
		}
		if opts.OnProgress != nil {
			opts.OnProgress(counter.n)
		}
	}
	stats.Bytes = counter.n
	if err := scanner.Err(); err != nil {
		return stats, services.Wrap(services.ErrValidation, "dedup", "read input", "", err)
	}
	if err := writer.Flush(); err != nil {
		return stats, fmt.Errorf("flush output: %w", err)
	}
	return stats, nil
}

// scanUniversalLines is a bufio.SplitFunc that yields each line with its
// terminator normalized to "\n". A trailing fragment without a terminator is
// returned as-is.
func scanUniversalLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i+1], nil
		}
		if i+1 == len(data) && !atEOF {
			// Need the next byte to tell \r\n from a lone \r.
			return 0, nil, nil
		}
		advance := i + 1
		if i+1 < len(data) && data[i+1] == '\n' {
			advance = i + 2
		}
		return advance, append(data[:i:i], '\n'), nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func classifyOpenError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return services.Wrap(services.ErrNotFound, "dedup", "open input", path, err)
	case errors.Is(err, fs.ErrPermission):
		return services.Wrap(services.ErrValidation, "dedup", "open input", "permission denied: "+path, err)
	default:
		return services.Wrap(services.ErrValidation, "dedup", "open input", path, err)
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

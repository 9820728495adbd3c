package orphans

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mediasweep/internal/services"
)

// Walk returns the folded paths of every file below root whose name matches
// exts. Each directory's files are visited in lexical order before its
// subdirectories. Symlinked directories below root are not descended, a
// symlink to anything else counts as a file, and a root that is itself a
// symlink is followed.
//
// A root that does not exist or is not a directory yields an error marked
// services.ErrNotFound. Any other traversal error aborts the walk.
func Walk(ctx context.Context, root string, exts Extensions) ([]string, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "orphans", "walk", root, err)
		}
		return nil, services.Wrap(services.ErrValidation, "orphans", "walk", root, err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrNotFound, "orphans", "walk", root+" is not a directory", nil)
	}

	w := &walker{exts: exts}
	if err := w.walkDir(ctx, root); err != nil {
		return nil, err
	}
	return w.paths, nil
}

type walker struct {
	exts  Extensions
	paths []string
}

func (w *walker) walkDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return services.Wrap(services.ErrValidation, "orphans", "read directory", dir, err)
	}

	var subdirs []string
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		switch {
		case entry.IsDir():
			subdirs = append(subdirs, full)
		case entry.Type()&fs.ModeSymlink != 0:
			if target, err := os.Stat(full); err == nil && target.IsDir() {
				continue
			}
			w.visit(full, entry.Name())
		default:
			w.visit(full, entry.Name())
		}
	}
	for _, sub := range subdirs {
		if err := w.walkDir(ctx, sub); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) visit(full, name string) {
	if !w.exts.Match(name) {
		return
	}
	w.paths = append(w.paths, Fold(full))
}

// Fold lowercases a whole path. Walk folds every path it returns with it.
func Fold(path string) string {
	return cases.Lower(language.Und).String(path)
}

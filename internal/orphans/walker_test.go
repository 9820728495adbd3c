package orphans_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"mediasweep/internal/orphans"
	"mediasweep/internal/services"
	"mediasweep/internal/testsupport"
)

var videoExts = orphans.Extensions{".mkv", ".mp4"}

func folded(paths ...string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, orphans.Fold(p))
	}
	return out
}

func TestWalkVisitsFilesBeforeSubdirectories(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root,
		"b/inner.mkv",
		"a/deep/x.mp4",
		"z.mkv",
		"c.mkv",
		"notes.txt",
		"a/poster.jpg",
	)

	got, err := orphans.Walk(context.Background(), root, videoExts)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	want := folded(
		filepath.Join(root, "c.mkv"),
		filepath.Join(root, "z.mkv"),
		filepath.Join(root, "a", "deep", "x.mp4"),
		filepath.Join(root, "b", "inner.mkv"),
	)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Walk order:\n got %v\nwant %v", got, want)
	}
}

func TestWalkLowercasesWholePath(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Movies")
	testsupport.WriteTree(t, root, "Film (2020)/Film.mkv")

	got, err := orphans.Walk(context.Background(), root, videoExts)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one file, got %v", got)
	}
	want := orphans.Fold(filepath.Join(root, "Film (2020)", "Film.mkv"))
	if got[0] != want {
		t.Fatalf("got %q want %q", got[0], want)
	}
	if filepath.Base(got[0]) != "film.mkv" {
		t.Fatalf("expected folded base name, got %q", got[0])
	}
}

func TestWalkFoldsNonASCIINames(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root, "Été/ÄRGER Ω.mkv")

	got, err := orphans.Walk(context.Background(), root, videoExts)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if want := folded(filepath.Join(root, "Été", "ÄRGER Ω.mkv")); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if base := filepath.Base(got[0]); base != "ärger ω.mkv" {
		t.Fatalf("unexpected folded name %q", base)
	}
	if dir := filepath.Base(filepath.Dir(got[0])); dir != "été" {
		t.Fatalf("unexpected folded directory %q", dir)
	}
}

func TestWalkSkipsUppercaseExtensions(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root, "LOUD.MKV", "quiet.mkv")

	got, err := orphans.Walk(context.Background(), root, videoExts)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if want := folded(filepath.Join(root, "quiet.mkv")); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestWalkSymlinks(t *testing.T) {
	base := t.TempDir()
	outside := filepath.Join(base, "outside")
	testsupport.WriteTree(t, outside, "linked.mkv", "sub/hidden.mkv")

	root := filepath.Join(base, "root")
	testsupport.WriteTree(t, root, "real.mkv")
	if err := os.Symlink(filepath.Join(outside, "sub"), filepath.Join(root, "dirlink")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if err := os.Symlink(filepath.Join(outside, "linked.mkv"), filepath.Join(root, "filelink.mkv")); err != nil {
		t.Fatalf("symlink file: %v", err)
	}

	got, err := orphans.Walk(context.Background(), root, videoExts)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	want := folded(filepath.Join(root, "filelink.mkv"), filepath.Join(root, "real.mkv"))
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}

	rootLink := filepath.Join(base, "rootlink")
	if err := os.Symlink(outside, rootLink); err != nil {
		t.Fatalf("symlink root: %v", err)
	}
	got, err = orphans.Walk(context.Background(), rootLink, videoExts)
	if err != nil {
		t.Fatalf("Walk symlinked root: %v", err)
	}
	want = folded(filepath.Join(rootLink, "linked.mkv"), filepath.Join(rootLink, "sub", "hidden.mkv"))
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("symlinked root: got %v want %v", got, want)
	}
}

func TestWalkMissingRoot(t *testing.T) {
	_, err := orphans.Walk(context.Background(), filepath.Join(t.TempDir(), "nope"), videoExts)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	file := filepath.Join(t.TempDir(), "file.mkv")
	testsupport.WriteFile(t, file, 1)
	if _, err := orphans.Walk(context.Background(), file, videoExts); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for file root, got %v", err)
	}
}

func TestWalkUnreadableDirectoryAborts(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	root := t.TempDir()
	testsupport.WriteTree(t, root, "ok.mkv", "locked/secret.mkv")
	locked := filepath.Join(root, "locked")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	if _, err := orphans.Walk(context.Background(), root, videoExts); err == nil {
		t.Fatal("expected traversal error to abort the walk")
	}
}

func TestWalkHonoursCancellation(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root, "a.mkv")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := orphans.Walk(ctx, root, videoExts); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mediasweep/internal/config"
	"mediasweep/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	workDir    string
	homeDir    string
}

// setupCLITestEnv isolates HOME, the working directory, and the API key
// environment, then writes a config for the test to pass with --config.
func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	workDir := filepath.Join(base, "work")
	for _, dir := range []string{homeDir, workDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	t.Setenv("HOME", homeDir)
	t.Chdir(workDir)
	for _, key := range []string{"RADARR_API_KEY", "SONARR_API_KEY", "MEDIASWEEP_RADARR_API_KEY", "MEDIASWEEP_SONARR_API_KEY"} {
		t.Setenv(key, "")
	}

	cfg := testsupport.NewConfig(t, opts...)
	return &cliTestEnv{
		cfg:        cfg,
		configPath: testsupport.WriteConfigFile(t, cfg),
		workDir:    workDir,
		homeDir:    homeDir,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be absent, stat err=%v", path, err)
	}
}

func readFileLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	trimmed := strings.TrimSuffix(string(data), "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mediasweep/internal/config"
)

func clearServiceEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"RADARR_API_KEY", "SONARR_API_KEY", "MEDIASWEEP_RADARR_API_KEY", "MEDIASWEEP_SONARR_API_KEY"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaultConfigMatchesHistoricalConstants(t *testing.T) {
	clearServiceEnv(t)
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "mediasweep", "config.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Radarr.URL != "http://localhost:7878" {
		t.Fatalf("unexpected radarr url: %q", cfg.Radarr.URL)
	}
	if cfg.Radarr.MediaDir != "/media/movies" {
		t.Fatalf("unexpected radarr media dir: %q", cfg.Radarr.MediaDir)
	}
	if want := []string{".mkv", ".mp4", ".avi", ".mov"}; !reflect.DeepEqual(cfg.Radarr.Extensions, want) {
		t.Fatalf("unexpected radarr extensions: got %v want %v", cfg.Radarr.Extensions, want)
	}
	if cfg.Sonarr.URL != "http://localhost:8989" {
		t.Fatalf("unexpected sonarr url: %q", cfg.Sonarr.URL)
	}
	if cfg.Sonarr.MediaDir != "/media/series" {
		t.Fatalf("unexpected sonarr media dir: %q", cfg.Sonarr.MediaDir)
	}
	if want := []string{".mkv", ".mp4", ".avi"}; !reflect.DeepEqual(cfg.Sonarr.Extensions, want) {
		t.Fatalf("unexpected sonarr extensions: got %v want %v", cfg.Sonarr.Extensions, want)
	}
	if cfg.Report.ResultsFile != "orphaned_files.txt" {
		t.Fatalf("unexpected results file: %q", cfg.Report.ResultsFile)
	}
	if cfg.Report.PrintLimit != 10 {
		t.Fatalf("unexpected print limit: %d", cfg.Report.PrintLimit)
	}
	if cfg.Radarr.APIKey != "" || cfg.Sonarr.APIKey != "" {
		t.Fatal("expected API keys to be empty without env or file")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	clearServiceEnv(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "mediasweep.toml")
	mediaDir := filepath.Join(tempDir, "films")

	type payload struct {
		Radarr struct {
			URL        string   `toml:"url"`
			APIKey     string   `toml:"api_key"`
			MediaDir   string   `toml:"media_dir"`
			Extensions []string `toml:"extensions"`
		} `toml:"radarr"`
		Report struct {
			ResultsFile string `toml:"results_file"`
			PrintLimit  int    `toml:"print_limit"`
		} `toml:"report"`
	}
	custom := payload{}
	custom.Radarr.URL = "http://radarr.lan:7878/"
	custom.Radarr.APIKey = " abc123 "
	custom.Radarr.MediaDir = mediaDir
	custom.Radarr.Extensions = []string{"mkv", ".m4v", " .mkv "}
	custom.Report.ResultsFile = "movies_orphans.txt"
	custom.Report.PrintLimit = 3
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Radarr.URL != "http://radarr.lan:7878" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Radarr.URL)
	}
	if cfg.Radarr.APIKey != "abc123" {
		t.Fatalf("expected API key from file, got %q", cfg.Radarr.APIKey)
	}
	if cfg.Radarr.MediaDir != mediaDir {
		t.Fatalf("unexpected media dir: %q", cfg.Radarr.MediaDir)
	}
	if want := []string{".mkv", ".m4v"}; !reflect.DeepEqual(cfg.Radarr.Extensions, want) {
		t.Fatalf("unexpected extensions: got %v want %v", cfg.Radarr.Extensions, want)
	}
	if cfg.Report.ResultsFile != "movies_orphans.txt" || cfg.Report.PrintLimit != 3 {
		t.Fatalf("unexpected report settings: %+v", cfg.Report)
	}
	if cfg.Sonarr.URL != "http://localhost:8989" {
		t.Fatalf("expected sonarr defaults to survive partial file, got %q", cfg.Sonarr.URL)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	clearServiceEnv(t)
	configPath := filepath.Join(t.TempDir(), "mediasweep.toml")
	if err := os.WriteFile(configPath, []byte("[radarr]\nhost = \"http://x\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestEnvVarFillsMissingAPIKeys(t *testing.T) {
	clearServiceEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("RADARR_API_KEY", "env-radarr")
	t.Setenv("MEDIASWEEP_SONARR_API_KEY", "prefixed-sonarr")
	t.Setenv("SONARR_API_KEY", "plain-sonarr")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Radarr.APIKey != "env-radarr" {
		t.Errorf("expected radarr key from env, got %q", cfg.Radarr.APIKey)
	}
	if cfg.Sonarr.APIKey != "prefixed-sonarr" {
		t.Errorf("expected prefixed sonarr key to win, got %q", cfg.Sonarr.APIKey)
	}
}

func TestConfigFileAPIKeyWinsOverEnv(t *testing.T) {
	clearServiceEnv(t)
	t.Setenv("SONARR_API_KEY", "env-sonarr")
	configPath := filepath.Join(t.TempDir(), "mediasweep.toml")
	if err := os.WriteFile(configPath, []byte("[sonarr]\napi_key = \"file-sonarr\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Sonarr.APIKey != "file-sonarr" {
		t.Fatalf("expected file key, got %q", cfg.Sonarr.APIKey)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "RADARR_API_KEY") {
		t.Fatalf("sample config missing env hint: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	defaults := config.Default()
	if !reflect.DeepEqual(cfg.Radarr, defaults.Radarr) {
		t.Fatalf("sample radarr section drifted from defaults: %+v", cfg.Radarr)
	}
	if !reflect.DeepEqual(cfg.Sonarr, defaults.Sonarr) {
		t.Fatalf("sample sonarr section drifted from defaults: %+v", cfg.Sonarr)
	}
	if cfg.Report != defaults.Report {
		t.Fatalf("sample report section drifted from defaults: %+v", cfg.Report)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Radarr.URL = "localhost:7878"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for url without scheme")
	}

	cfg = config.Default()
	cfg.Sonarr.Extensions = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty extensions")
	}

	cfg = config.Default()
	cfg.Report.PrintLimit = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative print limit")
	}

	cfg = config.Default()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}

	cfg = config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestValidateServiceRequiresAPIKey(t *testing.T) {
	cfg := config.Default()
	err := cfg.ValidateService("sonarr")
	if err == nil {
		t.Fatal("expected missing key error")
	}
	if !strings.Contains(err.Error(), "SONARR_API_KEY") {
		t.Fatalf("expected env hint in error, got %v", err)
	}

	cfg.Sonarr.APIKey = "key"
	if err := cfg.ValidateService("sonarr"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.ValidateService("lidarr"); err == nil {
		t.Fatal("expected unknown service error")
	}
}

func TestNormalizeExtensions(t *testing.T) {
	got := config.NormalizeExtensions([]string{"mkv", "", ".", ".MKV", ".mkv", " avi "})
	want := []string{".mkv", ".MKV", ".avi"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeExtensions = %v, want %v", got, want)
	}
	if got := config.NormalizeExtensions(nil); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestEncodeRoundTrips(t *testing.T) {
	cfg := config.Default()
	cfg.Radarr.APIKey = "secret"
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode encoded config: %v", err)
	}
	if decoded.Radarr.APIKey != "secret" {
		t.Fatalf("expected api key to survive encode, got %q", decoded.Radarr.APIKey)
	}
}

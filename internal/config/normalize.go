package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.Radarr.normalize("radarr", defaultRadarrURL, defaultRadarrMediaDir, defaultRadarrExtensions(), prefixedRadarrKeyEnv, radarrAPIKeyEnv); err != nil {
		return err
	}
	if err := c.Sonarr.normalize("sonarr", defaultSonarrURL, defaultSonarrMediaDir, defaultSonarrExtensions(), prefixedSonarrKeyEnv, sonarrAPIKeyEnv); err != nil {
		return err
	}
	if err := c.normalizeReport(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (s *Service) normalize(section, defaultURL, defaultMediaDir string, defaultExts []string, envKeys ...string) error {
	s.URL = strings.TrimRight(strings.TrimSpace(s.URL), "/")
	if s.URL == "" {
		s.URL = defaultURL
	}
	s.APIKey = strings.TrimSpace(s.APIKey)
	if s.APIKey == "" {
		for _, key := range envKeys {
			if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
				s.APIKey = strings.TrimSpace(value)
				break
			}
		}
	}
	if strings.TrimSpace(s.MediaDir) == "" {
		s.MediaDir = defaultMediaDir
	}
	var err error
	if s.MediaDir, err = expandPath(strings.TrimSpace(s.MediaDir)); err != nil {
		return fmt.Errorf("%s.media_dir: %w", section, err)
	}
	s.Extensions = NormalizeExtensions(s.Extensions)
	if len(s.Extensions) == 0 {
		s.Extensions = defaultExts
	}
	if s.TimeoutSeconds < 0 {
		s.TimeoutSeconds = 0
	}
	return nil
}

// NormalizeExtensions trims each entry, adds a leading dot when missing, and
// drops blanks and repeats while keeping the first-seen order. Case is kept:
// extension matching is case-sensitive.
func NormalizeExtensions(exts []string) []string {
	if len(exts) == 0 {
		return nil
	}
	out := make([]string, 0, len(exts))
	seen := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		normalized := strings.TrimSpace(ext)
		if normalized == "" || normalized == "." {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}

func (c *Config) normalizeReport() error {
	c.Report.ResultsFile = strings.TrimSpace(c.Report.ResultsFile)
	if c.Report.ResultsFile == "" {
		c.Report.ResultsFile = defaultResultsFile
	}
	if strings.HasPrefix(c.Report.ResultsFile, "~") {
		expanded, err := expandPath(c.Report.ResultsFile)
		if err != nil {
			return fmt.Errorf("report.results_file: %w", err)
		}
		c.Report.ResultsFile = expanded
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File != "" {
		expanded, err := expandPath(c.Logging.File)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}

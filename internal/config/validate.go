package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.Radarr.validate("radarr"); err != nil {
		return err
	}
	if err := c.Sonarr.validate("sonarr"); err != nil {
		return err
	}
	if err := c.validateReport(); err != nil {
		return err
	}
	return c.validateLogging()
}

// ValidateService checks the settings a scan against the named service needs
// beyond what Validate enforces. The API key is only required here so that
// commands which never contact a service work without credentials.
func (c *Config) ValidateService(name string) error {
	svc, err := c.Service(name)
	if err != nil {
		return err
	}
	if strings.TrimSpace(svc.APIKey) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		envKey := radarrAPIKeyEnv
		if strings.EqualFold(name, "sonarr") {
			envKey = sonarrAPIKeyEnv
		}
		return fmt.Errorf("%s.api_key is required. Set %s env var or edit %s (create with 'mediasweep config init')", strings.ToLower(name), envKey, defaultPath)
	}
	return nil
}

func (s *Service) validate(section string) error {
	parsed, err := url.Parse(s.URL)
	if err != nil {
		return fmt.Errorf("%s.url: %w", section, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s.url must use http or https, got %q", section, s.URL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s.url must include a host", section)
	}
	if strings.TrimSpace(s.MediaDir) == "" {
		return fmt.Errorf("%s.media_dir must be set", section)
	}
	if len(s.Extensions) == 0 {
		return fmt.Errorf("%s.extensions must include at least one extension", section)
	}
	if s.TimeoutSeconds < 0 {
		return fmt.Errorf("%s.timeout_seconds must be >= 0", section)
	}
	return nil
}

func (c *Config) validateReport() error {
	if strings.TrimSpace(c.Report.ResultsFile) == "" {
		return errors.New("report.results_file must be set")
	}
	if c.Report.PrintLimit < 0 {
		return errors.New("report.print_limit must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}

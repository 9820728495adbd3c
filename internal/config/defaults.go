package config

const (
	defaultConfigPath     = "~/.config/mediasweep/config.toml"
	defaultRadarrURL      = "http://localhost:7878"
	defaultRadarrMediaDir = "/media/movies"
	defaultSonarrURL      = "http://localhost:8989"
	defaultSonarrMediaDir = "/media/series"
	defaultResultsFile    = "orphaned_files.txt"
	defaultPrintLimit     = 10
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultServiceTimeout = 0
	radarrAPIKeyEnv       = "RADARR_API_KEY"
	sonarrAPIKeyEnv       = "SONARR_API_KEY"
	prefixedRadarrKeyEnv  = "MEDIASWEEP_RADARR_API_KEY"
	prefixedSonarrKeyEnv  = "MEDIASWEEP_SONARR_API_KEY"
)

func defaultRadarrExtensions() []string {
	return []string{".mkv", ".mp4", ".avi", ".mov"}
}

func defaultSonarrExtensions() []string {
	return []string{".mkv", ".mp4", ".avi"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Radarr: Service{
			URL:            defaultRadarrURL,
			MediaDir:       defaultRadarrMediaDir,
			Extensions:     defaultRadarrExtensions(),
			TimeoutSeconds: defaultServiceTimeout,
		},
		Sonarr: Service{
			URL:            defaultSonarrURL,
			MediaDir:       defaultSonarrMediaDir,
			Extensions:     defaultSonarrExtensions(),
			TimeoutSeconds: defaultServiceTimeout,
		},
		Report: Report{
			ResultsFile: defaultResultsFile,
			PrintLimit:  defaultPrintLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

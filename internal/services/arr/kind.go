package arr

import (
	"fmt"
	"strings"
)

// Kind identifies which collection a service manages.
type Kind string

const (
	// KindMovies is a Radarr-style service exposing /api/v3/movie.
	KindMovies Kind = "movies"
	// KindSeries is a Sonarr-style service exposing /api/v3/series.
	KindSeries Kind = "series"
)

// ParseKind accepts the collection name or the conventional service name.
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "movies", "movie", "radarr":
		return KindMovies, nil
	case "series", "tv", "sonarr":
		return KindSeries, nil
	default:
		return "", fmt.Errorf("invalid service kind %q (must be movies/radarr or series/sonarr)", value)
	}
}

// ServiceName is the human-facing name of the service that manages k.
func (k Kind) ServiceName() string {
	switch k {
	case KindMovies:
		return "Radarr"
	case KindSeries:
		return "Sonarr"
	default:
		return string(k)
	}
}

// ConfigSection is the config section that holds settings for k.
func (k Kind) ConfigSection() string {
	return strings.ToLower(k.ServiceName())
}

// Endpoint is the collection resource under /api/v3.
func (k Kind) Endpoint() string {
	switch k {
	case KindMovies:
		return "movie"
	case KindSeries:
		return "series"
	default:
		return ""
	}
}

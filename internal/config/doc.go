// Package config loads, normalizes, and validates mediasweep configuration data.
//
// It supplies the defaults the orphan scanners historically hard-coded (service
// hosts, media roots, recognized extensions, the results file), reads TOML
// files, and honours environment fallbacks such as RADARR_API_KEY and
// SONARR_API_KEY. Every knob lives on the Config type so a scan can be
// retargeted without touching source.
//
// Always obtain settings through this package so downstream code receives
// absolute media roots, normalized extension lists, and clear validation
// errors.
package config

// Package services defines shared utilities consumed by the scanners and the
// media-service integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and service names for logging.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures (configuration, validation, missing input, service refusal,
//     transport trouble) with errors.Is.
//
// Concrete integrations live in subpackages, for example services/arr.
package services

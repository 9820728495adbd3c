// Package arr talks to Radarr- and Sonarr-style media-management services.
//
// The only call the scanners need is the collection listing (movies or
// series), from which the canonical directory of every tracked item is taken.
// A single GET is issued per run with the X-Api-Key header; the client never
// retries, and a refusal from the service surfaces as *StatusError so callers
// can report the status code and stop gracefully.
package arr

// Package preflight provides readiness checks for the services and
// filesystem paths an orphan scan depends on.
//
// The CLI "config validate" command runs them to show per-service health
// before a scan is attempted. Service reachability is only probed when asked,
// since it issues a real API request.
package preflight

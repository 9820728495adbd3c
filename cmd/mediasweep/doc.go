// Package main hosts the mediasweep CLI entrypoint and command graph.
//
// The Cobra command tree exposes three independent tools: dedup, which writes
// a de-duplicated copy of a text file, and orphans movies / orphans series,
// which compare what Radarr or Sonarr tracks against the files on disk. The
// config subcommands scaffold and inspect the TOML configuration.
//
// Configuration, logging, and the per-run identifier are resolved once in
// commandContext so subcommands only wire flags to the internal packages.
// Results go to stdout; logs go to stderr.
package main

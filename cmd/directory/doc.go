// Package main runs the in-memory key directory used by asyncpfs during
// development and tests. It stores registered responder bundles and hands
// each one-time key out once.
//
// See package asyncpfs/internal/directory for the HTTP API.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Logs are JSON on stdout, one access line per request.
//   - Prometheus metrics are served at /metrics.
//   - The default listen address is :8080.
//
// The directory never sees private keys or plaintext; it only stores public
// bundles.
package main

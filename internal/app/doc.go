// Package app loads configuration and wires application dependencies for
// the CLI.
//
// Config is built from defaults, then <home>/config.yaml, then ASYNCPFS_*
// environment variables; the CLI applies its flags last. NewWire turns a
// Config into concrete stores, the directory client and the identity,
// prekey and session services, exposed via the Wire struct.
package app

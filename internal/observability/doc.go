// Package observability provides structured logging (zerolog) and
// Prometheus counters shared by the CLI, the session service and the
// directory server.
//
// Nothing logged or counted here carries key bytes, salts or plaintext.
// Sessions appear only as a short fingerprint of their identifier.
package observability

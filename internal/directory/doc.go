// Package directory provides the key directory: an HTTP server that stores
// responder bundles and an HTTP implementation of domain.DirectoryClient.
//
// HTTP API
//
//	POST /register
//	    Store or replace a user's ResponderBundle (identity key, long-term
//	    key and id, one-time keys).
//
//	GET /bundle/{username}
//	    Return a PublishedBundle with at most one one-time key. That key is
//	    removed from the directory.
//
//	GET /healthz
//	    Liveness check.
//
//	GET /metrics
//	    Prometheus metrics, when the server was given a Metrics.
//
// All state is held in memory and lost on process exit. The directory only
// ever sees public keys. Non-2xx responses carry {"error": "..."} and the
// client turns them into errors naming the method, URL and status.
package directory

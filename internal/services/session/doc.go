// Package session establishes, stores and uses sessions.
//
// Facade is the per-peer entry point: it runs the key agreement as
// initiator or responder, keeps the result in a domain.SessionStore and
// routes encrypt and decrypt calls to the message cipher. Service adds the
// surrounding plumbing (identity, prekeys, directory lookups) used by the
// CLI.
package session

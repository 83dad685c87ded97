// Package store provides persistence for identities, prekeys and sessions.
//
// It contains concrete implementations of the domain storage interfaces.
// Identity keys and sessions are sealed under a passphrase (scrypt and
// ChaCha20-Poly1305) before they touch disk; prekey pairs are stored as
// mode 0600 JSON. All methods are concurrency-safe via internal locking.
//
// The package includes stores for:
//   - Identity keys (IdentityFileStore)
//   - Long-term and one-time keys (PreKeyFileStore)
//   - Sessions (MemorySessionStore, SessionFileStore, BoltSessionStore)
package store

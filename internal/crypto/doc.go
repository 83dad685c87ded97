// Package crypto exposes the primitives used by the key agreement and the
// message cipher.
//
// Contents
//
//   - Suite, a named bundle of DH, KDF, AEAD and a randomness source
//     (DefaultSuite, SuiteByName)
//   - X25519 Diffie-Hellman with low-order rejection, and key generation
//     (X25519, GenerateX25519)
//   - HKDF-SHA256 (HKDF, HKDFSHA256)
//   - ChaCha20-Poly1305 and AES-256-GCM with per-call keys
//   - Passphrase envelopes for data at rest (SealEnvelope, OpenEnvelope)
//   - Password-sealed private keys (SealPrivateKey, OpenPrivateKey)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Callers should treat returned secrets as sensitive and rely on Wipe when
// practical to reduce lifetime in memory.
package crypto

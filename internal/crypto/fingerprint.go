package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"asyncpfs/internal/domain"
)

// Fingerprint returns a short hex fingerprint of b.
//
// It hashes with SHA-256 and truncates to 10 bytes (20 hex chars). It is
// used for public keys and for session identifiers in logs.
func Fingerprint(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:10])
}

// FingerprintX25519 returns the fingerprint of an X25519 public key.
func FingerprintX25519(pub domain.X25519Public) domain.Fingerprint {
	return domain.Fingerprint(Fingerprint(pub[:]))
}

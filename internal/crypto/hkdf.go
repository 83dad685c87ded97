package crypto

import (
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

// HKDF is HKDF (RFC 5869) over SHA-256.
type HKDF struct{}

// Derive implements domain.KDF.
func (HKDF) Derive(ikm, salt, info []byte, length int) ([]byte, error) {
	return HKDFSHA256(ikm, salt, info, length)
}

// HKDFSHA256 derives length bytes from ikm. A nil salt is treated as a
// string of HashLen zeros.
func HKDFSHA256(ikm, salt, info []byte, length int) ([]byte, error) {
	if length <= 0 || length > 255*sha256.Size {
		return nil, errors.New("crypto: invalid hkdf output length")
	}
	out := make([]byte, length)
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, salt, info), out); err != nil {
		return nil, err
	}
	return out, nil
}

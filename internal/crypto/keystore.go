package crypto

import (
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Sealed private keys are laid out as version || salt || ciphertext. The
// header is authenticated as associated data.
const (
	sealedKeyVersion  = 0x01
	sealedKeySaltSize = 16
	sealedKeyHeader   = 1 + sealedKeySaltSize

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// ErrSealedKey is returned when a sealed private key cannot be opened.
var ErrSealedKey = errors.New("crypto: cannot open sealed private key")

// SealPrivateKey protects raw private key bytes under password using an
// Argon2id-derived key and ChaCha20-Poly1305.
func SealPrivateKey(raw, password []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, errors.New("crypto: empty password")
	}
	out := make([]byte, sealedKeyHeader, sealedKeyHeader+len(raw)+chacha20poly1305.Overhead)
	out[0] = sealedKeyVersion
	if _, err := rand.Read(out[1:sealedKeyHeader]); err != nil {
		return nil, err
	}
	kek := deriveKEK(password, out[1:sealedKeyHeader])
	defer Wipe(kek)

	aead, err := chacha20poly1305.New(kek)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; salt-bound key guarantees uniqueness
	return aead.Seal(out, nonce[:], raw, out[:sealedKeyHeader]), nil
}

// OpenPrivateKey reverses SealPrivateKey.
func OpenPrivateKey(sealed, password []byte) ([]byte, error) {
	if len(sealed) < sealedKeyHeader+chacha20poly1305.Overhead || sealed[0] != sealedKeyVersion {
		return nil, ErrSealedKey
	}
	kek := deriveKEK(password, sealed[1:sealedKeyHeader])
	defer Wipe(kek)

	aead, err := chacha20poly1305.New(kek)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	raw, err := aead.Open(nil, nonce[:], sealed[sealedKeyHeader:], sealed[:sealedKeyHeader])
	if err != nil {
		return nil, ErrSealedKey
	}
	return raw, nil
}

func deriveKEK(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, chacha20poly1305.KeySize)
}

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// ChaCha20Poly1305 is the IETF ChaCha20-Poly1305 AEAD.
type ChaCha20Poly1305 struct{}

// Seal implements domain.AEAD.
func (ChaCha20Poly1305) Seal(key, nonce, ad, plaintext []byte) ([]byte, error) {
	a, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != a.NonceSize() {
		return nil, fmt.Errorf("crypto: nonce must be %d bytes", a.NonceSize())
	}
	return a.Seal(nil, nonce, plaintext, ad), nil
}

// Open implements domain.AEAD.
func (ChaCha20Poly1305) Open(key, nonce, ad, ciphertext []byte) ([]byte, error) {
	a, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != a.NonceSize() {
		return nil, fmt.Errorf("crypto: nonce must be %d bytes", a.NonceSize())
	}
	return a.Open(nil, nonce, ciphertext, ad)
}

// KeySize returns 32.
func (ChaCha20Poly1305) KeySize() int { return chacha20poly1305.KeySize }

// NonceSize returns 12.
func (ChaCha20Poly1305) NonceSize() int { return chacha20poly1305.NonceSize }

// AES256GCM is AES-256 in Galois/Counter Mode.
type AES256GCM struct{}

func (AES256GCM) aead(key []byte) (cipher.AEAD, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("crypto: aes-256-gcm key must be 32 bytes")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal implements domain.AEAD.
func (g AES256GCM) Seal(key, nonce, ad, plaintext []byte) ([]byte, error) {
	a, err := g.aead(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != a.NonceSize() {
		return nil, fmt.Errorf("crypto: nonce must be %d bytes", a.NonceSize())
	}
	return a.Seal(nil, nonce, plaintext, ad), nil
}

// Open implements domain.AEAD.
func (g AES256GCM) Open(key, nonce, ad, ciphertext []byte) ([]byte, error) {
	a, err := g.aead(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != a.NonceSize() {
		return nil, fmt.Errorf("crypto: nonce must be %d bytes", a.NonceSize())
	}
	return a.Open(nil, nonce, ciphertext, ad)
}

// KeySize returns 32.
func (AES256GCM) KeySize() int { return 32 }

// NonceSize returns 12.
func (AES256GCM) NonceSize() int { return 12 }

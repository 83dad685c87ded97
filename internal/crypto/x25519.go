package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"

	"asyncpfs/internal/domain"
)

// ErrLowOrderPoint is returned when a Diffie-Hellman result is all zeros,
// which happens when the peer key is a low-order point.
var ErrLowOrderPoint = errors.New("crypto: low-order point")

// X25519 is the Curve25519 Diffie-Hellman function.
type X25519 struct{}

// DH computes X25519(priv, pub). Keys must be exactly 32 bytes.
func (X25519) DH(priv, pub []byte) ([]byte, error) {
	if len(priv) != domain.X25519KeySize || len(pub) != domain.X25519KeySize {
		return nil, fmt.Errorf("crypto: x25519 keys must be %d bytes", domain.X25519KeySize)
	}
	out, err := curve25519.X25519(priv, pub)
	if err != nil {
		// curve25519 only fails here on an all-zero output.
		return nil, ErrLowOrderPoint
	}
	return out, nil
}

// PublicKey returns the public key for priv.
func (X25519) PublicKey(priv []byte) ([]byte, error) {
	if len(priv) != domain.X25519KeySize {
		return nil, fmt.Errorf("crypto: x25519 keys must be %d bytes", domain.X25519KeySize)
	}
	return curve25519.X25519(priv, curve25519.Basepoint)
}

// KeySize returns 32.
func (X25519) KeySize() int { return domain.X25519KeySize }

// GenerateX25519 returns a fresh Curve25519 key pair.
// The private key is clamped per RFC 7748.
func GenerateX25519() (priv domain.X25519Private, pub domain.X25519Public, err error) {
	return GenerateX25519From(rand.Reader)
}

// GenerateX25519From is GenerateX25519 with an explicit entropy source.
func GenerateX25519From(r io.Reader) (priv domain.X25519Private, pub domain.X25519Public, err error) {
	if _, err = io.ReadFull(r, priv[:]); err != nil {
		return
	}
	clamp(&priv)
	pb, err := curve25519.X25519(priv.Slice(), curve25519.Basepoint)
	if err != nil {
		return
	}
	copy(pub[:], pb)
	return
}

func clamp(k *domain.X25519Private) {
	kb := k[:]
	kb[0] &= 248
	kb[31] &= 127
	kb[31] |= 64
}

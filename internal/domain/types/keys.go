package types

import "github.com/mr-tron/base58"

// X25519KeySize is the length of X25519 private and public keys.
const X25519KeySize = 32

// X25519Public is a Curve25519 public key.
type X25519Public [X25519KeySize]byte

// Slice returns the key as a []byte.
func (p X25519Public) Slice() []byte { return p[:] }

// X25519Private is a Curve25519 private key.
type X25519Private [X25519KeySize]byte

// Slice returns the key as a []byte.
func (k X25519Private) Slice() []byte { return k[:] }

// PrivateKey is opaque private key material handed to the key agreement.
//
// The zero value is the empty key. When Password is non-empty, Key holds a
// password-sealed blob rather than raw key bytes; otherwise Password is
// ignored.
type PrivateKey struct {
	Key      []byte
	Password []byte
}

// NewPrivateKey copies key and password into a new PrivateKey.
func NewPrivateKey(key, password []byte) PrivateKey {
	return PrivateKey{Key: clone(key), Password: clone(password)}
}

// PrivateKeyFromX25519 wraps a raw X25519 private key.
func PrivateKeyFromX25519(k X25519Private) PrivateKey {
	return PrivateKey{Key: clone(k[:])}
}

// IsEmpty reports whether the key carries no bytes.
func (k PrivateKey) IsEmpty() bool { return len(k.Key) == 0 }

// IsSealed reports whether Key must be opened with Password before use.
func (k PrivateKey) IsSealed() bool { return len(k.Key) > 0 && len(k.Password) > 0 }

// Wipe zeroes the key and password in place.
func (k PrivateKey) Wipe() {
	zero(k.Key)
	zero(k.Password)
}

// PublicKey is opaque public key material. The zero value is the empty key.
//
// Its text form is base58, which is also what JSON encoding uses.
type PublicKey struct {
	Key []byte
}

// NewPublicKey copies key into a new PublicKey.
func NewPublicKey(key []byte) PublicKey { return PublicKey{Key: clone(key)} }

// PublicKeyFromX25519 wraps a raw X25519 public key.
func PublicKeyFromX25519(k X25519Public) PublicKey { return PublicKey{Key: clone(k[:])} }

// IsEmpty reports whether the key carries no bytes.
func (k PublicKey) IsEmpty() bool { return len(k.Key) == 0 }

// IsZero lets encoding/json omit empty keys tagged omitzero.
func (k PublicKey) IsZero() bool { return k.IsEmpty() }

// String returns the base58 form of the key.
func (k PublicKey) String() string { return base58.Encode(k.Key) }

// MarshalText implements encoding.TextMarshaler.
func (k PublicKey) MarshalText() ([]byte, error) {
	return []byte(base58.Encode(k.Key)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *PublicKey) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		k.Key = nil
		return nil
	}
	b, err := base58.Decode(string(text))
	if err != nil {
		return err
	}
	k.Key = b
	return nil
}

func clone(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

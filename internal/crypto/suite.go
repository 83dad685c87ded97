package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
	"sort"

	"asyncpfs/internal/domain"
)

// Suite names.
const (
	SuiteChaCha20Poly1305 = "x25519-hkdf-sha256-chacha20poly1305"
	SuiteAES256GCM        = "x25519-hkdf-sha256-aes256gcm"
)

// Suite bundles the primitives the key agreement and message cipher use.
type Suite struct {
	Name string
	DH   domain.DH
	KDF  domain.KDF
	AEAD domain.AEAD
	Rand io.Reader
}

var suites = map[string]Suite{
	SuiteChaCha20Poly1305: {
		Name: SuiteChaCha20Poly1305,
		DH:   X25519{},
		KDF:  HKDF{},
		AEAD: ChaCha20Poly1305{},
		Rand: rand.Reader,
	},
	SuiteAES256GCM: {
		Name: SuiteAES256GCM,
		DH:   X25519{},
		KDF:  HKDF{},
		AEAD: AES256GCM{},
		Rand: rand.Reader,
	},
}

// DefaultSuite returns X25519, HKDF-SHA256 and ChaCha20-Poly1305.
func DefaultSuite() Suite { return suites[SuiteChaCha20Poly1305] }

// SuiteByName looks up a suite. An empty name selects DefaultSuite.
func SuiteByName(name string) (Suite, error) {
	if name == "" {
		return DefaultSuite(), nil
	}
	s, ok := suites[name]
	if !ok {
		return Suite{}, fmt.Errorf("crypto: unknown suite %q", name)
	}
	return s, nil
}

// SuiteNames lists the registered suite names in order.
func SuiteNames() []string {
	out := make([]string, 0, len(suites))
	for name := range suites {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// WithRand returns a copy of s drawing randomness from r.
func (s Suite) WithRand(r io.Reader) Suite {
	s.Rand = r
	return s
}

package store

import "asyncpfs/internal/crypto"

// Option configures the sealed stores.
type Option func(*sealer)

// WithScryptParams overrides the scrypt cost used when sealing. Existing
// files keep the parameters they were written with.
func WithScryptParams(p crypto.ScryptParams) Option {
	return func(s *sealer) { s.params = p }
}

// sealer encrypts data at rest under a passphrase.
type sealer struct {
	passphrase []byte
	params     crypto.ScryptParams
}

func newSealer(passphrase string, opts []Option) sealer {
	s := sealer{passphrase: []byte(passphrase), params: crypto.DefaultScryptParams}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s sealer) seal(raw []byte) ([]byte, error) {
	return crypto.SealEnvelopeWith(s.passphrase, raw, s.params)
}

func (s sealer) open(blob []byte) ([]byte, error) {
	return crypto.OpenEnvelope(s.passphrase, blob)
}

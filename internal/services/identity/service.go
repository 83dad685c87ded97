package identity

import (
	"fmt"

	"asyncpfs/internal/crypto"
	"asyncpfs/internal/domain"
)

// Service owns the local identity: one X25519 key pair, sealed in the
// identity store. The private half feeds two DH steps of every agreement;
// the fingerprint of the public half is what users compare out of band.
type Service struct {
	store domain.IdentityStore
}

// New returns an identity service backed by the given store.
func New(s domain.IdentityStore) *Service { return &Service{store: s} }

// GenerateIdentity replaces the local identity with a fresh key pair sealed
// under passphrase. Sessions and prekeys made with the old one stop working.
func (s *Service) GenerateIdentity(passphrase string) (domain.Identity, domain.Fingerprint, error) {
	if err := CheckPassphrase(passphrase); err != nil {
		return domain.Identity{}, "", err
	}
	priv, pub, err := crypto.GenerateX25519()
	if err != nil {
		return domain.Identity{}, "", err
	}
	id := domain.Identity{Public: pub, Private: priv}
	if err := s.store.SaveIdentity(passphrase, id); err != nil {
		return domain.Identity{}, "", fmt.Errorf("save identity: %w", err)
	}
	return id, fingerprint(id), nil
}

func (s *Service) LoadIdentity(passphrase string) (domain.Identity, error) {
	return s.store.LoadIdentity(passphrase)
}

// FingerprintIdentity unlocks the identity and fingerprints its public key.
func (s *Service) FingerprintIdentity(passphrase string) (domain.Fingerprint, error) {
	id, err := s.store.LoadIdentity(passphrase)
	if err != nil {
		return "", err
	}
	crypto.Wipe(id.Private[:])
	return fingerprint(id), nil
}

func fingerprint(id domain.Identity) domain.Fingerprint {
	return crypto.FingerprintX25519(id.Public)
}

var _ domain.IdentityService = (*Service)(nil)

package prekey

import (
	"errors"
	"fmt"
	"time"

	"asyncpfs/internal/crypto"
	"asyncpfs/internal/domain"
)

var (
	// ErrNoLongTermKey is returned when no long-term key has been generated.
	ErrNoLongTermKey = errors.New("no long-term key available; run register first")
	// ErrUnknownLongTermKey is returned when a hello names a long-term key we do not hold.
	ErrUnknownLongTermKey = errors.New("unknown long-term key")
	// ErrUnknownOneTimeKey is returned when a hello names a one-time key that
	// was never issued or has already been used.
	ErrUnknownOneTimeKey = errors.New("unknown or already used one-time key")
)

// Service manages long-term and one-time key pairs and builds the public bundle.
type Service struct {
	ids domain.IdentityStore
	ps  domain.PreKeyStore
	now func() time.Time
}

// New returns a prekey service over the given stores.
func New(ids domain.IdentityStore, ps domain.PreKeyStore) *Service {
	return &Service{ids: ids, ps: ps, now: time.Now}
}

// GenerateAndStorePreKeys creates a long-term key pair and n one-time pairs.
// The new long-term key becomes current.
func (s *Service) GenerateAndStorePreKeys(
	passphrase string,
	n int,
) (domain.LongTermKeyID, []domain.OneTimeKeyID, error) {
	// Fail early on a wrong passphrase rather than publishing keys we
	// cannot use.
	if _, err := s.ids.LoadIdentity(passphrase); err != nil {
		return "", nil, err
	}
	now := s.now()

	priv, pub, err := crypto.GenerateX25519()
	if err != nil {
		return "", nil, err
	}
	ltk := domain.LongTermKeyPair{
		ID:      longTermKeyID(pub),
		Private: priv,
		Public:  pub,
		Created: now.Unix(),
	}
	if err := s.ps.SaveLongTermKey(ltk); err != nil {
		return "", nil, err
	}
	if err := s.ps.SetCurrentLongTermKeyID(ltk.ID); err != nil {
		return "", nil, err
	}

	pairs := make([]domain.OneTimeKeyPair, 0, n)
	ids := make([]domain.OneTimeKeyID, 0, n)
	for i := 0; i < n; i++ {
		priv, pub, err := crypto.GenerateX25519()
		if err != nil {
			return "", nil, err
		}
		id := oneTimeKeyID(pub)
		pairs = append(pairs, domain.OneTimeKeyPair{ID: id, Private: priv, Public: pub})
		ids = append(ids, id)
	}
	if err := s.ps.SaveOneTimeKeys(pairs); err != nil {
		return "", nil, err
	}
	return ltk.ID, ids, nil
}

// LoadResponderBundle builds the bundle to register from the identity, the
// current long-term key and the remaining one-time keys.
func (s *Service) LoadResponderBundle(
	passphrase string,
	username domain.Username,
) (domain.ResponderBundle, error) {
	id, err := s.ids.LoadIdentity(passphrase)
	if err != nil {
		return domain.ResponderBundle{}, err
	}
	ltk, err := s.currentLongTermKey()
	if err != nil {
		return domain.ResponderBundle{}, err
	}
	oneTime, err := s.ps.ListOneTimePublicKeys()
	if err != nil {
		return domain.ResponderBundle{}, err
	}

	return domain.ResponderBundle{
		Username: username,
		Info: domain.ResponderPublicInfo{
			Identifier:        username.String(),
			IdentityPublicKey: id.PublicKey(),
			LongTermPublicKey: domain.PublicKeyFromX25519(ltk.Public),
		},
		LongTermKeyID: ltk.ID,
		OneTimeKeys:   oneTime,
	}, nil
}

// ResponderPrivateInfo loads the private keys a hello refers to. The
// referenced one-time key stays in the store; call RetireOneTimeKey once the
// agreement has succeeded so a corrupted hello cannot burn it.
func (s *Service) ResponderPrivateInfo(
	passphrase string,
	hello domain.InitiatorHello,
) (domain.ResponderPrivateInfo, error) {
	id, err := s.ids.LoadIdentity(passphrase)
	if err != nil {
		return domain.ResponderPrivateInfo{}, err
	}
	ltk, ok, err := s.ps.LoadLongTermKey(hello.LongTermKeyID)
	if err != nil {
		return domain.ResponderPrivateInfo{}, err
	}
	if !ok {
		return domain.ResponderPrivateInfo{}, fmt.Errorf("%w %q", ErrUnknownLongTermKey, hello.LongTermKeyID)
	}

	info := domain.ResponderPrivateInfo{
		Identifier:         hello.Responder.String(),
		IdentityPrivateKey: id.PrivateKey(),
		LongTermPrivateKey: domain.PrivateKeyFromX25519(ltk.Private),
	}
	if hello.OneTimeKeyID != "" {
		otk, ok, err := s.ps.LoadOneTimeKey(hello.OneTimeKeyID)
		if err != nil {
			return domain.ResponderPrivateInfo{}, err
		}
		if !ok {
			return domain.ResponderPrivateInfo{}, fmt.Errorf("%w %q", ErrUnknownOneTimeKey, hello.OneTimeKeyID)
		}
		info.OneTimePrivateKey = domain.PrivateKeyFromX25519(otk.Private)
	}
	return info, nil
}

// RetireOneTimeKey deletes a one-time key after a successful agreement.
// Retiring a key that is already gone is not an error.
func (s *Service) RetireOneTimeKey(id domain.OneTimeKeyID) error {
	if id == "" {
		return nil
	}
	return s.ps.DeleteOneTimeKey(id)
}

func (s *Service) currentLongTermKey() (domain.LongTermKeyPair, error) {
	id, ok, err := s.ps.CurrentLongTermKeyID()
	if err != nil {
		return domain.LongTermKeyPair{}, err
	}
	if !ok {
		return domain.LongTermKeyPair{}, ErrNoLongTermKey
	}
	ltk, found, err := s.ps.LoadLongTermKey(id)
	if err != nil {
		return domain.LongTermKeyPair{}, err
	}
	if !found {
		return domain.LongTermKeyPair{}, ErrNoLongTermKey
	}
	return ltk, nil
}

// Key ids are derived from the public key, so two generations can never
// share an id.
func longTermKeyID(pub domain.X25519Public) domain.LongTermKeyID {
	return domain.LongTermKeyID("ltk-" + crypto.Fingerprint(pub[:]))
}

func oneTimeKeyID(pub domain.X25519Public) domain.OneTimeKeyID {
	return domain.OneTimeKeyID("otk-" + crypto.Fingerprint(pub[:]))
}

// Compile-time assertion that Service implements domain.PreKeyService.
var _ domain.PreKeyService = (*Service)(nil)

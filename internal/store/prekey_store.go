package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"asyncpfs/internal/domain"
)

const (
	longTermPairsFile = "long_term_keys.json.enc"
	oneTimePairsFile  = "one_time_keys.json.enc"
	prekeyMetaFile    = "prekey_meta.json"
)

// ErrKeyIDExists is returned when a long-term key id is already bound to a
// different key.
var ErrKeyIDExists = errors.New("store: key id already in use")

// PreKeyFileStore persists long-term and one-time key pairs to disk.
//
// Both key files hold private keys and are sealed under the passphrase like
// the identity. Only the current long-term key id is kept in the clear.
type PreKeyFileStore struct {
	dir    string
	sealer sealer
	mu     sync.Mutex
}

// NewPreKeyFileStore returns a PreKeyFileStore rooted at dir.
func NewPreKeyFileStore(dir, passphrase string, opts ...Option) *PreKeyFileStore {
	return &PreKeyFileStore{dir: dir, sealer: newSealer(passphrase, opts)}
}

type prekeyMeta struct {
	CurrentLongTermKeyID domain.LongTermKeyID `json:"current_long_term_key_id"`
}

// SaveLongTermKey stores a long-term key pair by id. Saving the same pair
// twice is a no-op; reusing the id for another key fails with
// ErrKeyIDExists.
func (s *PreKeyFileStore) SaveLongTermKey(pair domain.LongTermKeyPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.longTerm()
	if err != nil {
		return err
	}
	if old, ok := m[pair.ID]; ok {
		if old.Public != pair.Public {
			return fmt.Errorf("%w: long-term %q", ErrKeyIDExists, pair.ID)
		}
		return nil
	}
	m[pair.ID] = pair
	return writeSealedJSON(s.path(longTermPairsFile), s.sealer, m)
}

// LoadLongTermKey retrieves a long-term key pair by id.
func (s *PreKeyFileStore) LoadLongTermKey(id domain.LongTermKeyID) (domain.LongTermKeyPair, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.longTerm()
	if err != nil {
		return domain.LongTermKeyPair{}, false, err
	}
	p, ok := m[id]
	return p, ok, nil
}

// SetCurrentLongTermKeyID records which long-term key is published.
func (s *PreKeyFileStore) SetCurrentLongTermKeyID(id domain.LongTermKeyID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeJSON(s.path(prekeyMetaFile), prekeyMeta{CurrentLongTermKeyID: id}, 0o600)
}

// CurrentLongTermKeyID returns the recorded current long-term key id.
func (s *PreKeyFileStore) CurrentLongTermKeyID() (domain.LongTermKeyID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var meta prekeyMeta
	if err := readJSON(s.path(prekeyMetaFile), &meta); err != nil {
		return "", false, err
	}
	if meta.CurrentLongTermKeyID == "" {
		return "", false, nil
	}
	return meta.CurrentLongTermKeyID, true, nil
}

// SaveOneTimeKeys merges the provided one-time key pairs into the store.
func (s *PreKeyFileStore) SaveOneTimeKeys(pairs []domain.OneTimeKeyPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.oneTime()
	if err != nil {
		return err
	}
	for _, p := range pairs {
		m[p.ID] = p
	}
	return writeSealedJSON(s.path(oneTimePairsFile), s.sealer, m)
}

// LoadOneTimeKey returns a one-time key pair by id without removing it.
func (s *PreKeyFileStore) LoadOneTimeKey(id domain.OneTimeKeyID) (domain.OneTimeKeyPair, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.oneTime()
	if err != nil {
		return domain.OneTimeKeyPair{}, false, err
	}
	p, ok := m[id]
	return p, ok, nil
}

// DeleteOneTimeKey removes a one-time key pair. Deleting a missing key is
// not an error.
func (s *PreKeyFileStore) DeleteOneTimeKey(id domain.OneTimeKeyID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.oneTime()
	if err != nil {
		return err
	}
	if _, ok := m[id]; !ok {
		return nil
	}
	delete(m, id)
	return writeSealedJSON(s.path(oneTimePairsFile), s.sealer, m)
}

// ListOneTimePublicKeys exposes only the public halves, ordered by id.
func (s *PreKeyFileStore) ListOneTimePublicKeys() ([]domain.OneTimePublicKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.oneTime()
	if err != nil {
		return nil, err
	}

	out := make([]domain.OneTimePublicKey, 0, len(m))
	for id, p := range m {
		out = append(out, domain.OneTimePublicKey{ID: id, Key: domain.PublicKeyFromX25519(p.Public)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *PreKeyFileStore) path(name string) string { return filepath.Join(s.dir, name) }

func (s *PreKeyFileStore) longTerm() (map[domain.LongTermKeyID]domain.LongTermKeyPair, error) {
	m := map[domain.LongTermKeyID]domain.LongTermKeyPair{}
	if _, err := readSealedJSON(s.path(longTermPairsFile), s.sealer, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *PreKeyFileStore) oneTime() (map[domain.OneTimeKeyID]domain.OneTimeKeyPair, error) {
	m := map[domain.OneTimeKeyID]domain.OneTimeKeyPair{}
	if _, err := readSealedJSON(s.path(oneTimePairsFile), s.sealer, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Compile-time assertion that PreKeyFileStore implements domain.PreKeyStore.
var _ domain.PreKeyStore = (*PreKeyFileStore)(nil)

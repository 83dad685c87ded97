package store

import (
	"errors"
	"path/filepath"
	"sync"

	"asyncpfs/internal/domain"
)

const idFilename = "identity.json.enc"

// ErrNoIdentity is returned when no identity has been created yet.
var ErrNoIdentity = errors.New("store: no identity; run init first")

// IdentityFileStore persists the local identity to disk, sealed under the
// caller's passphrase.
type IdentityFileStore struct {
	dir  string
	opts []Option
	mu   sync.Mutex
}

// NewIdentityFileStore returns an IdentityFileStore rooted at dir.
func NewIdentityFileStore(dir string, opts ...Option) *IdentityFileStore {
	return &IdentityFileStore{dir: dir, opts: opts}
}

// SaveIdentity writes the encrypted identity to disk.
func (s *IdentityFileStore) SaveIdentity(passphrase string, id domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, idFilename)
	return writeSealedJSON(path, newSealer(passphrase, s.opts), id)
}

// LoadIdentity reads and decrypts the identity.
func (s *IdentityFileStore) LoadIdentity(passphrase string) (domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, idFilename)

	var id domain.Identity
	ok, err := readSealedJSON(path, newSealer(passphrase, s.opts), &id)
	if err != nil {
		return domain.Identity{}, err
	}
	if !ok {
		return domain.Identity{}, ErrNoIdentity
	}
	return id, nil
}

// Compile-time assertion that IdentityFileStore implements domain.IdentityStore.
var _ domain.IdentityStore = (*IdentityFileStore)(nil)

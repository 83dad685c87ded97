package store

import (
	"path/filepath"
	"sync"

	"asyncpfs/internal/domain"
)

const sessionsFilename = "sessions.json.enc"

// SessionFileStore persists established sessions to a single file sealed
// under a passphrase. Sessions hold raw symmetric keys, so nothing is
// written in the clear.
type SessionFileStore struct {
	dir    string
	sealer sealer
	mu     sync.Mutex
}

// NewSessionFileStore returns a SessionFileStore rooted at dir.
func NewSessionFileStore(dir, passphrase string, opts ...Option) *SessionFileStore {
	return &SessionFileStore{dir: dir, sealer: newSealer(passphrase, opts)}
}

// SaveSession writes a session record for peer, replacing any previous one.
func (s *SessionFileStore) SaveSession(peer domain.Username, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load()
	if err != nil {
		return err
	}
	sessions[peer] = session
	return writeSealedJSON(s.path(), s.sealer, sessions)
}

// LoadSession retrieves a stored session for peer.
func (s *SessionFileStore) LoadSession(peer domain.Username) (domain.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load()
	if err != nil {
		return domain.Session{}, false, err
	}
	session, ok := sessions[peer]
	return session, ok, nil
}

// DeleteSession removes the session for peer. Deleting a missing session is
// not an error.
func (s *SessionFileStore) DeleteSession(peer domain.Username) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := sessions[peer]; !ok {
		return nil
	}
	delete(sessions, peer)
	return writeSealedJSON(s.path(), s.sealer, sessions)
}

func (s *SessionFileStore) path() string { return filepath.Join(s.dir, sessionsFilename) }

func (s *SessionFileStore) load() (map[domain.Username]domain.Session, error) {
	sessions := map[domain.Username]domain.Session{}
	if _, err := readSealedJSON(s.path(), s.sealer, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Compile-time assertion that SessionFileStore implements domain.SessionStore.
var _ domain.SessionStore = (*SessionFileStore)(nil)

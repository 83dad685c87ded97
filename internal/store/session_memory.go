package store

import (
	"sync"

	"asyncpfs/internal/domain"
)

// MemorySessionStore keeps sessions in process memory. Readers share the
// lock; SaveSession and DeleteSession take it exclusively.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.Username]domain.Session
}

// NewMemorySessionStore returns an empty MemorySessionStore.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[domain.Username]domain.Session)}
}

// SaveSession stores a copy of session for peer.
func (s *MemorySessionStore) SaveSession(peer domain.Username, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.sessions[peer]; ok {
		old.Wipe()
	}
	s.sessions[peer] = session.Clone()
	return nil
}

// LoadSession returns a copy of the session for peer.
func (s *MemorySessionStore) LoadSession(peer domain.Username) (domain.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[peer]
	if !ok {
		return domain.Session{}, false, nil
	}
	return session.Clone(), true, nil
}

// DeleteSession wipes and forgets the session for peer.
func (s *MemorySessionStore) DeleteSession(peer domain.Username) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.sessions[peer]; ok {
		old.Wipe()
		delete(s.sessions, peer)
	}
	return nil
}

// Compile-time assertion that MemorySessionStore implements domain.SessionStore.
var _ domain.SessionStore = (*MemorySessionStore)(nil)

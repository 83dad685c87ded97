package store

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"

	"asyncpfs/internal/domain"
)

const sessionsBoltFilename = "sessions.db"

var bucketSessions = []byte("sessions")

// BoltSessionStore keeps sessions in a bolt database, one sealed record per
// peer. Bolt serialises writers, so the store is safe for concurrent use.
type BoltSessionStore struct {
	db     *bolt.DB
	sealer sealer
}

// OpenBoltSessionStore opens (or creates) the session database under dir.
func OpenBoltSessionStore(dir, passphrase string, opts ...Option) (*BoltSessionStore, error) {
	path := filepath.Join(dir, sessionsBoltFilename)
	db, err := bolt.Open(filepath.Clean(path), 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(bucketSessions)
		return e
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltSessionStore{db: db, sealer: newSealer(passphrase, opts)}, nil
}

// Close releases the database file lock.
func (s *BoltSessionStore) Close() error { return s.db.Close() }

// SaveSession seals and stores the session for peer.
func (s *BoltSessionStore) SaveSession(peer domain.Username, session domain.Session) error {
	blob, err := sealJSON(s.sealer, session)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(bucketSessions)
		if bk == nil {
			return bolt.ErrBucketNotFound
		}
		return bk.Put([]byte(peer), blob)
	})
}

// LoadSession retrieves and opens the session for peer.
func (s *BoltSessionStore) LoadSession(peer domain.Username) (domain.Session, bool, error) {
	var blob []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket(bucketSessions)
		if bk == nil {
			return bolt.ErrBucketNotFound
		}
		if v := bk.Get([]byte(peer)); v != nil {
			// v is only valid inside the transaction.
			blob = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || blob == nil {
		return domain.Session{}, false, err
	}
	var session domain.Session
	if err := openJSON(s.sealer, blob, &session); err != nil {
		return domain.Session{}, false, err
	}
	return session, true, nil
}

// DeleteSession removes the session for peer.
func (s *BoltSessionStore) DeleteSession(peer domain.Username) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(bucketSessions)
		if bk == nil {
			return bolt.ErrBucketNotFound
		}
		return bk.Delete([]byte(peer))
	})
}

// Compile-time assertion that BoltSessionStore implements domain.SessionStore.
var _ domain.SessionStore = (*BoltSessionStore)(nil)

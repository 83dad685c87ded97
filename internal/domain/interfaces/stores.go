package interfaces

import domaintypes "asyncpfs/internal/domain/types"

// IdentityStore persists your long-term identity keys.
type IdentityStore interface {
	SaveIdentity(passphrase string, id domaintypes.Identity) error
	LoadIdentity(passphrase string) (domaintypes.Identity, error)
}

// PreKeyStore manages long-term and one-time keys on disk.
type PreKeyStore interface {
	// Long-term key
	SaveLongTermKey(pair domaintypes.LongTermKeyPair) error
	LoadLongTermKey(id domaintypes.LongTermKeyID) (domaintypes.LongTermKeyPair, bool, error)
	SetCurrentLongTermKeyID(id domaintypes.LongTermKeyID) error
	CurrentLongTermKeyID() (domaintypes.LongTermKeyID, bool, error)

	// One-time keys
	SaveOneTimeKeys(pairs []domaintypes.OneTimeKeyPair) error
	LoadOneTimeKey(id domaintypes.OneTimeKeyID) (domaintypes.OneTimeKeyPair, bool, error)
	DeleteOneTimeKey(id domaintypes.OneTimeKeyID) error
	ListOneTimePublicKeys() ([]domaintypes.OneTimePublicKey, error)
}

// SessionStore holds at most one established session per peer.
//
// Implementations define their own concurrency guarantees; every store in
// this module is safe for concurrent use.
type SessionStore interface {
	SaveSession(peer domaintypes.Username, session domaintypes.Session) error
	LoadSession(peer domaintypes.Username) (domaintypes.Session, bool, error)
	DeleteSession(peer domaintypes.Username) error
}

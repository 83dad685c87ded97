package interfaces

import (
	"context"

	domaintypes "asyncpfs/internal/domain/types"
)

// IdentityService creates, retrieves, and inspects your identity keys.
type IdentityService interface {
	GenerateIdentity(passphrase string) (
		domaintypes.Identity,
		domaintypes.Fingerprint,
		error,
	)
	LoadIdentity(passphrase string) (domaintypes.Identity, error)
	FingerprintIdentity(passphrase string) (domaintypes.Fingerprint, error)
}

// PreKeyService generates your long-term and one-time keys and assembles
// the bundle you publish.
type PreKeyService interface {
	GenerateAndStorePreKeys(passphrase string, count int) (
		domaintypes.LongTermKeyID,
		[]domaintypes.OneTimeKeyID,
		error,
	)
	LoadResponderBundle(
		passphrase string,
		username domaintypes.Username,
	) (domaintypes.ResponderBundle, error)
	// ResponderPrivateInfo loads the keys a hello refers to without
	// consuming anything.
	ResponderPrivateInfo(
		passphrase string,
		hello domaintypes.InitiatorHello,
	) (domaintypes.ResponderPrivateInfo, error)
	// RetireOneTimeKey deletes a one-time key once an agreement used it.
	RetireOneTimeKey(id domaintypes.OneTimeKeyID) error
}

// SessionService establishes, stores and uses per-peer sessions.
type SessionService interface {
	InitiateSession(
		ctx context.Context,
		passphrase string,
		self domaintypes.Username,
		peer domaintypes.Username,
		additionalData []byte,
	) (domaintypes.Session, domaintypes.InitiatorHello, error)
	AcceptSession(
		passphrase string,
		peer domaintypes.Username,
		hello domaintypes.InitiatorHello,
		additionalData []byte,
	) (domaintypes.Session, error)
	Encrypt(peer domaintypes.Username, plaintext []byte) (domaintypes.EncryptedMessage, error)
	Decrypt(peer domaintypes.Username, message domaintypes.EncryptedMessage) ([]byte, error)
	GetSession(peer domaintypes.Username) (domaintypes.Session, bool, error)
	ClearSession(peer domaintypes.Username) error
}

package domain

import (
	interfaces "asyncpfs/internal/domain/interfaces"
	types "asyncpfs/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Username             = types.Username
	Fingerprint          = types.Fingerprint
	LongTermKeyID        = types.LongTermKeyID
	OneTimeKeyID         = types.OneTimeKeyID
	X25519Public         = types.X25519Public
	X25519Private        = types.X25519Private
	PrivateKey           = types.PrivateKey
	PublicKey            = types.PublicKey
	Identity             = types.Identity
	InitiatorPrivateInfo = types.InitiatorPrivateInfo
	InitiatorPublicInfo  = types.InitiatorPublicInfo
	ResponderPrivateInfo = types.ResponderPrivateInfo
	ResponderPublicInfo  = types.ResponderPublicInfo
	Session              = types.Session
	EncryptedMessage     = types.EncryptedMessage
	InitiatorHello       = types.InitiatorHello
	LongTermKeyPair      = types.LongTermKeyPair
	OneTimeKeyPair       = types.OneTimeKeyPair
	OneTimePublicKey     = types.OneTimePublicKey
	ResponderBundle      = types.ResponderBundle
	PublishedBundle      = types.PublishedBundle
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	DH              = interfaces.DH
	KDF             = interfaces.KDF
	AEAD            = interfaces.AEAD
	IdentityService = interfaces.IdentityService
	PreKeyService   = interfaces.PreKeyService
	SessionService  = interfaces.SessionService
	DirectoryClient = interfaces.DirectoryClient
	IdentityStore   = interfaces.IdentityStore
	PreKeyStore     = interfaces.PreKeyStore
	SessionStore    = interfaces.SessionStore
)

// X25519KeySize is the length of X25519 keys.
const X25519KeySize = types.X25519KeySize

// ErrMalformedMessage is returned when an encoded message cannot be parsed.
var ErrMalformedMessage = types.ErrMalformedMessage

// NewPrivateKey copies key and password into a new PrivateKey.
func NewPrivateKey(key, password []byte) PrivateKey { return types.NewPrivateKey(key, password) }

// NewPublicKey copies key into a new PublicKey.
func NewPublicKey(key []byte) PublicKey { return types.NewPublicKey(key) }

// NewSession copies its arguments into a new Session.
func NewSession(identifier, encryptionKey, decryptionKey, additionalData []byte) Session {
	return types.NewSession(identifier, encryptionKey, decryptionKey, additionalData)
}

// PrivateKeyFromX25519 wraps a raw X25519 private key.
func PrivateKeyFromX25519(k X25519Private) PrivateKey { return types.PrivateKeyFromX25519(k) }

// PublicKeyFromX25519 wraps a raw X25519 public key.
func PublicKeyFromX25519(k X25519Public) PublicKey { return types.PublicKeyFromX25519(k) }

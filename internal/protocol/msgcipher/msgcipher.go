package msgcipher

import (
	"crypto/subtle"
	"fmt"
	"io"

	"asyncpfs/internal/crypto"
	"asyncpfs/internal/domain"
)

// SaltSize is the length of the random salt carried by every message.
const SaltSize = 32

var (
	errNoSession  = &Error{Kind: NoSession}
	errMismatch   = &Error{Kind: SessionMismatch}
	errAuthFailed = &Error{Kind: AuthenticationFailed}
)

// Cipher seals and opens single messages under a Session. It holds no
// per-session state and is safe for concurrent use.
type Cipher struct {
	suite crypto.Suite
}

// New returns a Cipher using suite's KDF, AEAD and randomness.
func New(suite crypto.Suite) *Cipher { return &Cipher{suite: suite} }

// Encrypt seals plaintext under a key derived from the session's encryption
// key and a fresh salt:
//
//	key = KDF(ikm = EncryptionSecretKey, salt, info = Identifier)
//
// The AEAD nonce is all zeros. Each key is used for exactly one message, so
// the (key, nonce) pair never repeats.
func (c *Cipher) Encrypt(session domain.Session, plaintext []byte) (domain.EncryptedMessage, error) {
	if session.IsEmpty() {
		return domain.EncryptedMessage{}, errNoSession
	}
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(c.suite.Rand, salt); err != nil {
		return domain.EncryptedMessage{}, fmt.Errorf("msgcipher: read salt: %w", err)
	}
	key, err := c.messageKey(session.EncryptionSecretKey, salt, session.Identifier)
	if err != nil {
		return domain.EncryptedMessage{}, fmt.Errorf("msgcipher: derive message key: %w", err)
	}
	defer crypto.Wipe(key)

	ct, err := c.suite.AEAD.Seal(key, c.nonce(), session.AdditionalData, plaintext)
	if err != nil {
		return domain.EncryptedMessage{}, fmt.Errorf("msgcipher: seal: %w", err)
	}
	return domain.EncryptedMessage{
		SessionIdentifier: append([]byte(nil), session.Identifier...),
		Salt:              salt,
		CipherText:        ct,
	}, nil
}

// Decrypt opens a message sealed by the peer's Encrypt. A message bound to
// another session fails with SessionMismatch before any key is derived;
// every later failure is AuthenticationFailed.
func (c *Cipher) Decrypt(session domain.Session, message domain.EncryptedMessage) ([]byte, error) {
	if session.IsEmpty() ||
		subtle.ConstantTimeCompare(session.Identifier, message.SessionIdentifier) != 1 {
		return nil, errMismatch
	}
	if len(message.Salt) != SaltSize {
		return nil, errAuthFailed
	}
	key, err := c.messageKey(session.DecryptionSecretKey, message.Salt, session.Identifier)
	if err != nil {
		return nil, errAuthFailed
	}
	defer crypto.Wipe(key)

	pt, err := c.suite.AEAD.Open(key, c.nonce(), session.AdditionalData, message.CipherText)
	if err != nil {
		return nil, errAuthFailed
	}
	if pt == nil {
		pt = []byte{}
	}
	return pt, nil
}

func (c *Cipher) messageKey(secret, salt, identifier []byte) ([]byte, error) {
	return c.suite.KDF.Derive(secret, salt, identifier, c.suite.AEAD.KeySize())
}

func (c *Cipher) nonce() []byte { return make([]byte, c.suite.AEAD.NonceSize()) }

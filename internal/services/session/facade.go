package session

import (
	"errors"
	"fmt"

	"asyncpfs/internal/crypto"
	"asyncpfs/internal/domain"
	"asyncpfs/internal/protocol/msgcipher"
	"asyncpfs/internal/protocol/x3dh"
)

const (
	roleInitiator = "initiator"
	roleResponder = "responder"
)

// Facade establishes and uses the single session held for one peer.
//
// The session lives in the SessionStore under the peer's name, so a Facade
// holds no state of its own and takes no locks. Concurrent use is as safe
// as the store it was given.
type Facade struct {
	suite  crypto.Suite
	cipher *msgcipher.Cipher
	store  domain.SessionStore
	peer   domain.Username
	options
}

// NewFacade returns a Facade for peer backed by store.
func NewFacade(suite crypto.Suite, store domain.SessionStore, peer domain.Username, opts ...Option) *Facade {
	o := newOptions(opts)
	o.log = o.log.WithPeer(peer.String())
	return &Facade{
		suite:   suite,
		cipher:  msgcipher.New(suite),
		store:   store,
		peer:    peer,
		options: o,
	}
}

// StartInitiatorSession derives a session as initiator and stores it,
// replacing any previous one. own's private keys are not retained.
func (f *Facade) StartInitiatorSession(
	own domain.InitiatorPrivateInfo,
	peer domain.ResponderPublicInfo,
	additionalData []byte,
) (domain.Session, error) {
	s, err := x3dh.InitiatorSession(f.suite, own, peer, additionalData)
	return f.established(roleInitiator, peer.HasOneTimeKey(), s, err)
}

// StartResponderSession derives a session as responder and stores it,
// replacing any previous one. own's private keys are not retained.
func (f *Facade) StartResponderSession(
	own domain.ResponderPrivateInfo,
	peer domain.InitiatorPublicInfo,
	additionalData []byte,
) (domain.Session, error) {
	s, err := x3dh.ResponderSession(f.suite, own, peer, additionalData)
	return f.established(roleResponder, own.HasOneTimeKey(), s, err)
}

func (f *Facade) established(role string, oneTimeKey bool, s domain.Session, err error) (domain.Session, error) {
	if err != nil {
		kind := "other"
		var kerr *x3dh.Error
		if errors.As(err, &kerr) {
			kind = kerr.Kind.String()
		}
		f.countFailed(role, kind)
		f.log.SessionFailed(role, kind, err)
		return domain.Session{}, err
	}
	if err := f.store.SaveSession(f.peer, s); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}
	f.countEstablished(role)
	f.log.WithSession(crypto.Fingerprint(s.Identifier)).SessionEstablished(role, oneTimeKey)
	return s, nil
}

// EncryptData seals plaintext under the held session.
func (f *Facade) EncryptData(plaintext []byte) (domain.EncryptedMessage, error) {
	s, err := f.held()
	if err != nil {
		return domain.EncryptedMessage{}, err
	}
	defer s.Wipe()

	msg, err := f.cipher.Encrypt(s, plaintext)
	if err != nil {
		return domain.EncryptedMessage{}, err
	}
	f.countEncrypted()
	return msg, nil
}

// DecryptMessage opens a message under the held session.
func (f *Facade) DecryptMessage(message domain.EncryptedMessage) ([]byte, error) {
	s, err := f.held()
	if err != nil {
		f.countDecrypted(msgcipher.NoSession.String())
		return nil, err
	}
	defer s.Wipe()

	pt, err := f.cipher.Decrypt(s, message)
	if err != nil {
		kind := msgcipher.KindOf(err).String()
		f.countDecrypted(kind)
		f.log.DecryptRejected(kind)
		return nil, err
	}
	f.countDecrypted("ok")
	return pt, nil
}

// Session returns the held session, if any.
func (f *Facade) Session() (domain.Session, bool, error) {
	return f.store.LoadSession(f.peer)
}

// SetSession replaces the held session, e.g. when restoring one saved
// elsewhere. Setting an empty session clears it.
func (f *Facade) SetSession(s domain.Session) error {
	if s.IsEmpty() {
		return f.ClearSession()
	}
	return f.store.SaveSession(f.peer, s)
}

// ClearSession drops the held session.
func (f *Facade) ClearSession() error {
	return f.store.DeleteSession(f.peer)
}

func (f *Facade) held() (domain.Session, error) {
	s, ok, err := f.store.LoadSession(f.peer)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	if !ok || s.IsEmpty() {
		return domain.Session{}, &msgcipher.Error{Kind: msgcipher.NoSession}
	}
	return s, nil
}

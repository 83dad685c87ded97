package session

import (
	"context"
	"errors"
	"fmt"

	"asyncpfs/internal/crypto"
	"asyncpfs/internal/domain"
)

// ErrNoDirectory is returned by InitiateSession when no directory is configured.
var ErrNoDirectory = errors.New("no directory configured")

// Service runs the key agreement against directory bundles and keeps one
// session per peer.
//
// This service handles:
//   - Loading our identity keys from the identity store.
//   - Fetching the peer's bundle from the directory and generating an
//     ephemeral key (initiator), or loading the keys a hello names
//     (responder).
//   - Running the agreement through a per-peer Facade, which persists the
//     result in the session store.
//   - Encrypting and decrypting messages under the stored session.
type Service struct {
	suite     crypto.Suite
	ids       domain.IdentityStore
	prekeys   domain.PreKeyService
	sessions  domain.SessionStore
	directory domain.DirectoryClient
	opts      []Option
}

// New constructs a Session Service. directory may be nil when the caller
// only accepts sessions or uses existing ones.
func New(
	suite crypto.Suite,
	ids domain.IdentityStore,
	prekeys domain.PreKeyService,
	sessions domain.SessionStore,
	directory domain.DirectoryClient,
	opts ...Option,
) *Service {
	return &Service{
		suite:     suite,
		ids:       ids,
		prekeys:   prekeys,
		sessions:  sessions,
		directory: directory,
		opts:      opts,
	}
}

// Facade returns the Facade holding the session with peer.
func (s *Service) Facade(peer domain.Username) *Facade {
	return NewFacade(s.suite, s.sessions, peer, s.opts...)
}

// InitiateSession establishes a session with peer as initiator and returns
// it with the hello the peer needs to derive the same session.
//
// Steps:
//  1. Load our identity key pair from the identity store.
//  2. Fetch the peer's bundle from the directory (identity key, long-term
//     key and at most one one-time key).
//  3. Generate an ephemeral key pair for this attempt only.
//  4. Run the agreement as initiator and store the session.
func (s *Service) InitiateSession(
	ctx context.Context,
	passphrase string,
	self domain.Username,
	peer domain.Username,
	additionalData []byte,
) (domain.Session, domain.InitiatorHello, error) {
	if s.directory == nil {
		return domain.Session{}, domain.InitiatorHello{}, ErrNoDirectory
	}
	id, err := s.ids.LoadIdentity(passphrase)
	if err != nil {
		return domain.Session{}, domain.InitiatorHello{}, err
	}
	bundle, err := s.directory.FetchBundle(ctx, peer)
	if err != nil {
		return domain.Session{}, domain.InitiatorHello{}, fmt.Errorf("fetch bundle for %q: %w", peer, err)
	}

	ekPriv, ekPub, err := crypto.GenerateX25519()
	if err != nil {
		return domain.Session{}, domain.InitiatorHello{}, err
	}
	own := domain.InitiatorPrivateInfo{
		Identifier:          self.String(),
		IdentityPrivateKey:  id.PrivateKey(),
		EphemeralPrivateKey: domain.PrivateKeyFromX25519(ekPriv),
	}
	defer own.Wipe()
	crypto.Wipe(ekPriv[:], id.Private[:])

	session, err := s.Facade(peer).StartInitiatorSession(own, bundle.Info, additionalData)
	if err != nil {
		return domain.Session{}, domain.InitiatorHello{}, err
	}
	hello := domain.InitiatorHello{
		Responder: peer,
		Info: domain.InitiatorPublicInfo{
			Identifier:         self.String(),
			IdentityPublicKey:  id.PublicKey(),
			EphemeralPublicKey: domain.PublicKeyFromX25519(ekPub),
		},
		LongTermKeyID: bundle.LongTermKeyID,
		OneTimeKeyID:  bundle.OneTimeKeyID,
	}
	return session, hello, nil
}

// AcceptSession establishes the responder side of the session a hello
// describes. An empty peer defaults to the initiator's identifier.
//
// The one-time key the hello names is retired only after the agreement
// succeeds, so a hello damaged in transit can be followed by the genuine one.
func (s *Service) AcceptSession(
	passphrase string,
	peer domain.Username,
	hello domain.InitiatorHello,
	additionalData []byte,
) (domain.Session, error) {
	if peer == "" {
		peer = domain.Username(hello.Info.Identifier)
	}
	own, err := s.prekeys.ResponderPrivateInfo(passphrase, hello)
	if err != nil {
		return domain.Session{}, err
	}
	defer own.Wipe()

	session, err := s.Facade(peer).StartResponderSession(own, hello.Info, additionalData)
	if err != nil {
		return domain.Session{}, err
	}
	if err := s.prekeys.RetireOneTimeKey(hello.OneTimeKeyID); err != nil {
		return domain.Session{}, fmt.Errorf("retire one-time key %q: %w", hello.OneTimeKeyID, err)
	}
	return session, nil
}

// Encrypt seals plaintext for peer.
func (s *Service) Encrypt(peer domain.Username, plaintext []byte) (domain.EncryptedMessage, error) {
	return s.Facade(peer).EncryptData(plaintext)
}

// Decrypt opens a message from peer.
func (s *Service) Decrypt(peer domain.Username, message domain.EncryptedMessage) ([]byte, error) {
	return s.Facade(peer).DecryptMessage(message)
}

// GetSession retrieves the stored session for peer.
func (s *Service) GetSession(peer domain.Username) (domain.Session, bool, error) {
	return s.Facade(peer).Session()
}

// ClearSession drops the stored session for peer.
func (s *Service) ClearSession(peer domain.Username) error {
	return s.Facade(peer).ClearSession()
}

// Compile-time assertion that Service implements domain.SessionService.
var _ domain.SessionService = (*Service)(nil)

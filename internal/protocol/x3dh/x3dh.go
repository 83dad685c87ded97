package x3dh

import (
	"bytes"
	"errors"
	"fmt"

	"asyncpfs/internal/crypto"
	"asyncpfs/internal/domain"
)

const (
	// SessionIdentifierSize is the length of a session identifier.
	SessionIdentifierSize = 32
	// SessionKeySize is the length of each directional session key.
	SessionKeySize = 32

	// responderRole is the fixed marker bound into the KDF info for the
	// responder side.
	responderRole = "responder"
)

// kdfLabel separates this agreement from any other use of the same keys.
var kdfLabel = []byte("asyncpfs-x3dh-v1")

var errReflected = errors.New("peer key equals local key")

// InitiatorSession derives the initiator's session with a responder.
//
// DH values, in order:
//
//	DH(IKa, LTKb) || DH(EKa, IKb) || DH(EKa, LTKb) [|| DH(EKa, OTKb)]
//
// The last one is present only when peer carries a one-time key. When
// additionalData is empty the session uses IKa_pub || IKb_pub instead.
func InitiatorSession(
	suite crypto.Suite,
	own domain.InitiatorPrivateInfo,
	peer domain.ResponderPublicInfo,
	additionalData []byte,
) (domain.Session, error) {
	a := agreement{dh: suite.DH}
	defer a.wipe()

	ik, err := a.private(own.IdentityPrivateKey, "initiator identity")
	if err != nil {
		return domain.Session{}, err
	}
	ek, err := a.private(own.EphemeralPrivateKey, "initiator ephemeral")
	if err != nil {
		return domain.Session{}, err
	}
	peerIK, err := a.public(peer.IdentityPublicKey, "responder identity")
	if err != nil {
		return domain.Session{}, err
	}
	peerLTK, err := a.public(peer.LongTermPublicKey, "responder long-term")
	if err != nil {
		return domain.Session{}, err
	}

	if err := a.step(ik, peerLTK, "responder long-term"); err != nil {
		return domain.Session{}, err
	}
	if err := a.step(ek, peerIK, "responder identity"); err != nil {
		return domain.Session{}, err
	}
	if err := a.step(ek, peerLTK, "responder long-term"); err != nil {
		return domain.Session{}, err
	}
	if peer.HasOneTimeKey() {
		peerOTK, err := a.public(peer.OneTimePublicKey, "responder one-time")
		if err != nil {
			return domain.Session{}, err
		}
		if err := a.step(ek, peerOTK, "responder one-time"); err != nil {
			return domain.Session{}, err
		}
	}

	okm, err := a.derive(suite.KDF, own.Identifier)
	if err != nil {
		return domain.Session{}, err
	}
	defer crypto.Wipe(okm)

	ad := additionalData
	if len(ad) == 0 {
		ad = defaultAdditionalData(ik.pub, peerIK)
	}
	id, a2b, b2a := split(okm)
	return domain.NewSession(id, a2b, b2a, ad), nil
}

// ResponderSession derives the responder's session with an initiator. It
// computes the same DH values as InitiatorSession from the other side:
//
//	DH(LTKb, IKa) || DH(IKb, EKa) || DH(LTKb, EKa) [|| DH(OTKb, EKa)]
//
// The encryption and decryption keys are swapped relative to the initiator.
func ResponderSession(
	suite crypto.Suite,
	own domain.ResponderPrivateInfo,
	peer domain.InitiatorPublicInfo,
	additionalData []byte,
) (domain.Session, error) {
	a := agreement{dh: suite.DH}
	defer a.wipe()

	ik, err := a.private(own.IdentityPrivateKey, "responder identity")
	if err != nil {
		return domain.Session{}, err
	}
	ltk, err := a.private(own.LongTermPrivateKey, "responder long-term")
	if err != nil {
		return domain.Session{}, err
	}
	peerIK, err := a.public(peer.IdentityPublicKey, "initiator identity")
	if err != nil {
		return domain.Session{}, err
	}
	peerEK, err := a.public(peer.EphemeralPublicKey, "initiator ephemeral")
	if err != nil {
		return domain.Session{}, err
	}

	if err := a.step(ltk, peerIK, "initiator identity"); err != nil {
		return domain.Session{}, err
	}
	if err := a.step(ik, peerEK, "initiator ephemeral"); err != nil {
		return domain.Session{}, err
	}
	if err := a.step(ltk, peerEK, "initiator ephemeral"); err != nil {
		return domain.Session{}, err
	}
	if own.HasOneTimeKey() {
		otk, err := a.private(own.OneTimePrivateKey, "responder one-time")
		if err != nil {
			return domain.Session{}, err
		}
		if err := a.step(otk, peerEK, "initiator ephemeral"); err != nil {
			return domain.Session{}, err
		}
	}

	okm, err := a.derive(suite.KDF, peer.Identifier)
	if err != nil {
		return domain.Session{}, err
	}
	defer crypto.Wipe(okm)

	ad := additionalData
	if len(ad) == 0 {
		ad = defaultAdditionalData(peerIK, ik.pub)
	}
	id, a2b, b2a := split(okm)
	return domain.NewSession(id, b2a, a2b, ad), nil
}

// keyPair is an opened private key with its public half.
type keyPair struct {
	priv []byte
	pub  []byte
}

// agreement accumulates DH outputs and every secret buffer it touched so
// they can be wiped on all exit paths.
type agreement struct {
	dh      domain.DH
	ikm     []byte
	secrets [][]byte
}

func (a *agreement) private(k domain.PrivateKey, name string) (keyPair, error) {
	if k.IsEmpty() {
		return keyPair{}, malformed(name, errors.New("empty key"))
	}
	raw := append([]byte(nil), k.Key...)
	if k.IsSealed() {
		opened, err := crypto.OpenPrivateKey(k.Key, k.Password)
		crypto.Wipe(raw)
		if err != nil {
			return keyPair{}, malformed(name, err)
		}
		raw = opened
	}
	a.secrets = append(a.secrets, raw)
	if len(raw) != a.dh.KeySize() {
		return keyPair{}, malformed(name, fmt.Errorf("want %d bytes, got %d", a.dh.KeySize(), len(raw)))
	}
	pub, err := a.dh.PublicKey(raw)
	if err != nil {
		return keyPair{}, malformed(name, err)
	}
	return keyPair{priv: raw, pub: pub}, nil
}

func (a *agreement) public(k domain.PublicKey, name string) ([]byte, error) {
	if k.IsEmpty() {
		return nil, malformed(name, errors.New("empty key"))
	}
	if len(k.Key) != a.dh.KeySize() {
		return nil, malformed(name, fmt.Errorf("want %d bytes, got %d", a.dh.KeySize(), len(k.Key)))
	}
	return k.Key, nil
}

// step appends DH(own, peer) to the key material. name identifies peer.
func (a *agreement) step(own keyPair, peer []byte, name string) error {
	if bytes.Equal(own.pub, peer) {
		return weak(name, errReflected)
	}
	out, err := a.dh.DH(own.priv, peer)
	if err != nil {
		if errors.Is(err, crypto.ErrLowOrderPoint) {
			return weak(name, err)
		}
		return malformed(name, err)
	}
	a.ikm = append(a.ikm, out...)
	crypto.Wipe(out)
	return nil
}

func (a *agreement) derive(kdf domain.KDF, initiator string) ([]byte, error) {
	info := make([]byte, 0, len(kdfLabel)+len(initiator)+len(responderRole)+2)
	info = append(info, kdfLabel...)
	info = append(info, 0)
	info = append(info, initiator...)
	info = append(info, 0)
	info = append(info, responderRole...)
	okm, err := kdf.Derive(a.ikm, nil, info, SessionIdentifierSize+2*SessionKeySize)
	if err != nil {
		return nil, fmt.Errorf("x3dh: derive session keys: %w", err)
	}
	return okm, nil
}

func (a *agreement) wipe() {
	crypto.Wipe(a.ikm)
	crypto.Wipe(a.secrets...)
}

func split(okm []byte) (id, a2b, b2a []byte) {
	id = okm[:SessionIdentifierSize]
	a2b = okm[SessionIdentifierSize : SessionIdentifierSize+SessionKeySize]
	b2a = okm[SessionIdentifierSize+SessionKeySize:]
	return id, a2b, b2a
}

func defaultAdditionalData(initiatorIK, responderIK []byte) []byte {
	ad := make([]byte, 0, len(initiatorIK)+len(responderIK))
	ad = append(ad, initiatorIK...)
	return append(ad, responderIK...)
}

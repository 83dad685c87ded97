package x3dh_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asyncpfs/internal/crypto"
	"asyncpfs/internal/domain"
	"asyncpfs/internal/protocol/x3dh"
)

type parties struct {
	initiatorPriv domain.InitiatorPrivateInfo
	initiatorPub  domain.InitiatorPublicInfo
	responderPriv domain.ResponderPrivateInfo
	responderPub  domain.ResponderPublicInfo
}

func keyPair(t *testing.T) (domain.PrivateKey, domain.PublicKey) {
	t.Helper()
	priv, pub, err := crypto.GenerateX25519()
	require.NoError(t, err)
	return domain.PrivateKeyFromX25519(priv), domain.PublicKeyFromX25519(pub)
}

// makeParties creates matching key material for alice (initiator) and bob
// (responder).
func makeParties(t *testing.T, withOneTimeKey bool) parties {
	t.Helper()
	aliceIKPriv, aliceIKPub := keyPair(t)
	aliceEKPriv, aliceEKPub := keyPair(t)
	bobIKPriv, bobIKPub := keyPair(t)
	bobLTKPriv, bobLTKPub := keyPair(t)

	p := parties{
		initiatorPriv: domain.InitiatorPrivateInfo{
			Identifier:          "alice",
			IdentityPrivateKey:  aliceIKPriv,
			EphemeralPrivateKey: aliceEKPriv,
		},
		initiatorPub: domain.InitiatorPublicInfo{
			Identifier:         "alice",
			IdentityPublicKey:  aliceIKPub,
			EphemeralPublicKey: aliceEKPub,
		},
		responderPriv: domain.ResponderPrivateInfo{
			Identifier:         "bob",
			IdentityPrivateKey: bobIKPriv,
			LongTermPrivateKey: bobLTKPriv,
		},
		responderPub: domain.ResponderPublicInfo{
			Identifier:        "bob",
			IdentityPublicKey: bobIKPub,
			LongTermPublicKey: bobLTKPub,
		},
	}
	if withOneTimeKey {
		p.responderPriv.OneTimePrivateKey, p.responderPub.OneTimePublicKey = keyPair(t)
	}
	return p
}

func derive(t *testing.T, suite crypto.Suite, p parties, ad []byte) (domain.Session, domain.Session) {
	t.Helper()
	initiator, err := x3dh.InitiatorSession(suite, p.initiatorPriv, p.responderPub, ad)
	require.NoError(t, err)
	responder, err := x3dh.ResponderSession(suite, p.responderPriv, p.initiatorPub, ad)
	require.NoError(t, err)
	return initiator, responder
}

func TestSessions_AgreeWithoutOneTimeKey(t *testing.T) {
	initiator, responder := derive(t, crypto.DefaultSuite(), makeParties(t, false), nil)

	assert.Len(t, initiator.Identifier, x3dh.SessionIdentifierSize)
	assert.Equal(t, initiator.Identifier, responder.Identifier)
	assert.Equal(t, initiator.EncryptionSecretKey, responder.DecryptionSecretKey)
	assert.Equal(t, initiator.DecryptionSecretKey, responder.EncryptionSecretKey)
	assert.NotEqual(t, initiator.EncryptionSecretKey, initiator.DecryptionSecretKey)
	assert.False(t, initiator.IsEmpty())
}

func TestSessions_AgreeWithOneTimeKey(t *testing.T) {
	for _, name := range crypto.SuiteNames() {
		t.Run(name, func(t *testing.T) {
			suite, err := crypto.SuiteByName(name)
			require.NoError(t, err)

			initiator, responder := derive(t, suite, makeParties(t, true), []byte("ad"))
			assert.Equal(t, initiator.Identifier, responder.Identifier)
			assert.Equal(t, initiator.EncryptionSecretKey, responder.DecryptionSecretKey)
			assert.Equal(t, initiator.DecryptionSecretKey, responder.EncryptionSecretKey)
		})
	}
}

func TestSessions_OneTimeKeyChangesKeys(t *testing.T) {
	p := makeParties(t, true)
	with, _ := derive(t, crypto.DefaultSuite(), p, nil)

	p.responderPriv.OneTimePrivateKey = domain.PrivateKey{}
	p.responderPub.OneTimePublicKey = domain.PublicKey{}
	without, responder := derive(t, crypto.DefaultSuite(), p, nil)

	assert.Equal(t, without.Identifier, responder.Identifier)
	assert.NotEqual(t, with.Identifier, without.Identifier)
	assert.NotEqual(t, with.EncryptionSecretKey, without.EncryptionSecretKey)
	assert.NotEqual(t, with.DecryptionSecretKey, without.DecryptionSecretKey)
}

func TestSessions_InitiatorIdentifierIsBound(t *testing.T) {
	p := makeParties(t, false)
	initiator, err := x3dh.InitiatorSession(crypto.DefaultSuite(), p.initiatorPriv, p.responderPub, nil)
	require.NoError(t, err)

	p.initiatorPub.Identifier = "mallory"
	responder, err := x3dh.ResponderSession(crypto.DefaultSuite(), p.responderPriv, p.initiatorPub, nil)
	require.NoError(t, err)

	assert.NotEqual(t, initiator.Identifier, responder.Identifier)
	assert.NotEqual(t, initiator.EncryptionSecretKey, responder.DecryptionSecretKey)
}

func TestSessions_AdditionalData(t *testing.T) {
	p := makeParties(t, false)

	initiator, responder := derive(t, crypto.DefaultSuite(), p, []byte("ctx-v1"))
	assert.Equal(t, []byte("ctx-v1"), initiator.AdditionalData)
	assert.Equal(t, []byte("ctx-v1"), responder.AdditionalData)

	initiator, responder = derive(t, crypto.DefaultSuite(), p, nil)
	want := append(append([]byte(nil), p.initiatorPub.IdentityPublicKey.Key...), p.responderPub.IdentityPublicKey.Key...)
	assert.Equal(t, want, initiator.AdditionalData)
	assert.Equal(t, want, responder.AdditionalData)

	// Associated data is not mixed into the key derivation.
	withAD, _ := derive(t, crypto.DefaultSuite(), p, []byte("other"))
	assert.Equal(t, initiator.EncryptionSecretKey, withAD.EncryptionSecretKey)
}

func TestSessions_SealedPrivateKeys(t *testing.T) {
	p := makeParties(t, true)
	password := []byte("correct horse")

	sealed, err := crypto.SealPrivateKey(p.responderPriv.LongTermPrivateKey.Key, password)
	require.NoError(t, err)
	p.responderPriv.LongTermPrivateKey = domain.NewPrivateKey(sealed, password)

	initiator, responder := derive(t, crypto.DefaultSuite(), p, nil)
	assert.Equal(t, initiator.EncryptionSecretKey, responder.DecryptionSecretKey)

	p.responderPriv.LongTermPrivateKey = domain.NewPrivateKey(sealed, []byte("wrong"))
	_, err = x3dh.ResponderSession(crypto.DefaultSuite(), p.responderPriv, p.initiatorPub, nil)
	assert.ErrorIs(t, err, x3dh.ErrMalformedKey)
}

func TestSessions_MalformedKeys(t *testing.T) {
	cases := map[string]func(p *parties){
		"empty initiator identity": func(p *parties) {
			p.initiatorPriv.IdentityPrivateKey = domain.PrivateKey{}
		},
		"short initiator ephemeral": func(p *parties) {
			p.initiatorPriv.EphemeralPrivateKey = domain.NewPrivateKey(make([]byte, 31), nil)
		},
		"empty responder long-term": func(p *parties) {
			p.responderPub.LongTermPublicKey = domain.PublicKey{}
		},
		"long responder one-time": func(p *parties) {
			p.responderPub.OneTimePublicKey = domain.NewPublicKey(make([]byte, 33))
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := makeParties(t, true)
			mutate(&p)
			_, err := x3dh.InitiatorSession(crypto.DefaultSuite(), p.initiatorPriv, p.responderPub, nil)
			require.ErrorIs(t, err, x3dh.ErrMalformedKey)
			assert.NotErrorIs(t, err, x3dh.ErrWeakKey)

			var kerr *x3dh.Error
			require.True(t, errors.As(err, &kerr))
			assert.Equal(t, x3dh.MalformedKey, kerr.Kind)
		})
	}

	p := makeParties(t, false)
	p.initiatorPub.EphemeralPublicKey = domain.PublicKey{}
	_, err := x3dh.ResponderSession(crypto.DefaultSuite(), p.responderPriv, p.initiatorPub, nil)
	assert.ErrorIs(t, err, x3dh.ErrMalformedKey)
}

func TestSessions_WeakKeys(t *testing.T) {
	t.Run("low-order long-term key", func(t *testing.T) {
		p := makeParties(t, false)
		p.responderPub.LongTermPublicKey = domain.NewPublicKey(make([]byte, 32))
		_, err := x3dh.InitiatorSession(crypto.DefaultSuite(), p.initiatorPriv, p.responderPub, nil)
		assert.ErrorIs(t, err, x3dh.ErrWeakKey)
		assert.ErrorIs(t, err, crypto.ErrLowOrderPoint)
	})
	t.Run("low-order ephemeral key", func(t *testing.T) {
		p := makeParties(t, true)
		p.initiatorPub.EphemeralPublicKey = domain.NewPublicKey(make([]byte, 32))
		_, err := x3dh.ResponderSession(crypto.DefaultSuite(), p.responderPriv, p.initiatorPub, nil)
		assert.ErrorIs(t, err, x3dh.ErrWeakKey)
	})
	t.Run("reflected identity key", func(t *testing.T) {
		p := makeParties(t, false)
		p.responderPub.LongTermPublicKey = p.initiatorPub.IdentityPublicKey
		_, err := x3dh.InitiatorSession(crypto.DefaultSuite(), p.initiatorPriv, p.responderPub, nil)
		assert.ErrorIs(t, err, x3dh.ErrWeakKey)
	})
}

func TestError_Message(t *testing.T) {
	err := &x3dh.Error{Kind: x3dh.WeakKey, Key: "responder one-time", Err: crypto.ErrLowOrderPoint}
	assert.Equal(t, "x3dh: weak key (responder one-time): crypto: low-order point", err.Error())
}

package msgcipher_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asyncpfs/internal/crypto"
	"asyncpfs/internal/domain"
	"asyncpfs/internal/protocol/msgcipher"
	"asyncpfs/internal/protocol/x3dh"
)

// establish runs the key agreement and returns both ends of a session.
func establish(t *testing.T, ad []byte) (initiator, responder domain.Session) {
	t.Helper()
	gen := func() (domain.PrivateKey, domain.PublicKey) {
		priv, pub, err := crypto.GenerateX25519()
		require.NoError(t, err)
		return domain.PrivateKeyFromX25519(priv), domain.PublicKeyFromX25519(pub)
	}
	aIK, aIKPub := gen()
	aEK, aEKPub := gen()
	bIK, bIKPub := gen()
	bLTK, bLTKPub := gen()

	suite := crypto.DefaultSuite()
	initiator, err := x3dh.InitiatorSession(suite,
		domain.InitiatorPrivateInfo{Identifier: "alice", IdentityPrivateKey: aIK, EphemeralPrivateKey: aEK},
		domain.ResponderPublicInfo{IdentityPublicKey: bIKPub, LongTermPublicKey: bLTKPub},
		ad)
	require.NoError(t, err)
	responder, err = x3dh.ResponderSession(suite,
		domain.ResponderPrivateInfo{IdentityPrivateKey: bIK, LongTermPrivateKey: bLTK},
		domain.InitiatorPublicInfo{Identifier: "alice", IdentityPublicKey: aIKPub, EphemeralPublicKey: aEKPub},
		ad)
	require.NoError(t, err)
	return initiator, responder
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestRoundTrip(t *testing.T) {
	c := msgcipher.New(crypto.DefaultSuite())
	alice, bob := establish(t, nil)

	for _, plaintext := range [][]byte{{}, []byte("x"), make([]byte, 4096)} {
		msg, err := c.Encrypt(alice, plaintext)
		require.NoError(t, err)
		assert.Equal(t, alice.Identifier, msg.SessionIdentifier)
		assert.Len(t, msg.Salt, msgcipher.SaltSize)

		got, err := c.Decrypt(bob, msg)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
	}

	// And the other direction.
	msg, err := c.Encrypt(bob, []byte("reply"))
	require.NoError(t, err)
	got, err := c.Decrypt(alice, msg)
	require.NoError(t, err)
	assert.Equal(t, []byte("reply"), got)
}

func TestRoundTrip_AES(t *testing.T) {
	suite, err := crypto.SuiteByName(crypto.SuiteAES256GCM)
	require.NoError(t, err)
	c := msgcipher.New(suite)
	alice, bob := establish(t, []byte("ad"))

	msg, err := c.Encrypt(alice, []byte("hi"))
	require.NoError(t, err)
	got, err := c.Decrypt(bob, msg)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), got)
}

func TestEncrypt_FreshSaltEveryCall(t *testing.T) {
	c := msgcipher.New(crypto.DefaultSuite())
	alice, _ := establish(t, nil)

	m1, err := c.Encrypt(alice, []byte("same"))
	require.NoError(t, err)
	m2, err := c.Encrypt(alice, []byte("same"))
	require.NoError(t, err)
	assert.NotEqual(t, m1.Salt, m2.Salt)
	assert.NotEqual(t, m1.CipherText, m2.CipherText)
}

func TestDecrypt_SessionMismatch(t *testing.T) {
	c := msgcipher.New(crypto.DefaultSuite())
	alice, _ := establish(t, nil)
	_, carol := establish(t, nil)

	msg, err := c.Encrypt(alice, []byte("for bob"))
	require.NoError(t, err)

	_, err = c.Decrypt(carol, msg)
	assert.ErrorIs(t, err, msgcipher.ErrSessionMismatch)
	assert.Equal(t, msgcipher.SessionMismatch, msgcipher.KindOf(err))

	_, err = c.Decrypt(domain.Session{}, msg)
	assert.ErrorIs(t, err, msgcipher.ErrSessionMismatch)
}

func TestDecrypt_TamperedCipherText(t *testing.T) {
	c := msgcipher.New(crypto.DefaultSuite())
	alice, bob := establish(t, nil)

	msg, err := c.Encrypt(alice, []byte("hello world"))
	require.NoError(t, err)

	for i := 0; i < len(msg.CipherText)*8; i++ {
		tampered := msg
		tampered.CipherText = append([]byte(nil), msg.CipherText...)
		tampered.CipherText[i/8] ^= 1 << (i % 8)

		got, err := c.Decrypt(bob, tampered)
		require.ErrorIs(t, err, msgcipher.ErrAuthenticationFailed, "bit %d", i)
		require.Nil(t, got)
	}
}

func TestDecrypt_TamperedSaltAndData(t *testing.T) {
	c := msgcipher.New(crypto.DefaultSuite())
	alice, bob := establish(t, nil)

	msg, err := c.Encrypt(alice, []byte("hello"))
	require.NoError(t, err)

	badSalt := msg
	badSalt.Salt = append([]byte(nil), msg.Salt...)
	badSalt.Salt[0] ^= 0x80
	_, err = c.Decrypt(bob, badSalt)
	assert.ErrorIs(t, err, msgcipher.ErrAuthenticationFailed)

	shortSalt := msg
	shortSalt.Salt = msg.Salt[:16]
	_, err = c.Decrypt(bob, shortSalt)
	assert.ErrorIs(t, err, msgcipher.ErrAuthenticationFailed)

	otherAD := bob
	otherAD.AdditionalData = []byte("other context")
	_, err = c.Decrypt(otherAD, msg)
	assert.ErrorIs(t, err, msgcipher.ErrAuthenticationFailed)
}

func TestEncrypt_EmptySession(t *testing.T) {
	c := msgcipher.New(crypto.DefaultSuite())
	_, err := c.Encrypt(domain.Session{}, []byte("x"))
	assert.ErrorIs(t, err, msgcipher.ErrNoSession)
}

func TestEncrypt_RandomFailure(t *testing.T) {
	c := msgcipher.New(crypto.DefaultSuite().WithRand(failingReader{}))
	alice, _ := establish(t, nil)
	_, err := c.Encrypt(alice, []byte("x"))
	require.Error(t, err)
	assert.Zero(t, msgcipher.KindOf(err))
}

func TestHelloWorld(t *testing.T) {
	c := msgcipher.New(crypto.DefaultSuite())
	alice, bob := establish(t, []byte("ctx-v1"))
	require.Equal(t, alice.Identifier, bob.Identifier)
	require.Equal(t, alice.EncryptionSecretKey, bob.DecryptionSecretKey)

	msg, err := c.Encrypt(alice, []byte("hello world"))
	require.NoError(t, err)
	got, err := c.Decrypt(bob, msg)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(got))
}

package prekey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asyncpfs/internal/crypto"
	"asyncpfs/internal/domain"
	"asyncpfs/internal/services/prekey"
	"asyncpfs/internal/store"
)

const pass = "pass"

func newService(t *testing.T) (*prekey.Service, domain.Identity) {
	t.Helper()
	home := t.TempDir()
	fast := store.WithScryptParams(crypto.ScryptParams{N: 1 << 10, R: 8, P: 1})
	ids := store.NewIdentityFileStore(home, fast)
	priv, pub, err := crypto.GenerateX25519()
	require.NoError(t, err)
	id := domain.Identity{Public: pub, Private: priv}
	require.NoError(t, ids.SaveIdentity(pass, id))
	return prekey.New(ids, store.NewPreKeyFileStore(home, pass, fast)), id
}

func TestBundle(t *testing.T) {
	svc, id := newService(t)

	_, err := svc.LoadResponderBundle(pass, "bob")
	assert.ErrorIs(t, err, prekey.ErrNoLongTermKey)

	ltkID, otkIDs, err := svc.GenerateAndStorePreKeys(pass, 3)
	require.NoError(t, err)
	require.Len(t, otkIDs, 3)

	bundle, err := svc.LoadResponderBundle(pass, "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.Username("bob"), bundle.Username)
	assert.Equal(t, ltkID, bundle.LongTermKeyID)
	assert.Equal(t, id.Public.Slice(), bundle.Info.IdentityPublicKey.Key)
	assert.False(t, bundle.Info.HasOneTimeKey())
	assert.Len(t, bundle.OneTimeKeys, 3)
}

func TestResponderPrivateInfo(t *testing.T) {
	svc, id := newService(t)
	ltkID, otkIDs, err := svc.GenerateAndStorePreKeys(pass, 1)
	require.NoError(t, err)

	hello := domain.InitiatorHello{Responder: "bob", LongTermKeyID: ltkID, OneTimeKeyID: otkIDs[0]}
	info, err := svc.ResponderPrivateInfo(pass, hello)
	require.NoError(t, err)
	assert.Equal(t, id.Private.Slice(), info.IdentityPrivateKey.Key)
	assert.True(t, info.HasOneTimeKey())

	// Loading does not consume; only retiring does.
	again, err := svc.ResponderPrivateInfo(pass, hello)
	require.NoError(t, err)
	assert.Equal(t, info.OneTimePrivateKey, again.OneTimePrivateKey)

	require.NoError(t, svc.RetireOneTimeKey(otkIDs[0]))
	require.NoError(t, svc.RetireOneTimeKey(otkIDs[0]))
	_, err = svc.ResponderPrivateInfo(pass, hello)
	assert.ErrorIs(t, err, prekey.ErrUnknownOneTimeKey)

	hello.OneTimeKeyID = ""
	info, err = svc.ResponderPrivateInfo(pass, hello)
	require.NoError(t, err)
	assert.False(t, info.HasOneTimeKey())

	hello.LongTermKeyID = "ltk-missing"
	_, err = svc.ResponderPrivateInfo(pass, hello)
	assert.ErrorIs(t, err, prekey.ErrUnknownLongTermKey)
}

func TestGenerate_WrongPassphrase(t *testing.T) {
	svc, _ := newService(t)
	_, _, err := svc.GenerateAndStorePreKeys("nope", 1)
	assert.ErrorIs(t, err, crypto.ErrWrongPassphrase)
}

func TestGenerate_DistinctIDs(t *testing.T) {
	svc, _ := newService(t)

	firstLTK, firstOTKs, err := svc.GenerateAndStorePreKeys(pass, 2)
	require.NoError(t, err)
	secondLTK, secondOTKs, err := svc.GenerateAndStorePreKeys(pass, 2)
	require.NoError(t, err)

	assert.NotEqual(t, firstLTK, secondLTK)
	seen := map[domain.OneTimeKeyID]bool{}
	for _, id := range append(firstOTKs, secondOTKs...) {
		assert.False(t, seen[id], id)
		seen[id] = true
	}

	// An initiator holding the first bundle still reaches the first key.
	first, err := svc.ResponderPrivateInfo(pass, domain.InitiatorHello{LongTermKeyID: firstLTK})
	require.NoError(t, err)
	second, err := svc.ResponderPrivateInfo(pass, domain.InitiatorHello{LongTermKeyID: secondLTK})
	require.NoError(t, err)
	assert.NotEqual(t, first.LongTermPrivateKey, second.LongTermPrivateKey)

	bundle, err := svc.LoadResponderBundle(pass, "bob")
	require.NoError(t, err)
	assert.Equal(t, secondLTK, bundle.LongTermKeyID)
	assert.Len(t, bundle.OneTimeKeys, 4)
}

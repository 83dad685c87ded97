package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asyncpfs/internal/crypto"
	"asyncpfs/internal/services/identity"
	"asyncpfs/internal/store"
)

const strong = "Correct-Horse-42"

func newService(t *testing.T) *identity.Service {
	t.Helper()
	ids := store.NewIdentityFileStore(t.TempDir(),
		store.WithScryptParams(crypto.ScryptParams{N: 1 << 10, R: 8, P: 1}))
	return identity.New(ids)
}

func TestGenerateIdentity(t *testing.T) {
	svc := newService(t)

	id, fp, err := svc.GenerateIdentity(strong)
	require.NoError(t, err)
	assert.Len(t, fp.String(), 20)

	loaded, err := svc.LoadIdentity(strong)
	require.NoError(t, err)
	assert.Equal(t, id, loaded)

	pub, err := crypto.X25519{}.PublicKey(loaded.Private.Slice())
	require.NoError(t, err)
	assert.Equal(t, loaded.Public.Slice(), pub)

	again, err := svc.FingerprintIdentity(strong)
	require.NoError(t, err)
	assert.Equal(t, fp, again)
}

func TestGenerateIdentity_WeakPassphrase(t *testing.T) {
	svc := newService(t)
	for _, p := range []string{"", "short1!A", "alllowercase123!", "NoDigitsHere!!", "NoSymbols12345"} {
		_, _, err := svc.GenerateIdentity(p)
		assert.ErrorIs(t, err, identity.ErrWeakPassphrase, p)
	}
}

func TestCheckPassphrase(t *testing.T) {
	assert.NoError(t, identity.CheckPassphrase(strong))

	cases := map[string]string{
		"Sh0rt!":          "6 more characters",
		"NOLOWERCASE123!": "lower case",
		"nouppercase123!": "upper case",
		"NoDigitsHere!!":  "digit",
		"NoSymbols12345":  "symbol",
	}
	for p, want := range cases {
		err := identity.CheckPassphrase(p)
		require.ErrorIs(t, err, identity.ErrWeakPassphrase, p)
		assert.Contains(t, err.Error(), want, p)
	}
}

func TestLoadIdentity_BeforeGenerate(t *testing.T) {
	_, err := newService(t).FingerprintIdentity(strong)
	assert.Error(t, err)
}

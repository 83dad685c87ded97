package directory_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asyncpfs/internal/crypto"
	"asyncpfs/internal/directory"
	"asyncpfs/internal/domain"
	"asyncpfs/internal/observability"
)

func publicKey(t *testing.T) domain.PublicKey {
	t.Helper()
	_, pub, err := crypto.GenerateX25519()
	require.NoError(t, err)
	return domain.PublicKeyFromX25519(pub)
}

func bundle(t *testing.T, username string, oneTime int) domain.ResponderBundle {
	t.Helper()
	b := domain.ResponderBundle{
		Username: domain.Username(username),
		Info: domain.ResponderPublicInfo{
			Identifier:        username,
			IdentityPublicKey: publicKey(t),
			LongTermPublicKey: publicKey(t),
		},
		LongTermKeyID: "ltk-1",
	}
	for i := 0; i < oneTime; i++ {
		b.OneTimeKeys = append(b.OneTimeKeys, domain.OneTimePublicKey{
			ID:  domain.OneTimeKeyID("otk-" + string(rune('a'+i))),
			Key: publicKey(t),
		})
	}
	return b
}

func newDirectory(t *testing.T) (*directory.Client, *observability.Metrics, *httptest.Server) {
	t.Helper()
	metrics := observability.NewMetrics()
	srv := httptest.NewServer(directory.NewServer(observability.Nop(), metrics))
	t.Cleanup(srv.Close)
	return directory.NewClient(srv.URL+"/", srv.Client()), metrics, srv
}

func TestRegisterAndFetch(t *testing.T) {
	client, _, _ := newDirectory(t)
	ctx := context.Background()

	b := bundle(t, "bob", 2)
	require.NoError(t, client.Register(ctx, b))

	first, err := client.FetchBundle(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.Username("bob"), first.Username)
	assert.Equal(t, b.Info.IdentityPublicKey, first.Info.IdentityPublicKey)
	assert.Equal(t, b.Info.LongTermPublicKey, first.Info.LongTermPublicKey)
	assert.Equal(t, b.LongTermKeyID, first.LongTermKeyID)
	assert.Equal(t, b.OneTimeKeys[0].ID, first.OneTimeKeyID)
	assert.Equal(t, b.OneTimeKeys[0].Key, first.Info.OneTimePublicKey)

	second, err := client.FetchBundle(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, b.OneTimeKeys[1].ID, second.OneTimeKeyID)

	// Exhausted: still served, without a one-time key.
	third, err := client.FetchBundle(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, third.OneTimeKeyID)
	assert.False(t, third.Info.HasOneTimeKey())
	assert.Equal(t, b.Info.IdentityPublicKey, third.Info.IdentityPublicKey)
}

func TestReRegisterReplaces(t *testing.T) {
	client, _, _ := newDirectory(t)
	ctx := context.Background()

	require.NoError(t, client.Register(ctx, bundle(t, "bob", 1)))
	fresh := bundle(t, "bob", 0)
	require.NoError(t, client.Register(ctx, fresh))

	got, err := client.FetchBundle(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, fresh.Info.IdentityPublicKey, got.Info.IdentityPublicKey)
	assert.Empty(t, got.OneTimeKeyID)
}

func TestFetchUnknown(t *testing.T) {
	client, _, _ := newDirectory(t)

	_, err := client.FetchBundle(context.Background(), "nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestRegisterRejectsInvalid(t *testing.T) {
	client, _, _ := newDirectory(t)
	ctx := context.Background()

	cases := map[string]func(*domain.ResponderBundle){
		"no username":       func(b *domain.ResponderBundle) { b.Username = "" },
		"short identity":    func(b *domain.ResponderBundle) { b.Info.IdentityPublicKey.Key = []byte{1, 2, 3} },
		"missing long-term": func(b *domain.ResponderBundle) { b.Info.LongTermPublicKey = domain.PublicKey{} },
		"no long-term id":   func(b *domain.ResponderBundle) { b.LongTermKeyID = "" },
		"inline one-time":   func(b *domain.ResponderBundle) { b.Info.OneTimePublicKey = b.Info.IdentityPublicKey },
		"duplicate otk id":  func(b *domain.ResponderBundle) { b.OneTimeKeys[1].ID = b.OneTimeKeys[0].ID },
		"short otk":         func(b *domain.ResponderBundle) { b.OneTimeKeys[0].Key.Key = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			b := bundle(t, "bob", 2)
			mutate(&b)
			err := client.Register(ctx, b)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "400")
		})
	}
}

func TestHealthAndMetrics(t *testing.T) {
	client, _, srv := newDirectory(t)
	ctx := context.Background()

	require.NoError(t, client.Healthy(ctx))
	require.NoError(t, client.Register(ctx, bundle(t, "bob", 1)))
	_, err := client.FetchBundle(ctx, "bob")
	require.NoError(t, err)

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "asyncpfs_directory_one_time_keys_served_total 1")
	assert.Contains(t, string(body), `route="GET /bundle/{username}"`)
	assert.Contains(t, string(body), `route="POST /register"`)
}

func TestServerDirect(t *testing.T) {
	s := directory.NewServer(nil, nil)
	n, err := s.Register(bundle(t, "carol", 1))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, ok := s.Bundle("carol")
	require.True(t, ok)
	assert.True(t, got.Info.HasOneTimeKey())

	_, ok = s.Bundle("dave")
	assert.False(t, ok)
}

func TestReRegisterSkipsServedKeys(t *testing.T) {
	s := directory.NewServer(nil, nil)
	b := bundle(t, "bob", 2)

	n, err := s.Register(b)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	got, ok := s.Bundle("bob")
	require.True(t, ok)
	require.Equal(t, b.OneTimeKeys[0].ID, got.OneTimeKeyID)

	// The owner republishes before the first hello arrives; the served key
	// still sits in its local store.
	n, err = s.Register(b)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, ok = s.Bundle("bob")
	require.True(t, ok)
	assert.Equal(t, b.OneTimeKeys[1].ID, got.OneTimeKeyID)

	got, ok = s.Bundle("bob")
	require.True(t, ok)
	assert.Empty(t, got.OneTimeKeyID)

	// A fresh batch is published in full.
	next := bundle(t, "bob", 0)
	next.OneTimeKeys = []domain.OneTimePublicKey{{ID: "otk-new", Key: publicKey(t)}}
	n, err = s.Register(next)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	got, ok = s.Bundle("bob")
	require.True(t, ok)
	assert.Equal(t, domain.OneTimeKeyID("otk-new"), got.OneTimeKeyID)
}

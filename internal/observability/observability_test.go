package observability_test

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asyncpfs/internal/observability"
)

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	log := observability.NewLogger("asyncpfs", "test", &buf).WithPeer("bob").WithSession("abcd")
	log.SessionEstablished("initiator", true)

	out := buf.String()
	assert.Contains(t, out, `"peer":"bob"`)
	assert.Contains(t, out, `"session":"abcd"`)
	assert.Contains(t, out, `"role":"initiator"`)
	assert.Contains(t, out, `"one_time_key":true`)
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	log := observability.NewLogger("asyncpfs", "test", &buf).WithLevel("warn")
	log.Info("hidden")
	assert.Empty(t, buf.String())
	log.Error(errors.New("boom"), "shown")
	assert.Contains(t, buf.String(), "boom")
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.SessionsEstablished.WithLabelValues("responder").Inc()
	m.MessagesEncrypted.Add(2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `asyncpfs_sessions_established_total{role="responder"} 1`)
	assert.Contains(t, rec.Body.String(), "asyncpfs_messages_encrypted_total 2")
}

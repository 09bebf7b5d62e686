package server

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-tangra/go-tangra-hwscore/internal/logger"
)

func TestCheckAPIKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"match", "k3y", ""},
		{"missing", "", "missing X-API-Key header"},
		{"wrong", "k3y2", "invalid X-API-Key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkAPIKey(tt.key, "k3y"))
		})
	}
}

func TestAPISecretLogsRejectedPeer(t *testing.T) {
	require.NoError(t, logger.Init("info", false))
	t.Cleanup(func() { _ = logger.Init("info", false) })

	var buf bytes.Buffer
	logger.SetOutput(&buf)

	f := newFixture(t, workstation())
	code, _ := call(t, f.http("k3y"), http.MethodGet, "/v1/usage", http.Header{APIKeyHeader: {"guess"}})
	assert.Equal(t, http.StatusUnauthorized, code)

	out := buf.String()
	assert.Contains(t, out, "REST request rejected")
	assert.Contains(t, out, "invalid X-API-Key")
	assert.Contains(t, out, "192.0.2.1")
}

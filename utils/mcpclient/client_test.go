package mcpclient

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing logger",
			cfg:     Config{Endpoint: "http://localhost:8811"},
			wantErr: "logger is required",
		},
		{
			name:    "missing transport",
			cfg:     Config{},
			wantErr: "either a server command or an endpoint is required",
		},
		{
			name:    "both transports",
			cfg:     Config{Command: []string{"beamctl", "serve", "--stdio"}, Endpoint: "http://localhost:8811"},
			wantErr: "mutually exclusive",
		},
		{
			name: "endpoint ok",
			cfg:  Config{Endpoint: "http://localhost:8811"},
		},
		{
			name: "command ok",
			cfg:  Config{Command: []string{"beamctl", "serve", "--stdio"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.cfg.Logger == nil && tt.wantErr != "logger is required" {
				tt.cfg.Logger = testLogger(t)
			}
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				require.Equal(t, defaultRequestTimeout, tt.cfg.RequestTimeout)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	require.False(t, isConnectionError(nil))
	require.False(t, isConnectionError(fmt.Errorf("tool not found")))
	require.True(t, isConnectionError(fmt.Errorf("read tcp: connection reset by peer")))
	require.True(t, isConnectionError(fmt.Errorf("unexpected EOF")))
	require.True(t, isConnectionError(fmt.Errorf("write: broken pipe")))
	require.True(t, isConnectionError(fmt.Errorf("connection closed")))
}

func TestTokenTransportAddsAuthorization(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := &http.Client{Transport: &tokenTransport{
		base:  http.DefaultTransport,
		token: "secret-token",
	}}
	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, "Bearer secret-token", gotAuth)
}

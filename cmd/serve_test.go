package cmd

import (
	"testing"

	"github.com/armon-kel/beamctl/utils/config"
)

func TestServerConfigDefaults(t *testing.T) {
	cfg := serverConfig(&config.EnvConfig{})

	if cfg.ListenAddr != config.DefaultListenAddr {
		t.Errorf("expected default listen addr, got %q", cfg.ListenAddr)
	}
	if cfg.Gcloud == nil {
		t.Error("expected gcloud client to be set by default")
	}
	if len(cfg.AllowedTokens) != 0 {
		t.Errorf("expected no tokens, got %v", cfg.AllowedTokens)
	}
}

func TestServerConfigFlagOverrides(t *testing.T) {
	serveListen = "127.0.0.1:9999"
	serveProject = "flag-proj"
	serveNoJobs = false
	t.Cleanup(func() {
		serveListen = ""
		serveProject = ""
	})

	envConfig := &config.EnvConfig{
		Dataflow: config.Dataflow{Project: "env-proj", Region: "us-east1"},
		Server:   &config.ServerConfig{ListenAddr: "127.0.0.1:8000"},
	}
	cfg := serverConfig(envConfig)

	if cfg.ListenAddr != "127.0.0.1:9999" {
		t.Errorf("flag should override env file listen addr, got %q", cfg.ListenAddr)
	}
	if cfg.DefaultProject != "flag-proj" {
		t.Errorf("flag should override env file project, got %q", cfg.DefaultProject)
	}
	if cfg.DefaultRegion != "us-east1" {
		t.Errorf("env file region should apply, got %q", cfg.DefaultRegion)
	}
}

func TestServerConfigTokens(t *testing.T) {
	t.Setenv("MCP_ALLOWED_TOKENS", "tok-a, tok-b,")

	envConfig := &config.EnvConfig{
		Server: &config.ServerConfig{AuthEnabled: true, BearerToken: "tok-file"},
	}
	cfg := serverConfig(envConfig)

	want := []string{"tok-file", "tok-a", "tok-b"}
	if len(cfg.AllowedTokens) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.AllowedTokens)
	}
	for i, token := range want {
		if cfg.AllowedTokens[i] != token {
			t.Errorf("token %d: expected %q, got %q", i, token, cfg.AllowedTokens[i])
		}
	}
}

func TestServerConfigNoJobs(t *testing.T) {
	serveNoJobs = true
	t.Cleanup(func() { serveNoJobs = false })

	cfg := serverConfig(&config.EnvConfig{})
	if cfg.Gcloud != nil {
		t.Error("expected no gcloud client with jobs disabled")
	}
}

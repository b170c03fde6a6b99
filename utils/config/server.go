package config

// DefaultListenAddr is the default address for the MCP HTTP server
const DefaultListenAddr = "127.0.0.1:8811"

// ServerConfig holds configuration for the MCP HTTP server
type ServerConfig struct {
	ListenAddr  string `yaml:"listenAddr"`
	BearerToken string `yaml:"bearerToken,omitempty"`
	AuthEnabled bool   `yaml:"authEnabled"`
}

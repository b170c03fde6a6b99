package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Provider represents a configured LLM provider
type Provider struct {
	APIKey       string `yaml:"api_key"`
	DefaultModel string `yaml:"default_model,omitempty"`
}

// Dataflow holds default settings for the gcloud-backed job tools
type Dataflow struct {
	Project string `yaml:"project,omitempty"`
	Region  string `yaml:"region,omitempty"`
}

// EnvConfig represents the complete environment configuration
type EnvConfig struct {
	Providers map[string]*Provider `yaml:"providers"`
	Dataflow  Dataflow             `yaml:"dataflow,omitempty"`
	Server    *ServerConfig        `yaml:"server,omitempty"`
}

// GetEnvPath returns the environment file path from BEAMCTL_ENV or the default
func GetEnvPath() string {
	if envPath := os.Getenv("BEAMCTL_ENV"); envPath != "" {
		DebugLog("Using environment file from BEAMCTL_ENV: %s", envPath)
		return envPath
	}
	DebugLog("Using default environment file: .beamctl.env")
	return ".beamctl.env"
}

// LoadEnvConfig loads the environment configuration from the given file
func LoadEnvConfig(path string) (*EnvConfig, error) {
	DebugLog("Attempting to load environment configuration from: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading env file: %w", err)
	}

	var config EnvConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing env file: %w", err)
	}

	DebugLog("Successfully loaded environment configuration")
	return &config, nil
}

// SaveEnvConfig saves the environment configuration to the given file
func SaveEnvConfig(path string, config *EnvConfig) error {
	DebugLog("Attempting to save environment configuration to: %s", path)

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error marshaling env config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing env file: %w", err)
	}

	DebugLog("Successfully saved environment configuration")
	return nil
}

// GetProviderConfig retrieves configuration for a specific provider
func (c *EnvConfig) GetProviderConfig(providerName string) (*Provider, error) {
	provider, exists := c.Providers[providerName]
	if !exists {
		return nil, fmt.Errorf("provider %s not found in configuration", providerName)
	}
	if provider == nil {
		return nil, fmt.Errorf("provider %s configuration is nil", providerName)
	}
	return provider, nil
}

// GetProviderAPIKey returns the API key for a provider, falling back to the
// conventional environment variable when the env file has no entry.
func (c *EnvConfig) GetProviderAPIKey(providerName string) string {
	if c != nil {
		if provider, ok := c.Providers[providerName]; ok && provider != nil && provider.APIKey != "" {
			return provider.APIKey
		}
	}
	switch providerName {
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	case "google":
		return os.Getenv("GOOGLE_API_KEY")
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	}
	return ""
}

// AddProvider adds or updates a provider configuration
func (c *EnvConfig) AddProvider(name string, provider Provider) {
	if c.Providers == nil {
		c.Providers = make(map[string]*Provider)
	}
	p := provider
	c.Providers[name] = &p
}

// GetServerConfig returns the server configuration, applying defaults
func (c *EnvConfig) GetServerConfig() *ServerConfig {
	if c.Server == nil {
		return &ServerConfig{ListenAddr: DefaultListenAddr}
	}
	server := *c.Server
	if server.ListenAddr == "" {
		server.ListenAddr = DefaultListenAddr
	}
	return &server
}

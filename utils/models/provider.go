package models

import (
	"context"
	"fmt"

	"github.com/armon-kel/beamctl/utils/discovery"
)

// ModelConfig represents configuration options for model calls
type ModelConfig struct {
	Temperature float64
	MaxTokens   int
	TopP        float64
}

// Provider represents a model provider (e.g., Anthropic, Google)
type Provider interface {
	Name() string
	SupportsModel(modelName string) bool
	SendPrompt(ctx context.Context, modelName string, prompt string) (string, error)
	Configure(apiKey string) error
	SetVerbose(verbose bool)
}

// DetectProvider determines the appropriate provider based on the model name
func DetectProvider(modelName string) Provider {
	return registry.FindProvider(modelName)
}

// ListModelsForProvider returns the available model names for a registered
// provider, using the provider's listing endpoint where one exists.
func ListModelsForProvider(providerName, apiKey string) ([]string, error) {
	if GetProviderByName(providerName) == nil {
		return nil, fmt.Errorf("provider %s not found", providerName)
	}
	return discovery.ListModels(providerName, apiKey)
}

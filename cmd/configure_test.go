package cmd

import (
	"testing"

	"github.com/armon-kel/beamctl/utils/models"
)

// TestProviderConsistency ensures that every provider offered during
// configuration is resolvable at runtime.
func TestProviderConsistency(t *testing.T) {
	available := models.ListRegisteredProviders()
	if len(available) == 0 {
		t.Fatal("no providers registered")
	}

	for _, name := range available {
		provider := models.GetProviderByName(name)
		if provider == nil {
			t.Errorf("provider %s listed as available but not found in registry", name)
			continue
		}
		if provider.Name() != name {
			t.Errorf("provider %s reports name %s", name, provider.Name())
		}
	}
}

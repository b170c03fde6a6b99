package models

import (
	"testing"
)

func TestDetectProvider(t *testing.T) {
	tests := []struct {
		name      string
		modelName string
		want      string
	}{
		{"claude model", "claude-sonnet-4-20250514", "anthropic"},
		{"claude case insensitive", "Claude-3-5-Haiku-Latest", "anthropic"},
		{"gemini model", "gemini-2.5-pro", "google"},
		{"gpt model", "gpt-4o", "openai"},
		{"o-series model", "o3-mini", "openai"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := DetectProvider(tt.modelName)
			if provider == nil {
				t.Fatalf("DetectProvider(%q) = nil, want %s", tt.modelName, tt.want)
			}
			if provider.Name() != tt.want {
				t.Errorf("DetectProvider(%q) = %s, want %s", tt.modelName, provider.Name(), tt.want)
			}
		})
	}

	if provider := DetectProvider("llama-3"); provider != nil {
		t.Errorf("DetectProvider(llama-3) = %s, want nil", provider.Name())
	}
}

func TestListRegisteredProviders(t *testing.T) {
	names := ListRegisteredProviders()
	want := []string{"anthropic", "google", "openai"}
	if len(names) != len(want) {
		t.Fatalf("ListRegisteredProviders() = %v, want %v", names, want)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("ListRegisteredProviders()[%d] = %s, want %s", i, names[i], name)
		}
	}
}

func TestGetProviderByName(t *testing.T) {
	if provider := GetProviderByName("google"); provider == nil || provider.Name() != "google" {
		t.Errorf("GetProviderByName(google) = %v", provider)
	}
	if provider := GetProviderByName("nope"); provider != nil {
		t.Errorf("GetProviderByName(nope) = %v, want nil", provider)
	}
}

func TestConfigureRequiresKey(t *testing.T) {
	for _, provider := range []Provider{
		NewAnthropicProvider(),
		NewGoogleProvider(),
		NewOpenAIProvider(),
	} {
		if err := provider.Configure(""); err == nil {
			t.Errorf("%s.Configure(\"\") = nil, want error", provider.Name())
		}
		if err := provider.Configure("test-key"); err != nil {
			t.Errorf("%s.Configure(key) = %v", provider.Name(), err)
		}
	}
}

func TestSupportsModel(t *testing.T) {
	anthropic := NewAnthropicProvider()
	if anthropic.SupportsModel("gpt-4o") {
		t.Error("anthropic should not support gpt models")
	}
	google := NewGoogleProvider()
	if !google.SupportsModel("gemini-2.5-flash") {
		t.Error("google should support gemini models")
	}
}

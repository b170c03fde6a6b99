package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/armon-kel/beamctl/utils/config"
)

// modelCache stores a fetched model list with its fetch time.
type modelCache struct {
	models    []string
	timestamp time.Time
}

var (
	cache      = make(map[string]*modelCache)
	cacheMutex sync.RWMutex
	cacheTTL   = 1 * time.Hour
)

func getCachedModels(cacheKey string) ([]string, bool) {
	cacheMutex.RLock()
	defer cacheMutex.RUnlock()

	entry, exists := cache[cacheKey]
	if !exists || time.Since(entry.timestamp) >= cacheTTL {
		return nil, false
	}
	return entry.models, true
}

func setCachedModels(cacheKey string, models []string) {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	cache[cacheKey] = &modelCache{models: models, timestamp: time.Now()}
}

// cacheKey builds a per-provider cache key. Only a key prefix goes into the
// map so full credentials are never held longer than needed.
func cacheKey(provider, apiKey string) string {
	n := len(apiKey)
	if n > 8 {
		n = 8
	}
	return fmt.Sprintf("%s_%s", provider, apiKey[:n])
}

// ListModels fetches the available model names for a provider. Providers
// whose listing endpoint is unreachable fall back to a known static list.
func ListModels(provider, apiKey string) ([]string, error) {
	switch provider {
	case "openai":
		return openAIModels(apiKey)
	case "google":
		return googleModels(apiKey), nil
	case "anthropic":
		return anthropicModels(apiKey), nil
	}
	return nil, fmt.Errorf("unknown provider %q", provider)
}

func openAIModels(apiKey string) ([]string, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required for OpenAI")
	}
	key := cacheKey("openai", apiKey)
	if cached, found := getCachedModels(key); found {
		return cached, nil
	}

	client := openai.NewClient(apiKey)
	models, err := client.ListModels(context.Background())
	if err != nil {
		return nil, fmt.Errorf("error fetching OpenAI models: %w", err)
	}

	var names []string
	for _, model := range models.Models {
		names = append(names, model.ID)
	}
	sort.Strings(names)

	setCachedModels(key, names)
	return names, nil
}

// googleModels fetches generative models from the Generative Language API,
// falling back to a static list when no key is set or the call fails.
func googleModels(apiKey string) []string {
	if apiKey == "" {
		return googleModelsStatic()
	}
	key := cacheKey("google", apiKey)
	if cached, found := getCachedModels(key); found {
		return cached
	}

	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models?key=%s", apiKey)
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		config.DebugLog("Google model listing failed, using static list: %v", err)
		return googleModelsStatic()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		config.DebugLog("Google model listing returned %d, using static list", resp.StatusCode)
		return googleModelsStatic()
	}

	var response struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return googleModelsStatic()
	}

	var names []string
	for _, model := range response.Models {
		name := trimModelPath(model.Name)
		if strings.Contains(name, "gemini") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	setCachedModels(key, names)
	return names
}

// trimModelPath strips the resource prefix from a full model path, e.g.
// "models/gemini-2.5-pro" becomes "gemini-2.5-pro".
func trimModelPath(name string) string {
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		return name[idx+1:]
	}
	return name
}

func googleModelsStatic() []string {
	return []string{
		"gemini-2.5-pro",
		"gemini-2.5-flash",
		"gemini-2.0-flash",
		"gemini-2.0-flash-lite",
		"gemini-1.5-pro",
		"gemini-1.5-flash",
	}
}

// anthropicModels fetches models from the Anthropic API, falling back to a
// static list when no key is set or the call fails.
func anthropicModels(apiKey string) []string {
	if apiKey == "" {
		return anthropicModelsStatic()
	}
	key := cacheKey("anthropic", apiKey)
	if cached, found := getCachedModels(key); found {
		return cached
	}

	req, err := http.NewRequest(http.MethodGet, "https://api.anthropic.com/v1/models", nil)
	if err != nil {
		return anthropicModelsStatic()
	}
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		config.DebugLog("Anthropic model listing failed, using static list: %v", err)
		return anthropicModelsStatic()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		config.DebugLog("Anthropic model listing returned %d, using static list", resp.StatusCode)
		return anthropicModelsStatic()
	}

	var response struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return anthropicModelsStatic()
	}

	var names []string
	for _, model := range response.Data {
		names = append(names, model.ID)
	}
	sort.Strings(names)

	setCachedModels(key, names)
	return names
}

func anthropicModelsStatic() []string {
	return []string{
		"claude-sonnet-4-5",
		"claude-haiku-4-5",
		"claude-opus-4-1",
		"claude-3-7-sonnet-latest",
		"claude-3-5-haiku-latest",
	}
}

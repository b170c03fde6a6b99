package discovery

import (
	"testing"
	"time"
)

func TestModelCache(t *testing.T) {
	key := cacheKey("test", "sk-1234567890abcdef")
	if key != "test_sk-12345" {
		t.Errorf("unexpected cache key: %q", key)
	}

	if _, found := getCachedModels(key); found {
		t.Error("expected cache miss for fresh key")
	}

	setCachedModels(key, []string{"model-a", "model-b"})
	models, found := getCachedModels(key)
	if !found || len(models) != 2 {
		t.Errorf("expected cache hit with 2 models, got %v found=%v", models, found)
	}

	// Expire the entry.
	cacheMutex.Lock()
	cache[key].timestamp = time.Now().Add(-2 * cacheTTL)
	cacheMutex.Unlock()
	if _, found := getCachedModels(key); found {
		t.Error("expected cache miss after TTL")
	}
}

func TestCacheKeyShortSecret(t *testing.T) {
	if got := cacheKey("google", "abc"); got != "google_abc" {
		t.Errorf("unexpected cache key for short secret: %q", got)
	}
}

func TestTrimModelPath(t *testing.T) {
	if got := trimModelPath("models/gemini-2.5-pro"); got != "gemini-2.5-pro" {
		t.Errorf("unexpected trimmed name: %q", got)
	}
	if got := trimModelPath("gemini-2.5-pro"); got != "gemini-2.5-pro" {
		t.Errorf("bare name should pass through, got %q", got)
	}
}

func TestListModelsStaticFallbacks(t *testing.T) {
	google, err := ListModels("google", "")
	if err != nil || len(google) == 0 {
		t.Errorf("expected static google list, got %v err=%v", google, err)
	}

	anthropic, err := ListModels("anthropic", "")
	if err != nil || len(anthropic) == 0 {
		t.Errorf("expected static anthropic list, got %v err=%v", anthropic, err)
	}

	if _, err := ListModels("openai", ""); err == nil {
		t.Error("expected error for openai without API key")
	}

	if _, err := ListModels("llama", "key"); err == nil {
		t.Error("expected error for unknown provider")
	}
}

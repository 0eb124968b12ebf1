package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LINGODRILL_LLM_PROVIDER", "LINGODRILL_LLM_TIMEOUT",
		"LINGODRILL_GEMINI_API_KEY", "LINGODRILL_GEMINI_MODEL",
		"LINGODRILL_OPENAI_API_KEY", "LINGODRILL_OPENAI_MODEL", "LINGODRILL_OPENAI_BASE_URL",
		"LINGODRILL_ANTHROPIC_API_KEY", "LINGODRILL_ANTHROPIC_MODEL",
		"LINGODRILL_OPENROUTER_API_KEY", "LINGODRILL_OPENROUTER_MODEL",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig_PrefersGemini(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "gemini-flash", cfg.Gemini.Model)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
}

func TestConfigFromEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("LINGODRILL_LLM_PROVIDER", "openai")
	t.Setenv("LINGODRILL_OPENAI_API_KEY", "sk-test")
	t.Setenv("LINGODRILL_OPENAI_MODEL", "gpt-4o")
	t.Setenv("LINGODRILL_LLM_TIMEOUT", "12s")

	cfg := ConfigFromEnv()
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, 12*time.Second, cfg.Timeout)
	assert.NoError(t, cfg.Validate())
}

func TestResolveConfig_FallsBackToDiscovery(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg, ok := ResolveConfig()
	require.True(t, ok)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "sk-ant", cfg.Anthropic.APIKey)
}

func TestResolveConfig_ExplicitProviderWithoutKey(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("LINGODRILL_LLM_PROVIDER", "anthropic")
	t.Setenv("GEMINI_API_KEY", "g-key")

	_, ok := ResolveConfig()
	assert.False(t, ok, "an explicit provider choice is not silently replaced")
}

func TestNewProviderFromEnv_NoCredentials(t *testing.T) {
	clearLLMEnv(t)
	_, _, err := NewProviderFromEnv(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestNewProviderFromEnv_Mock(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("LINGODRILL_LLM_PROVIDER", "mock")
	p, cfg, err := NewProviderFromEnv(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.Provider)
	assert.Equal(t, "mock", p.ModelID())
}

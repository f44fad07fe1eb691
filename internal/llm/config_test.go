package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_RetryShape(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 2, cfg.MaxRetries, "three attempts in total")
	assert.Equal(t, 1000, cfg.RetryBackoffMs)
	assert.Equal(t, 0.8, cfg.ConfidenceThreshold)
	assert.Equal(t, cfg.TimeoutMs, cfg.TaskTimeout(TaskAnswer))
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FAQBOT_LLM_ENABLED", "true")
	t.Setenv("FAQBOT_LLM_PROVIDER", "openai")
	t.Setenv("FAQBOT_LLM_MODEL", "gpt-4o-mini")
	t.Setenv("FAQBOT_LLM_TIMEOUT_MS", "9000")
	t.Setenv("FAQBOT_LLM_ANSWER_TIMEOUT_MS", "4000")
	t.Setenv("FAQBOT_LLM_RETRY_BACKOFF_MS", "0")
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 4000, cfg.TaskTimeout(TaskAnswer))
	assert.Equal(t, 0, cfg.RetryBackoffMs)
	assert.Equal(t, "sk-env", cfg.APIKey)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_ExplicitKeyWins(t *testing.T) {
	t.Setenv("FAQBOT_LLM_API_KEY", "sk-explicit")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	assert.Equal(t, "sk-explicit", LoadConfig().APIKey)
}

func TestLoadConfig_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("FAQBOT_LLM_TIMEOUT_MS", "not-a-number")
	t.Setenv("FAQBOT_LLM_CONFIDENCE_THRESHOLD", "7")

	cfg := LoadConfig()

	assert.Equal(t, DefaultConfig().TimeoutMs, cfg.TimeoutMs)
	assert.Equal(t, 0.8, cfg.ConfidenceThreshold)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate(), "disabled is always valid")

	cfg.Enabled = true
	assert.NoError(t, cfg.Validate())

	cfg.Provider = ProviderOpenAI
	assert.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)

	cfg.Provider = "other"
	assert.ErrorIs(t, cfg.Validate(), ErrUnknownProvider)
}

func TestHostPort(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "localhost:11434", cfg.HostPort())

	cfg.Provider = ProviderOpenAI
	assert.Equal(t, "api.openai.com:443", cfg.HostPort())

	cfg.Endpoint = "http://llm.internal/v1"
	assert.Equal(t, "llm.internal:80", cfg.HostPort())

	cfg.Endpoint = "::not a url"
	assert.Equal(t, "", cfg.HostPort())
}

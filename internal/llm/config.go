package llm

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	// TaskAnswer answers a user question the rule tables escalated.
	TaskAnswer TaskType = "answer"
)

// Provider selects the LLM backend.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled             bool     `yaml:"enabled"`
	LogCalls            bool     `yaml:"log_calls"`
	Provider            Provider `yaml:"provider"`
	Endpoint            string   `yaml:"endpoint"`
	Model               string   `yaml:"model"`
	APIKey              string   `yaml:"api_key"`
	TimeoutMs           int      `yaml:"timeout_ms"`
	MaxRetries          int      `yaml:"max_retries"`
	RetryBackoffMs      int      `yaml:"retry_backoff_ms"`
	ConfidenceThreshold float64  `yaml:"confidence_threshold"`

	Tasks map[TaskType]TaskConfig `yaml:"-"`
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default. Two retries after the first attempt with a
// one second linear backoff give waits of 1s then 2s.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:             false,
		LogCalls:            false,
		Provider:            ProviderOllama,
		Model:               "llama3.2",
		TimeoutMs:           15000,
		MaxRetries:          2,
		RetryBackoffMs:      1000,
		ConfidenceThreshold: 0.8,
		Tasks: map[TaskType]TaskConfig{
			TaskAnswer: {Temperature: 0.7, MaxTokens: 800},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	return cfg
}

// ApplyEnv overlays FAQBOT_LLM_* environment variables onto cfg. The
// standard OPENAI_API_KEY is honored when no explicit key is set.
func ApplyEnv(cfg *LLMConfig) {
	if v := os.Getenv("FAQBOT_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("FAQBOT_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("FAQBOT_LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(v)
	}
	if v := os.Getenv("FAQBOT_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("FAQBOT_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("FAQBOT_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	} else if v := os.Getenv("OPENAI_API_KEY"); v != "" && cfg.APIKey == "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("FAQBOT_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("FAQBOT_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("FAQBOT_LLM_RETRY_BACKOFF_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RetryBackoffMs = n
		}
	}
	if v := os.Getenv("FAQBOT_LLM_CONFIDENCE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			cfg.ConfidenceThreshold = f
		}
	}
	applyTaskTimeoutEnv(cfg, TaskAnswer, "FAQBOT_LLM_ANSWER_TIMEOUT_MS")
}

// Validate checks the provider settings. A disabled config is always valid.
func (c LLMConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	switch c.Provider {
	case ProviderOllama:
	case ProviderOpenAI:
		if c.APIKey == "" {
			return ErrMissingAPIKey
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}
	if _, err := url.Parse(c.ResolvedEndpoint()); err != nil {
		return fmt.Errorf("invalid llm endpoint: %w", err)
	}
	return nil
}

// ResolvedEndpoint returns Endpoint, or the provider default when unset.
func (c LLMConfig) ResolvedEndpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	if c.Provider == ProviderOpenAI {
		return "https://api.openai.com/v1"
	}
	return "http://localhost:11434"
}

// HostPort is the TCP address behind the endpoint, used for reachability probes.
func (c LLMConfig) HostPort() string {
	u, err := url.Parse(c.ResolvedEndpoint())
	if err != nil || u.Hostname() == "" {
		return ""
	}
	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}
	return net.JoinHostPort(u.Hostname(), port)
}

// TaskTimeout returns the effective per-attempt timeout for a task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	if cfg.Tasks == nil {
		cfg.Tasks = make(map[TaskType]TaskConfig)
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}

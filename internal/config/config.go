// Package config loads faqbot configuration: defaults, then an optional
// YAML file, then a .env file, then FAQBOT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/faqbot/internal/cache"
	"github.com/alexanderramin/faqbot/internal/llm"
	"github.com/alexanderramin/faqbot/internal/netgate"
	"github.com/alexanderramin/faqbot/internal/observability"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server    ServerConfig            `yaml:"server"`
	Log       observability.LogConfig `yaml:"log"`
	LLM       llm.LLMConfig           `yaml:"llm"`
	Probe     netgate.Config          `yaml:"probe"`
	Cache     cache.Config            `yaml:"cache"`
	Session   SessionConfig           `yaml:"session"`
	Knowledge KnowledgeConfig         `yaml:"knowledge"`
	Seed      uint64                  `yaml:"seed"` // 0 seeds from the clock
}

type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
	CORSOrigins      []string      `yaml:"cors_origins"`
	EnableMCP        bool          `yaml:"enable_mcp"`
}

type SessionConfig struct {
	IdleTTL         time.Duration `yaml:"idle_ttl"` // 0 keeps sessions forever
	JanitorInterval time.Duration `yaml:"janitor_interval"`
}

type KnowledgeConfig struct {
	Dir string `yaml:"dir"` // empty uses the embedded knowledge base
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DefaultConfig returns a config that runs fully offline: rules only, no
// LLM, in-memory cache.
func DefaultConfig() *Config {
	probe := netgate.DefaultConfig()
	// Empty means "probe whatever host the LLM endpoint points at".
	probe.Address = ""

	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8000,
			ReadTimeout:      30 * time.Second,
			WriteTimeout:     60 * time.Second,
			IdleTimeout:      120 * time.Second,
			RequestTimeout:   60 * time.Second,
			GracefulShutdown: 10 * time.Second,
			CORSOrigins:      []string{"*"},
			EnableMCP:        true,
		},
		Log:   observability.DefaultLogConfig(),
		LLM:   llm.DefaultConfig(),
		Probe: probe,
		Cache: cache.Config{
			Driver:     "memory",
			MaxEntries: 10000,
			Redis: cache.RedisConfig{
				Addr:     "localhost:6379",
				PoolSize: 10,
				Prefix:   "faqbot:",
			},
		},
		Session: SessionConfig{
			IdleTTL:         30 * time.Minute,
			JanitorInterval: 5 * time.Minute,
		},
	}
}

// Load builds the effective config. path may be empty. envFiles default to
// ".env"; missing env files are ignored.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server port %d", ErrInvalidConfig, c.Server.Port)
	}
	if !observability.ValidFormat(c.Log.Format) {
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.Log.Format)
	}
	if c.Cache.Driver != "memory" && c.Cache.Driver != "redis" {
		return fmt.Errorf("%w: cache driver %q", ErrInvalidConfig, c.Cache.Driver)
	}
	if c.Probe.Attempts < 1 {
		return fmt.Errorf("%w: probe attempts must be at least 1", ErrInvalidConfig)
	}
	if c.Probe.Timeout <= 0 || c.Probe.Threshold <= 0 {
		return fmt.Errorf("%w: probe timeout and threshold must be positive", ErrInvalidConfig)
	}
	if c.Probe.CacheTTL < 0 || c.Session.IdleTTL < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidConfig)
	}
	if t := c.LLM.ConfidenceThreshold; t < 0 || t > 1 {
		return fmt.Errorf("%w: llm confidence threshold %v", ErrInvalidConfig, t)
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ProbeAddress is the address the network gate dials: the configured one,
// else the LLM endpoint's host, else the probe default.
func (c *Config) ProbeAddress() string {
	if c.Probe.Address != "" {
		return c.Probe.Address
	}
	if c.LLM.Enabled {
		if hp := c.LLM.HostPort(); hp != "" {
			return hp
		}
	}
	return netgate.DefaultConfig().Address
}

// Write saves cfg as YAML, creating parent directories. The API key is
// never written.
func Write(path string, cfg *Config) error {
	out := *cfg
	out.LLM.APIKey = ""

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FAQBOT_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("FAQBOT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("FAQBOT_CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("FAQBOT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("FAQBOT_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("FAQBOT_PROBE_ADDRESS"); v != "" {
		cfg.Probe.Address = v
	}
	if v := os.Getenv("FAQBOT_PROBE_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Probe.CacheTTL = d
		}
	}
	if v := os.Getenv("FAQBOT_CACHE_DRIVER"); v != "" {
		cfg.Cache.Driver = v
	}
	if v := os.Getenv("FAQBOT_REDIS_ADDR"); v != "" {
		cfg.Cache.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.Driver = "redis"
		cfg.Cache.Redis.Addr = strings.TrimPrefix(v, "redis://")
	}
	if v := os.Getenv("FAQBOT_SESSION_IDLE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Session.IdleTTL = d
		}
	}
	if v := os.Getenv("FAQBOT_KNOWLEDGE_DIR"); v != "" {
		cfg.Knowledge.Dir = v
	}
	if v := os.Getenv("FAQBOT_SEED"); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Seed = seed
		}
	}

	llm.ApplyEnv(&cfg.LLM)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

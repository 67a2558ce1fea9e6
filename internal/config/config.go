package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds every tunable of the service. It is built once at
// process start and passed by reference into each component; nothing
// downstream reads the environment directly.
type Config struct {
	Environment string `koanf:"environment"`
	Port        string `koanf:"port"`

	FirecrawlAPIKey string `koanf:"firecrawl_api_key"`
	SerperAPIKey    string `koanf:"serper_api_key"`
	OpenAIAPIKey    string `koanf:"openai_api_key"`

	OpenAIModel string `koanf:"openai_model"`

	// TopN caps how many candidate URLs are considered per request.
	TopN int `koanf:"top_n"`
	// MaxConcurrency bounds simultaneous in-flight extraction calls.
	MaxConcurrency int `koanf:"max_concurrency"`
	// FirecrawlTimeoutSec is the per-URL scrape timeout in seconds.
	FirecrawlTimeoutSec int `koanf:"firecrawl_timeout"`
}

// FirecrawlTimeout returns the per-URL scrape timeout as a duration
func (c *Config) FirecrawlTimeout() time.Duration {
	return time.Duration(c.FirecrawlTimeoutSec) * time.Second
}

// defaults returns a Config populated with every non-secret default
func defaults() *Config {
	return &Config{
		Environment:         "development",
		Port:                "8080",
		OpenAIModel:         "gpt-4o-mini",
		TopN:                20,
		MaxConcurrency:      8,
		FirecrawlTimeoutSec: 30,
	}
}

// Load builds a Config by layering environment variables over defaults.
// A missing required API key is a startup error, never a request-time
// one.
func Load() (*Config, error) {
	k := koanf.New(".")

	// FIRECRAWL_API_KEY -> firecrawl_api_key, matching the koanf tags.
	provider := env.Provider("", ".", strings.ToLower)
	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := defaults()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.FirecrawlAPIKey == "" {
		missing = append(missing, "FIRECRAWL_API_KEY")
	}
	if c.SerperAPIKey == "" {
		missing = append(missing, "SERPER_API_KEY")
	}
	if c.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if c.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}
	if c.MaxConcurrency <= 0 {
		return fmt.Errorf("max_concurrency must be positive, got %d", c.MaxConcurrency)
	}
	if c.FirecrawlTimeoutSec <= 0 {
		return fmt.Errorf("firecrawl_timeout must be positive, got %d", c.FirecrawlTimeoutSec)
	}
	return nil
}

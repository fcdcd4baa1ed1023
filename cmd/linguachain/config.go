package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/sirupsen/logrus"

	"github.com/ZaguanLabs/linguachain/cache"
	"github.com/ZaguanLabs/linguachain/provider"
)

// configPathEnv names the variable consulted when --config is not given.
const configPathEnv = "LINGUACHAIN_CONFIG"

// Config is the CLI configuration.
// Priority: ENV > YAML > defaults (via env-default tags).
type Config struct {
	Providers ProvidersConfig `yaml:"providers"`
	HTTP      HTTPConfig      `yaml:"http"`
	Cache     CacheConfig     `yaml:"cache"`
	Log       LogConfig       `yaml:"log"`
}

// ProvidersConfig holds endpoints and credentials of the provider chain.
type ProvidersConfig struct {
	GoogleURL          string   `yaml:"google_url"          env:"LINGUACHAIN_GOOGLE_URL"          env-default:"https://translate.googleapis.com"`
	DisableGoogle      bool     `yaml:"disable_google"      env:"LINGUACHAIN_DISABLE_GOOGLE"      env-default:"false"`
	LibreTranslateURLs []string `yaml:"libretranslate_urls" env:"LINGUACHAIN_LIBRETRANSLATE_URLS" env-separator:","`
	LibreTranslateKey  string   `yaml:"libretranslate_key"  env:"LINGUACHAIN_LIBRETRANSLATE_KEY"`
	MyMemoryURL        string   `yaml:"mymemory_url"        env:"LINGUACHAIN_MYMEMORY_URL"        env-default:"https://api.mymemory.translated.net"`
	MyMemorySource     string   `yaml:"mymemory_source"     env:"LINGUACHAIN_MYMEMORY_SOURCE"     env-default:"en"`
	MyMemoryEmail      string   `yaml:"mymemory_email"      env:"LINGUACHAIN_MYMEMORY_EMAIL"`
	DisableMyMemory    bool     `yaml:"disable_mymemory"    env:"LINGUACHAIN_DISABLE_MYMEMORY"    env-default:"false"`
	OpenAIKey          string   `yaml:"openai_key"          env:"OPENAI_API_KEY"`
	OpenAIModel        string   `yaml:"openai_model"        env:"LINGUACHAIN_OPENAI_MODEL"        env-default:"gpt-4o-mini"`
	OpenAIBaseURL      string   `yaml:"openai_base_url"     env:"LINGUACHAIN_OPENAI_BASE_URL"`
}

// HTTPConfig bounds outbound provider calls.
type HTTPConfig struct {
	AttemptTimeout    time.Duration `yaml:"attempt_timeout"     env:"LINGUACHAIN_ATTEMPT_TIMEOUT"     env-default:"10s"`
	DialTimeout       time.Duration `yaml:"dial_timeout"        env:"LINGUACHAIN_DIAL_TIMEOUT"        env-default:"8s"`
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"LINGUACHAIN_REQUESTS_PER_MINUTE" env-default:"0"`
	BurstSize         int           `yaml:"burst_size"          env:"LINGUACHAIN_BURST_SIZE"          env-default:"0"`
	Concurrency       int           `yaml:"concurrency"         env:"LINGUACHAIN_CONCURRENCY"         env-default:"4"`
}

// CacheConfig selects the result cache.
type CacheConfig struct {
	Backend    string        `yaml:"backend"     env:"LINGUACHAIN_CACHE_BACKEND"     env-default:"none"`
	TTL        time.Duration `yaml:"ttl"         env:"LINGUACHAIN_CACHE_TTL"         env-default:"1h"`
	MaxEntries int           `yaml:"max_entries" env:"LINGUACHAIN_CACHE_MAX_ENTRIES" env-default:"10000"`
	RedisURL   string        `yaml:"redis_url"   env:"LINGUACHAIN_REDIS_URL"         env-default:"redis://localhost:6379/0"`
	KeyPrefix  string        `yaml:"key_prefix"  env:"LINGUACHAIN_CACHE_KEY_PREFIX"  env-default:"linguachain:"`
	File       string        `yaml:"file"        env:"LINGUACHAIN_CACHE_FILE"`
}

// LogConfig controls logger output.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LINGUACHAIN_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"LINGUACHAIN_LOG_FORMAT" env-default:"text"`
}

// LoadConfig reads configuration from a YAML file and environment variables.
// The path comes from --config, then LINGUACHAIN_CONFIG. A path given either
// way must exist; with no path, configuration is loaded from ENV + defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv(configPathEnv)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks the values cleanenv cannot.
func (c *Config) Validate() error {
	var errs []error

	if c.HTTP.AttemptTimeout <= 0 {
		errs = append(errs, errors.New("http.attempt_timeout must be positive"))
	}
	if c.HTTP.RequestsPerMinute < 0 {
		errs = append(errs, errors.New("http.requests_per_minute must not be negative"))
	}
	if c.HTTP.Concurrency < 1 {
		errs = append(errs, errors.New("http.concurrency must be at least 1"))
	}

	switch strings.ToLower(c.Cache.Backend) {
	case cache.BackendNone, cache.BackendMemory:
	case cache.BackendRedis:
		if strings.TrimSpace(c.Cache.RedisURL) == "" {
			errs = append(errs, errors.New("cache.redis_url is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("cache.backend %q is not one of none, memory, redis", c.Cache.Backend))
	}
	if c.Cache.File != "" && strings.EqualFold(c.Cache.Backend, cache.BackendNone) {
		errs = append(errs, errors.New("cache.file needs a memory or redis backend"))
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of text, json", c.Log.Format))
	}

	return errors.Join(errs...)
}

// ProviderConfig maps the file/env settings onto provider.Config. An empty
// LibreTranslate list keeps the public default instances.
func (c *Config) ProviderConfig() provider.Config {
	p := c.Providers

	cfg := provider.Config{
		GoogleURL:         p.GoogleURL,
		LibreTranslateKey: p.LibreTranslateKey,
		MyMemoryURL:       p.MyMemoryURL,
		MyMemorySource:    p.MyMemorySource,
		MyMemoryEmail:     p.MyMemoryEmail,
		DisableGoogle:     p.DisableGoogle,
		DisableMyMemory:   p.DisableMyMemory,
		OpenAI: provider.OpenAIConfig{
			APIKey:  p.OpenAIKey,
			Model:   p.OpenAIModel,
			BaseURL: p.OpenAIBaseURL,
		},
	}
	for _, u := range p.LibreTranslateURLs {
		if u = strings.TrimSpace(u); u != "" {
			cfg.LibreTranslateURLs = append(cfg.LibreTranslateURLs, u)
		}
	}
	return cfg
}

// CacheSettings maps the cache section onto cache.Config.
func (c *Config) CacheSettings() cache.Config {
	return cache.Config{
		Backend:    c.Cache.Backend,
		TTL:        c.Cache.TTL,
		MaxEntries: c.Cache.MaxEntries,
		RedisURL:   c.Cache.RedisURL,
		KeyPrefix:  c.Cache.KeyPrefix,
	}
}

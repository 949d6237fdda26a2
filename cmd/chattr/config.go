package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// Config holds settings that can come from a YAML file. Command line flags
// take precedence over file values.
type Config struct {
	Locales       string        `yaml:"locales"`
	DefaultLocale string        `yaml:"defaultLocale"`
	Overrides     []string      `yaml:"overrides"`
	Marker        MarkerConfig  `yaml:"marker"`
	Redis         RedisConfig   `yaml:"redis"`
	OpenAI        OpenAIConfig  `yaml:"openai"`
	Fill          FillConfig    `yaml:"fill"`
	Timeout       time.Duration `yaml:"timeout"`
}

// MarkerConfig overrides the text wrapped around unresolved keys.
type MarkerConfig struct {
	Prefix *string `yaml:"prefix"`
	Suffix *string `yaml:"suffix"`
}

// RedisConfig configures the shared dictionary cache.
type RedisConfig struct {
	URL       string        `yaml:"url"`
	TTL       time.Duration `yaml:"ttl"`
	KeyPrefix string        `yaml:"keyPrefix"`
}

// OpenAIConfig configures the provider used by -fill.
type OpenAIConfig struct {
	APIKey  string `yaml:"apiKey"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"baseURL"`
}

// FillConfig tunes the filler.
type FillConfig struct {
	BatchSize         int    `yaml:"batchSize"`
	Concurrency       int    `yaml:"concurrency"`
	RequestsPerMinute int    `yaml:"requestsPerMinute"`
	Context           string `yaml:"context"`
}

// defaultConfig returns the built-in settings.
func defaultConfig() Config {
	return Config{
		DefaultLocale: "en_us",
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Fill: FillConfig{
			BatchSize:         50,
			Concurrency:       4,
			RequestsPerMinute: 60,
		},
		Timeout: 5 * time.Minute,
	}
}

// loadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// loadEnv loads a .env file into the environment. A missing file is not an
// error. Variables already set are kept.
func loadEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// apiKey returns the configured OpenAI key, falling back to the environment.
func (c Config) apiKey() string {
	if c.OpenAI.APIKey != "" {
		return c.OpenAI.APIKey
	}
	return strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
}

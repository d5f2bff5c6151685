package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the search client configuration.
type Config struct {
	Search    SearchConfig    `yaml:"search"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Cache     CacheConfig     `yaml:"cache"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SearchConfig holds connection settings for the managed search service.
type SearchConfig struct {
	Endpoint   string `yaml:"endpoint"`
	Index      string `yaml:"index"`
	APIKey     string `yaml:"api_key"` // optional; empty falls back to delegated identity
	APIVersion string `yaml:"api_version"`

	SemanticConfiguration string `yaml:"semantic_configuration"`
	QueryLanguage         string `yaml:"query_language"`
	VectorField           string `yaml:"vector_field"`
	TimeoutSec            int    `yaml:"timeout_sec"`
}

// EmbeddingConfig holds the optional client-side embedding provider settings.
// When Model is empty, vector queries are vectorized by the service.
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// CacheConfig holds the optional Redis embedding cache settings.
type CacheConfig struct {
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
	TTLHours int      `yaml:"ttl_hours"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// Environment variable names used when no config file is present.
const (
	EnvEndpoint = "SEARCH_ENDPOINT"
	EnvIndex    = "SEARCH_INDEX"
	EnvAPIKey   = "SEARCH_API_KEY"
)

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// When no config file exists, configuration is taken from environment variables.
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return FromEnv()
		}
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// FromEnv builds configuration purely from environment variables.
func FromEnv() (Config, error) {
	cfg := Config{
		Search: SearchConfig{
			Endpoint: os.Getenv(EnvEndpoint),
			Index:    os.Getenv(EnvIndex),
			APIKey:   os.Getenv(EnvAPIKey),
		},
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Search.APIVersion == "" {
		c.Search.APIVersion = "2025-05-01-preview"
	}
	if c.Search.SemanticConfiguration == "" {
		c.Search.SemanticConfiguration = "semantic-config"
	}
	if c.Search.VectorField == "" {
		c.Search.VectorField = "text_vector"
	}
	if c.Search.QueryLanguage == "" {
		c.Search.QueryLanguage = "en-US"
	}
	if c.Search.TimeoutSec <= 0 {
		c.Search.TimeoutSec = 30
	}
	if c.Cache.TTLHours <= 0 {
		c.Cache.TTLHours = 24
	}
}

// Validate checks the configuration for correctness.
// A missing endpoint or index is the only fatal startup condition;
// a missing api key selects delegated-identity authentication.
func (c *Config) Validate() error {
	if c.Search.Endpoint == "" {
		return fmt.Errorf("search.endpoint is required (or set %s)", EnvEndpoint)
	}
	if !strings.HasPrefix(c.Search.Endpoint, "http://") && !strings.HasPrefix(c.Search.Endpoint, "https://") {
		return fmt.Errorf("search.endpoint must be an http(s) URL, got %q", c.Search.Endpoint)
	}
	if c.Search.Index == "" {
		return fmt.Errorf("search.index is required (or set %s)", EnvIndex)
	}
	if c.Embedding.Model != "" && c.Embedding.APIKey == "" {
		return fmt.Errorf("embedding.api_key is required when embedding.model is set")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}

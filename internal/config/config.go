// Package config loads and validates CBX configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete CBX configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Model   ModelConfig   `json:"model" mapstructure:"model"`
	Loader  LoaderConfig  `json:"loader" mapstructure:"loader"`
	Cache   CacheConfig   `json:"cache" mapstructure:"cache"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ModelConfig contains remote model configuration. The API key itself is
// never stored here; only the name of the environment variable that holds it.
type ModelConfig struct {
	BaseURL         string  `json:"baseUrl" mapstructure:"baseUrl"`
	APIKeyEnv       string  `json:"apiKeyEnv" mapstructure:"apiKeyEnv"`
	ChatModel       string  `json:"chatModel" mapstructure:"chatModel"`
	Temperature     float32 `json:"temperature" mapstructure:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens" mapstructure:"maxOutputTokens"`
	TimeoutSeconds  int     `json:"timeoutSeconds" mapstructure:"timeoutSeconds"`
}

// LoaderConfig contains codebase loading configuration
type LoaderConfig struct {
	MaxTokens     int      `json:"maxTokens" mapstructure:"maxTokens"`
	MaxFileTokens int      `json:"maxFileTokens" mapstructure:"maxFileTokens"`
	ReserveTokens int      `json:"reserveTokens" mapstructure:"reserveTokens"`
	SkipDirs      []string `json:"skipDirs" mapstructure:"skipDirs"`
	SkipExts      []string `json:"skipExts" mapstructure:"skipExts"`
}

// CacheConfig contains session cache configuration
type CacheConfig struct {
	TtlSeconds int `json:"ttlSeconds" mapstructure:"ttlSeconds"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Model: ModelConfig{
			BaseURL:         "https://api.openai.com/v1",
			APIKeyEnv:       "OPENAI_API_KEY",
			ChatModel:       "gpt-4o-mini",
			Temperature:     0.3,
			MaxOutputTokens: 8192,
			TimeoutSeconds:  120,
		},
		Loader: LoaderConfig{
			MaxTokens:     900000,
			MaxFileTokens: 50000,
			ReserveTokens: 2048,
			SkipDirs: []string{
				".git", ".hg", ".svn", "node_modules", "vendor", "dist",
				"build", "target", "__pycache__", ".venv", "venv", ".next",
				".nuxt", ".idea", ".vscode", "coverage", ".pytest_cache",
				".mypy_cache", "bin", "obj",
			},
			SkipExts: []string{
				".png", ".jpg", ".jpeg", ".gif", ".ico", ".svg", ".pdf",
				".zip", ".gz", ".tar", ".jar", ".class", ".exe", ".dll",
				".so", ".dylib", ".o", ".a", ".wasm", ".woff", ".woff2",
				".ttf", ".eot", ".mp3", ".mp4", ".lock",
			},
		},
		Cache: CacheConfig{
			TtlSeconds: 1800,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// Dir returns the CBX configuration directory. CBX_HOME overrides the
// default ~/.cbx.
func Dir() string {
	if dir := os.Getenv("CBX_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cbx"
	}
	return filepath.Join(home, ".cbx")
}

// Load reads configuration from <dir>/config.json, falling back to
// defaults when no config file exists.
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = Dir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to <dir>/config.json
func (c *Config) Save(dir string) error {
	if dir == "" {
		dir = Dir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Loader.MaxTokens <= 0 {
		return &ConfigError{Field: "loader.maxTokens", Message: "must be positive"}
	}
	if c.Loader.MaxFileTokens <= 0 {
		return &ConfigError{Field: "loader.maxFileTokens", Message: "must be positive"}
	}
	if c.Loader.ReserveTokens < 0 {
		return &ConfigError{Field: "loader.reserveTokens", Message: "must not be negative"}
	}
	if c.Cache.TtlSeconds <= 0 {
		return &ConfigError{Field: "cache.ttlSeconds", Message: "must be positive"}
	}
	if c.Model.Temperature < 0 || c.Model.Temperature > 2 {
		return &ConfigError{Field: "model.temperature", Message: "must be between 0 and 2"}
	}
	return nil
}

// APIKey resolves the model API key from the configured environment variable.
func (c *Config) APIKey() string {
	env := c.Model.APIKeyEnv
	if env == "" {
		env = "OPENAI_API_KEY"
	}
	return os.Getenv(env)
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in field %q: %s", e.Field, e.Message)
}

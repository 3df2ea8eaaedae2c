package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default server settings
const (
	DefaultServerHost = "0.0.0.0"
	DefaultServerPort = 8000
)

// Default model settings
const (
	// DefaultModelName is the Gemini model used for analysis
	DefaultModelName = "gemini-1.5-flash"

	// DefaultModelBaseURL is the Google AI Studio API endpoint
	DefaultModelBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModelTimeoutSeconds bounds one model round-trip
	DefaultModelTimeoutSeconds = 30

	// DefaultModelMaxConcurrent bounds in-flight model calls
	DefaultModelMaxConcurrent = 4
)

// ConfigFileName is the config file searched for in the working directory
const ConfigFileName = ".cobscan.toml"

// Config represents the main configuration structure
type Config struct {
	// Server holds HTTP API configuration
	Server ServerConfig `mapstructure:"server" toml:"server"`

	// Model holds external model (Gemini) configuration
	Model ModelConfig `mapstructure:"model" toml:"model"`

	// Output holds CLI output configuration
	Output OutputConfig `mapstructure:"output" toml:"output"`

	// Analysis holds file selection configuration
	Analysis AnalysisConfig `mapstructure:"analysis" toml:"analysis"`

	// Logging holds logging configuration
	Logging LoggingConfig `mapstructure:"logging" toml:"logging"`
}

// ServerConfig holds configuration for the HTTP API
type ServerConfig struct {
	Host string `mapstructure:"host" toml:"host"`
	Port int    `mapstructure:"port" toml:"port"`

	// AllowedOrigins lists CORS origins; ["*"] allows any origin
	AllowedOrigins []string `mapstructure:"allowed_origins" toml:"allowed_origins"`
}

// ModelConfig holds configuration for the external Gemini service
type ModelConfig struct {
	// Name is the Gemini model identifier
	Name string `mapstructure:"name" toml:"name"`

	// BaseURL is the API endpoint; overridable for testing
	BaseURL string `mapstructure:"base_url" toml:"base_url"`

	// APIKey is the credential; read from GEMINI_API_KEY when unset.
	// An empty key never blocks startup, it forces the heuristic path.
	APIKey string `mapstructure:"api_key" toml:"-"`

	// TimeoutSeconds bounds one model round-trip
	TimeoutSeconds int `mapstructure:"timeout_seconds" toml:"timeout_seconds"`

	// MaxConcurrent bounds in-flight model calls across requests
	MaxConcurrent int64 `mapstructure:"max_concurrent" toml:"max_concurrent"`
}

// OutputConfig holds configuration for CLI output
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv
	Format string `mapstructure:"format" toml:"format"`

	// SortBy specifies how to sort batch results: complexity, confidence, name
	SortBy string `mapstructure:"sort_by" toml:"sort_by"`
}

// AnalysisConfig holds file selection configuration
type AnalysisConfig struct {
	// IncludePatterns specifies file patterns to include
	IncludePatterns []string `mapstructure:"include_patterns" toml:"include_patterns"`

	// ExcludePatterns specifies file patterns to exclude
	ExcludePatterns []string `mapstructure:"exclude_patterns" toml:"exclude_patterns"`

	// Recursive controls whether to analyze directories recursively
	Recursive bool `mapstructure:"recursive" toml:"recursive"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level" toml:"level"`
}

// HasAPIKey reports whether a model credential is configured.
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.Model.APIKey) != ""
}

// Address returns the host:port the HTTP server binds to.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadConfig loads configuration from the given path, or from .cobscan.toml
// in the working directory and home directory when path is empty. A missing
// config file is not an error; defaults apply.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("COBSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The model credential follows the upstream service convention.
	_ = v.BindEnv("model.api_key", "GEMINI_API_KEY", "COBSCAN_MODEL_API_KEY")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(strings.TrimSuffix(ConfigFileName, filepath.Ext(ConfigFileName)))
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("server.host", defaults.Server.Host)
	v.SetDefault("server.port", defaults.Server.Port)
	v.SetDefault("server.allowed_origins", defaults.Server.AllowedOrigins)
	v.SetDefault("model.name", defaults.Model.Name)
	v.SetDefault("model.base_url", defaults.Model.BaseURL)
	v.SetDefault("model.timeout_seconds", defaults.Model.TimeoutSeconds)
	v.SetDefault("model.max_concurrent", defaults.Model.MaxConcurrent)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.sort_by", defaults.Output.SortBy)
	v.SetDefault("analysis.include_patterns", defaults.Analysis.IncludePatterns)
	v.SetDefault("analysis.exclude_patterns", defaults.Analysis.ExcludePatterns)
	v.SetDefault("analysis.recursive", defaults.Analysis.Recursive)
	v.SetDefault("logging.level", defaults.Logging.Level)
}

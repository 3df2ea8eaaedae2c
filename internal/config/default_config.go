package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           DefaultServerHost,
			Port:           DefaultServerPort,
			AllowedOrigins: []string{"*"},
		},
		Model: ModelConfig{
			Name:           DefaultModelName,
			BaseURL:        DefaultModelBaseURL,
			TimeoutSeconds: DefaultModelTimeoutSeconds,
			MaxConcurrent:  DefaultModelMaxConcurrent,
		},
		Output: OutputConfig{
			Format: "text",
			SortBy: "complexity",
		},
		Analysis: AnalysisConfig{
			IncludePatterns: []string{"*.cbl", "*.cob", "*.cpy"},
			ExcludePatterns: []string{},
			Recursive:       true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

const configFileHeader = `# cobscan configuration
# The model credential is read from the GEMINI_API_KEY environment variable;
# without it every analysis falls back to metrics-based classification.

`

// WriteDefaultConfig writes the default configuration as TOML to path.
// It refuses to overwrite an existing file.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	data, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	return os.WriteFile(path, append([]byte(configFileHeader), data...), 0o644)
}

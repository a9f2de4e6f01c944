package application

import (
	"os"
	"strings"
)

// RuntimeConfig holds all runtime configuration from CLI flags, environment variables, and .env file
type RuntimeConfig struct {
	// API Configuration, the API is disabled while Listen is empty
	Listen string
	APIKey string

	// Development Mode
	DevMode bool

	// Logging Configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	// Snapshot mirror database, disabled while empty
	DBPath string

	// Config file path, empty selects the embedded default
	ConfigPath string
}

// Flags carries the values given on the command line. Empty means unset.
type Flags struct {
	Listen     string
	APIKey     string
	LogLevel   string
	LogFormat  string
	LogOutput  string
	DBPath     string
	ConfigPath string
	DevMode    bool
}

// LoadRuntimeConfig loads configuration with precedence: CLI flags > env vars > .env file > defaults
func LoadRuntimeConfig(flags Flags) *RuntimeConfig {
	cfg := &RuntimeConfig{
		Listen:     getValue(flags.Listen, "SYSPROBE_LISTEN", ""),
		APIKey:     getValue(flags.APIKey, "SYSPROBE_API_KEY", ""),
		DevMode:    flags.DevMode || getBoolEnv("SYSPROBE_DEV_MODE", false),
		LogLevel:   getValue(flags.LogLevel, "SYSPROBE_LOG_LEVEL", "INFO"),
		LogFormat:  getValue(flags.LogFormat, "SYSPROBE_LOG_FORMAT", "text"),
		LogOutput:  getValue(flags.LogOutput, "SYSPROBE_LOG_OUTPUT", "stderr"),
		DBPath:     getValue(flags.DBPath, "SYSPROBE_DB_PATH", ""),
		ConfigPath: getValue(flags.ConfigPath, "SYSPROBE_CONFIG", ""),
	}

	return cfg
}

// getValue returns the first non-empty value from CLI flag, env var, or default
func getValue(cliValue, envKey, defaultValue string) string {
	if cliValue != "" {
		return cliValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolEnv gets a boolean environment variable
func getBoolEnv(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "true" || value == "1" || value == "yes" {
		return true
	}
	if value == "false" || value == "0" || value == "no" {
		return false
	}
	return defaultValue
}

// Validate checks that required configuration is present
func (c *RuntimeConfig) Validate() error {
	if c.Listen != "" && c.APIKey == "" {
		return &ConfigError{Field: "api-key", Message: "API key is required when the API is enabled (set SYSPROBE_API_KEY or use --api-key flag)"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "pdf417"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "PDF417"
)

// Loader handles loading configuration from various sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader. It uses the global viper
// instance so that cobra flag bindings are visible to it.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// Load loads configuration from files, environment variables, and
// defaults, then validates the result.
func (l *Loader) Load() (*Config, error) {
	cfg, err := l.LoadWithoutValidation()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadWithoutValidation loads configuration without running Validate.
func (l *Loader) LoadWithoutValidation() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")
	l.addConfigPaths()
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env vars apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path.
func (l *Loader) LoadFromFile(configFile string) (*Config, error) {
	l.v.SetConfigFile(configFile)
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
	}
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
		l.v.AddConfigPath(filepath.Join(home, ".config", "pdf417"))
	}
	l.v.AddConfigPath("/etc/pdf417")
}

func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()
}

func (l *Loader) setDefaults() {
	defaults := DefaultConfig()
	l.v.SetDefault("log_level", defaults.LogLevel)
	l.v.SetDefault("verbose", defaults.Verbose)
	l.v.SetDefault("decode.mode", defaults.Decode.Mode)
	l.v.SetDefault("decode.try_harder", defaults.Decode.TryHarder)
	l.v.SetDefault("generate.columns", defaults.Generate.Columns)
	l.v.SetDefault("generate.security_level", defaults.Generate.SecurityLevel)
	l.v.SetDefault("generate.envelope", defaults.Generate.Envelope)
	l.v.SetDefault("generate.issuer_id", defaults.Generate.IssuerID)
	l.v.SetDefault("generate.version", defaults.Generate.Version)
	l.v.SetDefault("render.scale", defaults.Render.Scale)
	l.v.SetDefault("render.aspect_ratio", defaults.Render.AspectRatio)
	l.v.SetDefault("render.foreground", defaults.Render.Foreground)
	l.v.SetDefault("render.background", defaults.Render.Background)
	l.v.SetDefault("server.host", defaults.Server.Host)
	l.v.SetDefault("server.port", defaults.Server.Port)
	l.v.SetDefault("server.read_timeout_sec", defaults.Server.ReadTimeoutSec)
	l.v.SetDefault("server.write_timeout_sec", defaults.Server.WriteTimeoutSec)
	l.v.SetDefault("server.max_body_bytes", defaults.Server.MaxBodyBytes)
}

// Get returns a value from the configuration.
func (l *Loader) Get(key string) interface{} { return l.v.Get(key) }

// GetString returns a string value from the configuration.
func (l *Loader) GetString(key string) string { return l.v.GetString(key) }

// Set sets a value in the configuration.
func (l *Loader) Set(key string, value interface{}) { l.v.Set(key, value) }

// GetConfigFileUsed returns the path of the config file used.
func (l *Loader) GetConfigFileUsed() string { return l.v.ConfigFileUsed() }

package config

// Config represents the complete configuration for the pdf417 tool. It
// covers all commands (decode, generate, serve) and supports loading from
// configuration files, environment variables, and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Decode settings
	Decode DecodeConfig `mapstructure:"decode" yaml:"decode" json:"decode"`

	// Symbol generation settings
	Generate GenerateConfig `mapstructure:"generate" yaml:"generate" json:"generate"`

	// Preview rendering settings
	Render RenderConfig `mapstructure:"render" yaml:"render" json:"render"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`
}

// DecodeConfig contains barcode decoding settings.
type DecodeConfig struct {
	// Mode selects the output shape: raw, simple or full.
	Mode string `mapstructure:"mode" yaml:"mode" json:"mode"`

	// TryHarder enables a more exhaustive image scan (slower).
	TryHarder bool `mapstructure:"try_harder" yaml:"try_harder" json:"try_harder"`
}

// GenerateConfig contains symbol generation settings.
type GenerateConfig struct {
	Columns       int    `mapstructure:"columns" yaml:"columns" json:"columns"`
	SecurityLevel int    `mapstructure:"security_level" yaml:"security_level" json:"security_level"`
	Envelope      bool   `mapstructure:"envelope" yaml:"envelope" json:"envelope"`
	IssuerID      string `mapstructure:"issuer_id" yaml:"issuer_id" json:"issuer_id"`
	Version       int    `mapstructure:"version" yaml:"version" json:"version"`
}

// RenderConfig contains preview rendering settings.
type RenderConfig struct {
	Scale       int     `mapstructure:"scale" yaml:"scale" json:"scale"`
	AspectRatio float64 `mapstructure:"aspect_ratio" yaml:"aspect_ratio" json:"aspect_ratio"`
	Foreground  string  `mapstructure:"foreground" yaml:"foreground" json:"foreground"`
	Background  string  `mapstructure:"background" yaml:"background" json:"background"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	ReadTimeoutSec  int    `mapstructure:"read_timeout_sec" yaml:"read_timeout_sec" json:"read_timeout_sec"`
	WriteTimeoutSec int    `mapstructure:"write_timeout_sec" yaml:"write_timeout_sec" json:"write_timeout_sec"`
	MaxBodyBytes    int64  `mapstructure:"max_body_bytes" yaml:"max_body_bytes" json:"max_body_bytes"`
}

// DefaultConfig returns a configuration with all defaults applied. The
// generation defaults (10 columns, security level 2) match the original
// tool's behavior.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Decode: DecodeConfig{
			Mode: "simple",
		},
		Generate: GenerateConfig{
			Columns:       10,
			SecurityLevel: 2,
			IssuerID:      "636000",
			Version:       9,
		},
		Render: RenderConfig{
			Scale:       3,
			AspectRatio: 3.0,
			Foreground:  "#000000",
			Background:  "#ffffff",
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			ReadTimeoutSec:  30,
			WriteTimeoutSec: 30,
			MaxBodyBytes:    1 << 20,
		},
	}
}

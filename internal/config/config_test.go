package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad decode mode", func(c *Config) { c.Decode.Mode = "verbose" }},
		{"columns too low", func(c *Config) { c.Generate.Columns = 0 }},
		{"columns too high", func(c *Config) { c.Generate.Columns = 31 }},
		{"negative security level", func(c *Config) { c.Generate.SecurityLevel = -1 }},
		{"security level too high", func(c *Config) { c.Generate.SecurityLevel = 9 }},
		{"zero scale", func(c *Config) { c.Render.Scale = 0 }},
		{"zero aspect", func(c *Config) { c.Render.AspectRatio = 0 }},
		{"bad color", func(c *Config) { c.Render.Foreground = "black" }},
		{"bad color digits", func(c *Config) { c.Render.Background = "#gggggg" }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }},
		{"envelope needs issuer", func(c *Config) { c.Generate.Envelope = true; c.Generate.IssuerID = "1" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateAcceptsBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generate.Columns = 1
	cfg.Generate.SecurityLevel = 0
	require.NoError(t, cfg.Validate())

	cfg.Generate.Columns = 30
	cfg.Generate.SecurityLevel = 8
	require.NoError(t, cfg.Validate())
}

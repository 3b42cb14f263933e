package config

import (
	"fmt"
	"strings"
)

// Valid decode modes.
const (
	ModeRaw    = "raw"
	ModeSimple = "simple"
	ModeFull   = "full"
)

// Symbol geometry and security limits mirrored from the codec.
const (
	minColumns       = 1
	maxColumns       = 30
	minSecurityLevel = 0
	maxSecurityLevel = 8
)

// Validate checks the configuration for invalid values and returns an
// error describing the first problem found.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (debug, info, warn, error)", c.LogLevel)
	}

	switch c.Decode.Mode {
	case ModeRaw, ModeSimple, ModeFull:
	default:
		return fmt.Errorf("invalid decode mode %q (raw, simple, full)", c.Decode.Mode)
	}

	if c.Generate.Columns < minColumns || c.Generate.Columns > maxColumns {
		return fmt.Errorf("columns %d out of range [%d, %d]",
			c.Generate.Columns, minColumns, maxColumns)
	}
	if c.Generate.SecurityLevel < minSecurityLevel || c.Generate.SecurityLevel > maxSecurityLevel {
		return fmt.Errorf("security_level %d out of range [%d, %d]",
			c.Generate.SecurityLevel, minSecurityLevel, maxSecurityLevel)
	}
	if c.Generate.Envelope {
		if len(c.Generate.IssuerID) != 6 {
			return fmt.Errorf("issuer_id %q must be 6 characters", c.Generate.IssuerID)
		}
		if c.Generate.Version < 0 || c.Generate.Version > 99 {
			return fmt.Errorf("version %d out of range [0, 99]", c.Generate.Version)
		}
	}

	if c.Render.Scale < 1 {
		return fmt.Errorf("scale %d must be at least 1", c.Render.Scale)
	}
	if c.Render.AspectRatio <= 0 {
		return fmt.Errorf("aspect_ratio %g must be positive", c.Render.AspectRatio)
	}
	for _, color := range []string{c.Render.Foreground, c.Render.Background} {
		if err := validateColor(color); err != nil {
			return err
		}
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("port %d out of range [1, 65535]", c.Server.Port)
	}
	if c.Server.MaxBodyBytes < 1 {
		return fmt.Errorf("max_body_bytes %d must be positive", c.Server.MaxBodyBytes)
	}
	return nil
}

func validateColor(color string) error {
	if len(color) != 7 || color[0] != '#' {
		return fmt.Errorf("invalid color %q (expected #rrggbb)", color)
	}
	for _, c := range color[1:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return fmt.Errorf("invalid color %q (expected #rrggbb)", color)
		}
	}
	return nil
}

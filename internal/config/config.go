// Package config loads the optional HCL configuration file for fairrps.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/fairrps/internal/game"
)

// Validation errors
var (
	ErrNegativeIdleTimeout = errors.New("idle timeout cannot be negative")
	ErrInvalidLogLevel     = errors.New("invalid log level")
)

// Config represents the complete fairrps configuration
type Config struct {
	Moves       []string     `hcl:"moves,optional"`
	Loop        bool         `hcl:"loop,optional"`
	IdleTimeout string       `hcl:"idle_timeout,optional"`
	Color       *bool        `hcl:"color,optional"`
	Log         *LogSettings `hcl:"log,block"`
}

// LogSettings contains diagnostic logging settings
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// Default returns the built-in configuration
func Default() *Config {
	color := true
	return &Config{
		Loop:        false,
		IdleTimeout: "0s",
		Color:       &color,
		Log: &LogSettings{
			Level: "warn",
			File:  "",
		},
	}
}

// Load loads configuration from the named HCL file. The file must exist.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(src, filename)
}

// Parse parses configuration from HCL source
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var config Config
	diags := gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	defaults := Default()
	if config.IdleTimeout == "" {
		config.IdleTimeout = defaults.IdleTimeout
	}
	if config.Color == nil {
		config.Color = defaults.Color
	}
	if config.Log == nil {
		config.Log = defaults.Log
	}
	if config.Log.Level == "" {
		config.Log.Level = defaults.Log.Level
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Moves) > 0 {
		if err := game.ValidateNames(c.Moves); err != nil {
			return fmt.Errorf("moves: %w", err)
		}
	}

	timeout, err := c.IdleTimeoutDuration()
	if err != nil {
		return err
	}
	if timeout < 0 {
		return ErrNegativeIdleTimeout
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("%w: %s", ErrInvalidLogLevel, c.Log.Level)
	}

	return nil
}

// IdleTimeoutDuration parses the idle timeout. An empty value means no timeout.
func (c *Config) IdleTimeoutDuration() (time.Duration, error) {
	if c.IdleTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.IdleTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid idle timeout %q: %w", c.IdleTimeout, err)
	}
	return d, nil
}

// ColorEnabled reports whether styled output is wanted
func (c *Config) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}

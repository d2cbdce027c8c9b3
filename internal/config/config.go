// Package config loads the replay viewer configuration from an HCL file.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete viewer configuration
type Config struct {
	Replay ReplaySettings `hcl:"replay,block"`
}

// ReplaySettings controls playback behavior
type ReplaySettings struct {
	AutoplayIntervalMS int    `hcl:"autoplay_interval_ms,optional"`
	StartAtEnd         bool   `hcl:"start_at_end,optional"`
	HistoryDir         string `hcl:"history_dir,optional"`
	PlainCards         bool   `hcl:"plain_cards,optional"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Replay: ReplaySettings{
			AutoplayIntervalMS: 1200,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; a file that exists but fails to parse is an error.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if cfg.Replay.AutoplayIntervalMS <= 0 {
		cfg.Replay.AutoplayIntervalMS = Default().Replay.AutoplayIntervalMS
	}
	return &cfg, nil
}

// Validate checks the configuration for usable values
func (c *Config) Validate() error {
	if c.Replay.AutoplayIntervalMS < 100 {
		return fmt.Errorf("autoplay_interval_ms too small: %d", c.Replay.AutoplayIntervalMS)
	}
	return nil
}

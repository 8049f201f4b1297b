package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent standup configuration stored as
// config.toml in the .standup/ directory. The TOML layout uses sections for
// logical grouping.
//
// Credentials never live here. ANTHROPIC_API_KEY and GEOCODING_API_KEY are
// read from the environment at startup and are not written to disk.
type Config struct {
	Version int           `toml:"version"`
	Model   ModelConfig   `toml:"model"`
	Session SessionConfig `toml:"session"`
	Publish PublishConfig `toml:"publish"`
	Geocode GeocodeConfig `toml:"geocode"`
}

// ModelConfig holds completion backend settings.
type ModelConfig struct {
	Name      string `toml:"name,omitempty"`
	MaxTokens uint   `toml:"max_tokens,omitempty"`
}

// SessionConfig holds orchestration session settings.
type SessionConfig struct {
	MaxRounds uint `toml:"max_rounds,omitempty"`
}

// PublishConfig holds settings for publishing the approved artifact.
type PublishConfig struct {
	Branch       string `toml:"branch,omitempty"`
	ArtifactPath string `toml:"artifact_path,omitempty"`
}

// GeocodeConfig holds geocoding plugin settings.
type GeocodeConfig struct {
	BaseURL string `toml:"base_url,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"model.name": {
		get: func(c *Config) string { return c.Model.Name },
		set: func(c *Config, v string) error { c.Model.Name = v; return nil },
	},
	"model.max_tokens": {
		get: func(c *Config) string {
			if c.Model.MaxTokens == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Model.MaxTokens), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for model.max_tokens: %w", err)
			}
			c.Model.MaxTokens = uint(n)
			return nil
		},
	},
	"session.max_rounds": {
		get: func(c *Config) string {
			if c.Session.MaxRounds == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Session.MaxRounds), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for session.max_rounds: %w", err)
			}
			c.Session.MaxRounds = uint(n)
			return nil
		},
	},
	"publish.branch": {
		get: func(c *Config) string { return c.Publish.Branch },
		set: func(c *Config, v string) error { c.Publish.Branch = v; return nil },
	},
	"publish.artifact_path": {
		get: func(c *Config) string { return c.Publish.ArtifactPath },
		set: func(c *Config, v string) error { c.Publish.ArtifactPath = v; return nil },
	},
	"geocode.base_url": {
		get: func(c *Config) string { return c.Geocode.BaseURL },
		set: func(c *Config, v string) error { c.Geocode.BaseURL = v; return nil },
	},
}

// Package config loads tweetvault settings from an optional YAML file
// with environment variable overrides. Precedence, lowest to highest:
// built-in defaults, config file, environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the CLI, HTTP server and MCP server.
// The Anthropic API key is deliberately not a file field; it is read from
// ANTHROPIC_API_KEY only.
type Config struct {
	DBPath         string `yaml:"db"`
	Addr           string `yaml:"addr"`
	PageSize       int    `yaml:"page_size"`
	AnthropicModel string `yaml:"anthropic_model"`
	AnthropicKey   string `yaml:"-"`
}

// Default returns the built-in configuration. DBPath is left empty so the
// caller can resolve the platform default data directory.
func Default() Config {
	return Config{
		Addr:     "127.0.0.1:8080",
		PageSize: 50,
	}
}

// DefaultPath returns the conventional config file location in the user's
// home directory, or "" when the home directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tweetvault.yaml")
}

// Load reads the configuration. With path == "" the default location is
// tried and a missing file is not an error; an explicitly given path must
// exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
			// No config file is fine; defaults apply.
		default:
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if cfg.PageSize < 1 || cfg.PageSize > 200 {
		cfg.PageSize = Default().PageSize
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TWEETVAULT_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("TWEETVAULT_ADDR"); v != "" {
		c.Addr = v
	}
	c.AnthropicKey = os.Getenv("ANTHROPIC_API_KEY")
}

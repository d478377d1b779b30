// Package config loads procfs CLI settings from defaults, an optional TOML
// file and PROCFS_* environment variables, in that order. Command line flags
// are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const (
	DefaultRoot    = "/proc"
	DefaultMaxRead = 1 << 16
)

type Config struct {
	// Root is where procfs is mounted, or a fixture tree.
	Root string `toml:"root" env:"PROCFS_ROOT"`
	// MaxReadBytes bounds whole-file reads such as stat and cmdline.
	MaxReadBytes int  `toml:"max_read_bytes" env:"PROCFS_MAX_READ"`
	Color        bool `toml:"color" env:"PROCFS_COLOR"`
	Debug        bool `toml:"debug" env:"PROCFS_DEBUG"`
}

func Default() *Config {
	return &Config{
		Root:         DefaultRoot,
		MaxReadBytes: DefaultMaxRead,
		Color:        true,
	}
}

// Load builds a Config. An empty path skips the file. Unknown keys in the
// file are an error so typos don't go unnoticed.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("error decoding %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("unknown fields in %s: %s", path, strings.Join(keys, ", "))
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Root == "" {
		errs = append(errs, errors.New("root must not be empty"))
	}
	if c.MaxReadBytes <= 0 {
		errs = append(errs, fmt.Errorf("max_read_bytes must be positive, got %d", c.MaxReadBytes))
	}
	return errors.Join(errs...)
}

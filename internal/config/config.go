// Package config reads and writes the repository's small TOML
// configuration file. Atomic writes follow the same temp-file-then-
// rename pattern used throughout the engine, grounded on
// antgroup-hugescm's modules/zeta/config atomic encoder.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the handful of repository-wide settings the engine
// consults outside of the object/ref stores themselves.
type Config struct {
	DefaultBranch string `toml:"default_branch"`
	DigestLabel   string `toml:"digest_label"`
	Verbose       bool   `toml:"verbose"`
}

// Default returns the configuration `init` writes for a freshly created
// repository: a "master" default branch (SPEC_FULL.md §6), labeled with
// the digest algorithm in use, and non-verbose logging.
func Default() *Config {
	return &Config{
		DefaultBranch: "master",
		DigestLabel:   "sha1cd",
		Verbose:       false,
	}
}

// Load reads and decodes the TOML config file at path.
func Load(path string) (*Config, error) {
	var c Config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return &c, nil
}

// Save atomically writes c as TOML to path.
func Save(path string, c *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("config: rename into %s: %w", path, err)
	}
	return nil
}

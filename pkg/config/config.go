// Package config handles configuration loading for heldback.
// It supports a YAML-based configuration file (.heldback.yml) declaring
// registry source paths, the standard-library module set, discovery
// settings, and output preferences.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/heldback/pkg/errors"
	"github.com/ajxudir/heldback/pkg/verbose"
)

// DefaultFileName is the config file looked up in the working directory
// when no explicit path is given.
const DefaultFileName = ".heldback.yml"

// DiscoveryCfg configures the source-hosting discovery command.
//
// Fields:
//   - Suffix: Repository naming-convention suffix packages must carry
//   - Host: Base URL of the source-hosting REST API
type DiscoveryCfg struct {
	Suffix string `yaml:"suffix"`
	Host   string `yaml:"host"`
}

// Config is the loaded heldback configuration.
//
// Fields:
//   - Registries: Registry source directories, in precedence order
//   - Stdlib: Standard-library module names; replaces the built-in set
//     when non-empty
//   - Discovery: Discovery command settings
//   - Color: Output color mode ("auto", "always", or "never")
type Config struct {
	Registries []string     `yaml:"registries"`
	Stdlib     []string     `yaml:"stdlib"`
	Discovery  DiscoveryCfg `yaml:"discovery"`
	Color      string       `yaml:"color"`
}

// Load reads configuration from the specified path or defaults.
//
// If configPath is provided, that file must exist and parse. Otherwise
// .heldback.yml in the working directory is used when present, and the
// built-in defaults when not.
//
// Parameters:
//   - configPath: Explicit config file path, or empty for discovery
//   - workDir: Working directory to look up the default file in
//
// Returns:
//   - *Config: The loaded configuration with defaults applied
//   - error: When an explicit config is missing or any config is malformed
func Load(configPath, workDir string) (*Config, error) {
	cfg := defaultConfig()

	path := configPath
	if path == "" {
		candidate := filepath.Join(workDir, DefaultFileName)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}

	if path == "" {
		verbose.Info("Using built-in default configuration")
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewStructuralError(path, "unreadable config file", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewStructuralError(path, "malformed config file", err)
	}

	applyDefaults(cfg)
	verbose.Infof("Config loaded: %s", path)

	return cfg, nil
}

// defaultConfig returns the built-in configuration.
func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills unset fields with built-in values.
func applyDefaults(cfg *Config) {
	if cfg.Discovery.Suffix == "" {
		cfg.Discovery.Suffix = ".jl"
	}
	if cfg.Discovery.Host == "" {
		cfg.Discovery.Host = "https://api.github.com"
	}
	if cfg.Color == "" {
		cfg.Color = "auto"
	}
}

// StdlibSet returns the effective standard-library module set.
//
// The configured list replaces the built-in defaults when non-empty.
//
// Returns:
//   - map[string]struct{}: Module names excluded from held-back analysis
func (c *Config) StdlibSet() map[string]struct{} {
	names := c.Stdlib
	if len(names) == 0 {
		names = defaultStdlib
	}

	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}

	return set
}

// defaultStdlib lists the module names shipped with the language
// distribution. These are never registry packages and cannot be held
// back.
var defaultStdlib = []string{
	"Artifacts",
	"Base64",
	"CRC32c",
	"Dates",
	"DelimitedFiles",
	"Distributed",
	"Downloads",
	"FileWatching",
	"Future",
	"InteractiveUtils",
	"LazyArtifacts",
	"LibCURL",
	"LibGit2",
	"Libdl",
	"LinearAlgebra",
	"Logging",
	"Markdown",
	"Mmap",
	"NetworkOptions",
	"Pkg",
	"Printf",
	"Profile",
	"REPL",
	"Random",
	"SHA",
	"Serialization",
	"SharedArrays",
	"Sockets",
	"SparseArrays",
	"Statistics",
	"SuiteSparse",
	"TOML",
	"Tar",
	"Test",
	"UUIDs",
	"Unicode",
}

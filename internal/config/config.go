// Package config handles wit CLI configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvAccessToken is consulted when no token is configured in the YAML
// file, so the CLI works with just an exported variable.
const EnvAccessToken = "WIT_ACCESS_TOKEN"

// Config holds all wit CLI configuration.
type Config struct {
	// AccessToken is the server access token for the Wit app.
	AccessToken string `yaml:"access_token"`
	// APIHost overrides the API base URL (proxies, test servers).
	APIHost string `yaml:"api_host"`
	// APIVersion overrides the API contract version.
	APIVersion string `yaml:"api_version"`
	// LogLevel is one of trace, debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// HistoryDB is the SQLite file the interactive REPL records
	// transcripts to. Empty disables recording.
	HistoryDB string `yaml:"history_db"`
}

// DefaultSearchPaths returns the config file search order. An explicit
// path (from the -config flag) is checked first by FindConfig; then:
// ./wit.yaml, ~/.config/wit/config.yaml, /etc/wit/config.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"wit.yaml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "wit", "config.yaml"))
	}

	paths = append(paths, "/etc/wit/config.yaml")
	return paths
}

// FindConfig locates a config file. If explicit is non-empty, it must
// exist. Otherwise, searches DefaultSearchPaths and returns the first
// that exists.
func FindConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range DefaultSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no config file found (searched: %v)", DefaultSearchPaths())
}

// Load reads and parses a YAML config file. Environment variables in
// the file are expanded, so tokens can stay out of the file itself
// (access_token: ${WIT_ACCESS_TOKEN}).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

// Default returns a configuration with no token and all library
// defaults in effect.
func Default() *Config {
	cfg := &Config{LogLevel: "info"}
	cfg.applyEnv()
	return cfg
}

// applyEnv fills the token from the environment when the file supplied
// none.
func (c *Config) applyEnv() {
	if c.AccessToken == "" {
		c.AccessToken = os.Getenv(EnvAccessToken)
	}
}

// Validate reports configuration the CLI cannot run with.
func (c *Config) Validate() error {
	if c.AccessToken == "" {
		return fmt.Errorf("no access token (set access_token in the config file or export %s)", EnvAccessToken)
	}
	return nil
}

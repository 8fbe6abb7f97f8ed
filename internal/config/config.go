// Package config handles reading and writing .mirrorplan/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for .mirrorplan/config.yaml.
type Config struct {
	Version   int             `yaml:"version"`
	Output    OutputConfig    `yaml:"output"`
	Documents DocumentsConfig `yaml:"documents"`
	History   HistoryConfig   `yaml:"history"`
	Log       LogConfig       `yaml:"log"`
}

// OutputConfig controls how recommendations are printed.
type OutputConfig struct {
	Format string `yaml:"format"` // "text" | "markdown" | "yaml"
}

// DocumentsConfig locates the saved configuration documents.
type DocumentsConfig struct {
	Dir string `yaml:"dir"` // relative to the project root
}

// HistoryConfig controls the recommendation history database.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // relative to the project root
}

// LogConfig controls the JSONL event log.
type LogConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Output formats.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatYAML     = "yaml"
)

// Dir is the project-local state directory.
const Dir = ".mirrorplan"

const configFile = "config.yaml"

// ReadConfig reads .mirrorplan/config.yaml from the given project directory.
// dir is the project root (not .mirrorplan/ itself).
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, Dir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// WriteConfig writes cfg to .mirrorplan/config.yaml in the given project
// directory. Creates the .mirrorplan/ directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	dirPath := filepath.Join(dir, Dir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dirPath, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Load reads the project config, falling back to defaults when no config
// file exists, then applies environment overrides and validates.
func Load(dir string) (*Config, error) {
	cfg, err := ReadConfig(dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = DefaultConfig()
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Output: OutputConfig{
			Format: FormatText,
		},
		Documents: DocumentsConfig{
			Dir: filepath.Join(Dir, "configs"),
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(Dir, "history.db"),
		},
		Log: LogConfig{
			Enabled: true,
		},
	}
}

// ApplyEnv overrides fields from MIRRORPLAN_* environment variables.
// Unparseable values are ignored.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv("MIRRORPLAN_OUTPUT_FORMAT"); ok && v != "" {
		c.Output.Format = strings.ToLower(strings.TrimSpace(v))
	}
	c.History.Enabled = getEnvBool("MIRRORPLAN_HISTORY_ENABLED", c.History.Enabled)
	c.Log.Enabled = getEnvBool("MIRRORPLAN_LOG_ENABLED", c.Log.Enabled)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatText, FormatMarkdown, FormatYAML:
	default:
		return fmt.Errorf("output.format must be one of text, markdown, yaml; got %q", c.Output.Format)
	}
	if c.Documents.Dir == "" {
		return fmt.Errorf("documents.dir cannot be empty")
	}
	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path cannot be empty when history is enabled")
	}
	return nil
}

// Resolve joins a config-relative path onto the project root. Absolute
// paths are returned unchanged.
func Resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

// ABOUTME: Configuration management for wordsim with YAML config loading.
// ABOUTME: Handles embedding/output paths, search threshold, logging, and ~ expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/2389-research/wordsim/internal/embeddings"
)

// Default paths match the layout of the reference data set.
const (
	DefaultEmbeddingsPath = "./word-embeddings.txt"
	DefaultOutputPath     = "./out.txt"
)

// Config stores wordsim configuration loaded from ~/.config/wordsim/config.yaml.
type Config struct {
	Embeddings EmbeddingsConfig `yaml:"embeddings"`
	Search     SearchConfig     `yaml:"search"`
	Output     OutputConfig     `yaml:"output"`
	Log        LogConfig        `yaml:"log"`
}

// EmbeddingsConfig locates the embedding table and its vector length.
type EmbeddingsConfig struct {
	Path      string `yaml:"path"`
	Dimension int    `yaml:"dimension"`
}

// SearchConfig holds similarity search settings.
type SearchConfig struct {
	Threshold float64 `yaml:"threshold"`
}

// OutputConfig locates the report file.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// LogConfig selects log verbosity and handler format ("text" or "json").
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Embeddings: EmbeddingsConfig{
			Path:      DefaultEmbeddingsPath,
			Dimension: embeddings.DefaultDimension,
		},
		Search: SearchConfig{Threshold: embeddings.DefaultThreshold},
		Output: OutputConfig{Path: DefaultOutputPath},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Validate checks that the configuration can drive a search.
func (c *Config) Validate() error {
	if c.Embeddings.Dimension < 1 {
		return fmt.Errorf("embeddings.dimension must be positive, got %d", c.Embeddings.Dimension)
	}
	if c.Search.Threshold < -1 || c.Search.Threshold > 1 {
		return fmt.Errorf("search.threshold must be within [-1, 1], got %g", c.Search.Threshold)
	}
	if c.Embeddings.Path == "" {
		return fmt.Errorf("embeddings.path is required")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path is required")
	}
	return nil
}

// GetEmbeddingsPath returns the embedding file path with ~ expanded.
func (c *Config) GetEmbeddingsPath() (string, error) {
	return ExpandPath(c.Embeddings.Path)
}

// GetOutputPath returns the report file path with ~ expanded.
func (c *Config) GetOutputPath() (string, error) {
	return ExpandPath(c.Output.Path)
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "wordsim", "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads config from disk. Returns default config if file doesn't exist.
// Fields missing from the file keep their defaults.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

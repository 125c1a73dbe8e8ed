// Package config provides configuration loading and management for specdriver.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete specdriver configuration.
// Artifact filenames (requirements.md, plan.md, tasks.md) are fixed by the
// artifact package and deliberately not configurable here.
type Config struct {
	Specs  SpecsConfig  `yaml:"specs"`
	Skills SkillsConfig `yaml:"skills"`
	Log    LogConfig    `yaml:"log"`
}

// SpecsConfig configures where spec artifact sets live.
type SpecsConfig struct {
	// Root is the directory scanned by discovery (validate --all).
	Root string `yaml:"root"`
}

// SkillsConfig configures the skills collection the alignment check reads.
type SkillsConfig struct {
	// TemplatesPath is the generator templates document compared against
	// the validator's rule table.
	TemplatesPath string `yaml:"templates_path"`
}

// LogConfig configures logging output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Specs: SpecsConfig{
			Root: "specs",
		},
		Skills: SkillsConfig{
			TemplatesPath: filepath.Join("skills", "spec-driven-dev", "references", "templates.md"),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Specs.Root == "" {
		return fmt.Errorf("specs.root is required")
	}
	if c.Skills.TemplatesPath == "" {
		return fmt.Errorf("skills.templates_path is required")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Specs.Root != "" {
		c.Specs.Root = other.Specs.Root
	}
	if other.Skills.TemplatesPath != "" {
		c.Skills.TemplatesPath = other.Skills.TemplatesPath
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}

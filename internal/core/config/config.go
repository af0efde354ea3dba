// Package config handles configuration loading and validation for todoadd.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/todoadd/internal/core/deadline"
	"github.com/hay-kot/todoadd/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	// DeadlineFormat is the strftime pattern of the deadline metadata value.
	DeadlineFormat string `yaml:"deadline_format"`
	// AddDue also writes due:YYYY-MM-DD when a deadline is set.
	AddDue bool `yaml:"add_due"`
	// BackupSuffix is appended to the todo file path for the backup copy.
	BackupSuffix string `yaml:"backup_suffix"`
	// DoneFile is the file name of completed tasks, next to the todo file.
	DoneFile string `yaml:"done_file"`
	// SearchPaths are searched after the default locations when no file
	// argument is given.
	SearchPaths []string `yaml:"search_paths"`
	// Suggestions caps the number of tag suggestions; 0 means unlimited.
	Suggestions int `yaml:"suggestions"`
	// DefaultTags pre-fills the project tags question, e.g. "+inbox".
	DefaultTags string `yaml:"default_tags"`
	// Theme names the colour palette.
	Theme string `yaml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DeadlineFormat: deadline.DefaultFormat,
		BackupSuffix:   ".bak",
		DoneFile:       "done.txt",
		Suggestions:    8,
		Theme:          styles.DefaultTheme,
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.DeadlineFormat == "" {
		c.DeadlineFormat = defaults.DeadlineFormat
	}
	if c.BackupSuffix == "" {
		c.BackupSuffix = defaults.BackupSuffix
	}
	if c.DoneFile == "" {
		c.DoneFile = defaults.DoneFile
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
}

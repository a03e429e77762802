// Package config holds runtime configuration: defaults, the optional YAML
// settings file, CLI flag parsing, and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ColorMode controls ANSI color output of the log.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultRootName is the folder created under the working directory when no
// root is configured.
const DefaultRootName = "main"

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then the settings file ([Load]), then [ParseFlags].
type Config struct {
	// Root scope.
	RootDir   string `yaml:"root"`  // Default: "<cwd>/main".
	RootLabel string `yaml:"label"` // Default: base name of RootDir.

	// Card view.
	Columns    int  `yaml:"columns"`     // Default: 4.
	Recursive  bool `yaml:"recursive"`   // Show every file below current dir.
	StartIndex int  `yaml:"start_index"` // Default: 1. First number of a batch.
	Watch      bool `yaml:"watch"`       // Default: true. Refresh on filesystem changes.

	// Batch rename.
	UndoLog bool   `yaml:"undo_log"` // Default: true. Write an undo CSV per batch.
	UndoDir string `yaml:"undo_dir"` // Default: "<parent of root>/.filecards-undo".

	// Display and logging.
	Verbose   bool      `yaml:"verbose"`
	ColorMode ColorMode `yaml:"color"`    // Default: "auto".
	LogFile   string    `yaml:"log_file"` // Optional log file path.

	// Path of the settings file that was loaded, if any.
	ConfigFile string `yaml:"-"`
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() Config {
	root := DefaultRootName
	if wd, err := os.Getwd(); err == nil {
		root = filepath.Join(wd, DefaultRootName)
	}
	return Config{
		RootDir:    root,
		Columns:    4,
		StartIndex: 1,
		Watch:      true,
		UndoLog:    true,
		ColorMode:  ColorAuto,
	}
}

// Load reads the YAML settings file at path over cfg. Keys not present in
// the file keep their current value. A missing file is not an error when
// optional is true.
func Load(cfg *Config, path string, optional bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.ConfigFile = path
	return nil
}

// Save writes cfg as YAML to path.
func Save(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks enum fields and ranges and normalizes the root path.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}
	if c.Columns < 1 || c.Columns > 12 {
		return fmt.Errorf("invalid columns %d (use 1-12)", c.Columns)
	}
	if c.StartIndex < 0 {
		return fmt.Errorf("invalid start index %d (must not be negative)", c.StartIndex)
	}
	c.RootDir = NormalizeDirArg(strings.TrimSpace(c.RootDir))
	if c.RootDir == "" {
		return errors.New("root directory must not be empty")
	}
	return nil
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// UndoPath returns the directory undo logs are written to. Logs never go
// inside the root so they do not show up as cards.
func (c *Config) UndoPath() string {
	if c.UndoDir != "" {
		return c.UndoDir
	}
	return filepath.Join(filepath.Dir(c.RootDir), ".filecards-undo")
}

// Package config holds runtime configuration: defaults, the optional YAML
// config file, CLI flag binding, and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stderr is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// OutputFormat selects how `read` renders a descriptor.
type OutputFormat string

const (
	OutputText OutputFormat = "text" // Styled, human-readable (default).
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then by [LoadFile], then by explicitly set CLI flags, before being passed
// (by pointer) to packages that need it.
type Config struct {
	// External tools. A bare name is resolved through PATH.
	FFprobePath string `yaml:"ffprobe"` // Default: "ffprobe".
	FFmpegPath  string `yaml:"ffmpeg"`  // Default: "ffmpeg".

	// Timeout bounds a single tool invocation. Zero disables the bound.
	Timeout time.Duration `yaml:"timeout"` // Default: 2m.

	// TempDir is the scratch directory for write operations.
	// Empty means os.TempDir().
	TempDir string `yaml:"temp_dir"`

	// Display and logging.
	Verbose   bool      `yaml:"verbose"`
	ColorMode ColorMode `yaml:"color"`    // Default: "auto".
	LogFile   string    `yaml:"log_file"` // Optional log file path.

	// Output is the `read` rendering; not read from the config file.
	Output OutputFormat `yaml:"-"`

	// ConfigFile is the file the settings were loaded from, if any.
	ConfigFile string `yaml:"-"`
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() Config {
	return Config{
		FFprobePath: "ffprobe",
		FFmpegPath:  "ffmpeg",
		Timeout:     2 * time.Minute,
		ColorMode:   ColorAuto,
		Output:      OutputText,
	}
}

// ScratchDir returns the directory temporary files are created in.
func (c *Config) ScratchDir() string {
	if c.TempDir != "" {
		return c.TempDir
	}
	return os.TempDir()
}

// Validate checks enum fields and tool paths, normalizing case where the
// user is allowed to be sloppy.
func (c *Config) Validate() error {
	c.ColorMode = ColorMode(strings.ToLower(string(c.ColorMode)))
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	c.Output = OutputFormat(strings.ToLower(string(c.Output)))
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
		// valid
	default:
		return fmt.Errorf("invalid output format %q (use 'text', 'json' or 'yaml')", c.Output)
	}

	if strings.TrimSpace(c.FFprobePath) == "" {
		return errors.New("ffprobe path must not be empty")
	}
	if strings.TrimSpace(c.FFmpegPath) == "" {
		return errors.New("ffmpeg path must not be empty")
	}
	if c.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	if c.TempDir != "" {
		fi, err := os.Stat(c.TempDir)
		if err != nil {
			return fmt.Errorf("temp dir: %w", err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("temp dir %q is not a directory", c.TempDir)
		}
	}
	return nil
}

package config

// This file binds the global CLI flags. Flags are registered into a
// separate Overrides struct and applied after the config file is loaded, so
// a file value holds unless the user actually passes the flag.

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Overrides holds raw flag values until they are applied to a Config.
type Overrides struct {
	configFile  string
	ffprobe     string
	ffmpeg      string
	timeout     time.Duration
	tempDir     string
	verbose     bool
	logFile     string
	forceColor  bool
	noColor     bool
	output      string
	flags       *pflag.FlagSet
	outputFlags *pflag.FlagSet
}

// DefineFlags registers the persistent flags on fs and returns the holder
// that [Overrides.Apply] later reads from.
func DefineFlags(fs *pflag.FlagSet) *Overrides {
	d := DefaultConfig()
	o := &Overrides{flags: fs}
	fs.StringVar(&o.configFile, "config", "", "Config file (default: $XDG_CONFIG_HOME/mediatag/config.yml)")
	fs.StringVar(&o.ffprobe, "ffprobe", d.FFprobePath, "ffprobe executable")
	fs.StringVar(&o.ffmpeg, "ffmpeg", d.FFmpegPath, "ffmpeg executable")
	fs.DurationVar(&o.timeout, "timeout", d.Timeout, "Per-invocation tool timeout (0 disables)")
	fs.StringVar(&o.tempDir, "temp-dir", "", "Scratch directory for write operations")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Verbose output")
	fs.StringVarP(&o.logFile, "log", "l", "", "Append logs to file")
	fs.BoolVar(&o.forceColor, "color", false, "Force colored output")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored output")
	return o
}

// DefineOutputFlag registers -o/--output on a command-local flag set.
func (o *Overrides) DefineOutputFlag(fs *pflag.FlagSet) {
	o.outputFlags = fs
	fs.StringVarP(&o.output, "output", "o", string(OutputText), "Output format: text | json | yaml")
}

// ConfigPath returns the --config value and whether it was set.
func (o *Overrides) ConfigPath() (string, bool) {
	return o.configFile, o.flags.Changed("config")
}

// Apply copies every explicitly set flag into cfg.
func (o *Overrides) Apply(cfg *Config) error {
	if o.flags.Changed("ffprobe") {
		cfg.FFprobePath = o.ffprobe
	}
	if o.flags.Changed("ffmpeg") {
		cfg.FFmpegPath = o.ffmpeg
	}
	if o.flags.Changed("timeout") {
		cfg.Timeout = o.timeout
	}
	if o.flags.Changed("temp-dir") {
		cfg.TempDir = o.tempDir
	}
	if o.flags.Changed("verbose") {
		cfg.Verbose = o.verbose
	}
	if o.flags.Changed("log") {
		cfg.LogFile = o.logFile
	}
	if o.forceColor && o.noColor {
		return fmt.Errorf("--color and --no-color are mutually exclusive")
	}
	if o.noColor {
		cfg.ColorMode = ColorNever
	} else if o.forceColor {
		cfg.ColorMode = ColorAlways
	}
	if o.outputFlags != nil && o.outputFlags.Changed("output") {
		cfg.Output = OutputFormat(strings.ToLower(o.output))
	}
	return nil
}

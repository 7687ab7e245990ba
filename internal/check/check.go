// Package check provides system diagnostics (the check command) and the
// pre-command dependency validation (CheckDeps) for ffprobe and ffmpeg.
package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/backmassage/mediatag/internal/config"
	"github.com/backmassage/mediatag/internal/ffmpeg"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFFmpegNotFound  = errors.New("ffmpeg not found")
	ErrFFprobeNotFound = errors.New("ffprobe not found")
)

// versionTimeout bounds each -version call made by RunCheck.
const versionTimeout = 10 * time.Second

// Logger is the minimal logging interface needed by RunCheck.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// CheckDeps verifies that both configured tools can be resolved. It runs
// nothing; a broken binary surfaces as a probe or mux failure later.
func CheckDeps(cfg *config.Config) error {
	if !tool("ffprobe", cfg.FFprobePath).Available() {
		return fmt.Errorf("%w (%s)", ErrFFprobeNotFound, cfg.FFprobePath)
	}
	if !tool("ffmpeg", cfg.FFmpegPath).Available() {
		return fmt.Errorf("%w (%s)", ErrFFmpegNotFound, cfg.FFmpegPath)
	}
	return nil
}

// RunCheck prints the version of each tool and verifies the scratch
// directory accepts new files. It returns false if anything failed.
func RunCheck(ctx context.Context, cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkTool(ctx, tool("ffprobe", cfg.FFprobePath), log)
	ok = checkTool(ctx, tool("ffmpeg", cfg.FFmpegPath), log) && ok
	ok = checkScratch(cfg.ScratchDir(), log) && ok

	if cfg.ConfigFile != "" {
		log.Info("Config: %s", cfg.ConfigFile)
	}
	return ok
}

// checkTool resolves t and logs the first line of its -version output.
func checkTool(ctx context.Context, t ffmpeg.Tool, log Logger) bool {
	if !t.Available() {
		log.Error("%s not found (%s)", t.Name, t.Path)
		return false
	}
	res, err := t.Run(ctx, "-hide_banner", "-version")
	if res != nil {
		log.Debug("%s (exit %d)", res.CommandLine(), res.ExitCode)
	}
	if err != nil {
		log.Warn("%s found but -version failed: %v", t.Name, err)
		return false
	}
	log.Success("%s: %s", t.Name, firstLine(string(res.Stdout)))
	return true
}

// checkScratch creates and removes a probe file in dir.
func checkScratch(dir string, log Logger) bool {
	f, err := os.CreateTemp(dir, "mediatag-check-*")
	if err != nil {
		log.Error("Scratch dir %s is not writable: %v", dir, err)
		return false
	}
	name := f.Name()
	f.Close()
	if err := os.Remove(name); err != nil {
		log.Warn("Could not remove %s: %v", name, err)
	}
	log.Success("Scratch dir: %s", dir)
	return true
}

func tool(name, path string) ffmpeg.Tool {
	return ffmpeg.Tool{Name: name, Path: path, Timeout: versionTimeout}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	return s
}

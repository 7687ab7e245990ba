// Package logging provides the leveled logger used by every command.
//
// Console output goes to stderr so stdout stays clean for command output
// (e.g. `read -o json`). When a log file is configured it receives the same
// events as JSON lines.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/backmassage/mediatag/internal/config"
	"github.com/backmassage/mediatag/internal/term"
)

const timeFormat = "2006-01-02 15:04:05"

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	mu      sync.Mutex
	zl      zerolog.Logger
	verbose bool
	file    *os.File
}

// NewLogger builds a logger writing console output to out (the CLI passes
// stderr) and, if cfg.LogFile is set, JSON lines to that file in append mode.
// Call Close() when done.
func NewLogger(cfg *config.Config, out io.Writer) (*Logger, error) {
	l := &Logger{verbose: cfg.Verbose}

	console := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !term.Configure(out, cfg.ColorMode).Enabled(),
		TimeFormat: timeFormat,
	}
	writers := []io.Writer{console}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		writers = append(writers, f)
	}

	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	l.zl = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()
	return l, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Verbose reports whether debug output is enabled.
func (l *Logger) Verbose() bool { return l.verbose }

func (l *Logger) emit(ev *zerolog.Event, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ev.Msg(fmt.Sprintf(format, args...))
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.emit(l.zl.Info(), format, args)
}

// Success logs at INFO level tagged status=success.
func (l *Logger) Success(format string, args ...interface{}) {
	l.emit(l.zl.Info().Str("status", "success"), format, args)
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.emit(l.zl.Warn(), format, args)
}

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.emit(l.zl.Error(), format, args)
}

// Debug logs at DEBUG level; dropped unless the logger is verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.emit(l.zl.Debug(), format, args)
}

package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/backmassage/mediatag/internal/ffmpeg"
)

// Sentinels for the three failure kinds. Test with errors.Is.
var (
	ErrProbe = errors.New("probe failure") // Read: ffprobe failed or its output was unusable.
	ErrMux   = errors.New("mux failure")   // Write: ffmpeg rejected the stream copy.
	ErrIO    = errors.New("i/o failure")   // Write: temp file, copy or preflight error.
)

// Kind classifies an [Error].
type Kind int

const (
	KindProbe Kind = iota + 1
	KindMux
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindProbe:
		return "probe"
	case KindMux:
		return "mux"
	case KindIO:
		return "io"
	}
	return "unknown"
}

func (k Kind) sentinel() error {
	switch k {
	case KindProbe:
		return ErrProbe
	case KindMux:
		return ErrMux
	case KindIO:
		return ErrIO
	}
	return nil
}

// Error is the terminal outcome of a failed Read or Write.
type Error struct {
	Kind   Kind
	Op     string // "read" or "write".
	Path   string // The file being read or written.
	Detail string // Tool stderr, when a tool ran.
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind.sentinel(), e.Err)
	if s := ffmpeg.Summarize(e.Detail); s != "" && !containsLine(e.Err, s) {
		msg += ": " + s
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for e.Kind, so errors.Is(err, ErrMux) works.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// Hint returns a short explanation derived from Detail, or "".
func (e *Error) Hint() string {
	return ffmpeg.Hint(e.Detail)
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func containsLine(err error, line string) bool {
	return err != nil && strings.Contains(err.Error(), line)
}

// Package editor is the read/write orchestration core: it probes a file
// into a descriptor and rewrites a file's editable tags through a
// stream-copying ffmpeg run into a temporary file that then replaces the
// original.
//
// An Editor holds only immutable settings; it keeps no per-file state and is
// safe to share. Callers (the CLI, the interactive form) own the session and
// must not run two writes against the same file at once.
package editor

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/backmassage/mediatag/internal/config"
	"github.com/backmassage/mediatag/internal/ffmpeg"
	"github.com/backmassage/mediatag/internal/probe"
	"github.com/backmassage/mediatag/internal/tagset"
)

// Logger is the minimal logging interface needed by the editor.
type Logger interface {
	Debug(string, ...interface{})
	Warn(string, ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

// WriteRequest is a path plus the full editable tag set. Every field is
// written; an empty value clears that tag.
type WriteRequest struct {
	Path string
	Tags tagset.Set
}

// Editor runs reads and writes with fixed tool settings.
type Editor struct {
	prober  ffmpeg.Tool
	muxer   ffmpeg.Tool
	tempDir string
	log     Logger

	// replace swaps the finished temp file in for the original.
	replace func(src, dst string) error
}

// New builds an Editor from cfg. log may be nil.
func New(cfg *config.Config, log Logger) *Editor {
	if log == nil {
		log = nopLogger{}
	}
	return &Editor{
		prober:  ffmpeg.Tool{Name: "ffprobe", Path: cfg.FFprobePath, Timeout: cfg.Timeout},
		muxer:   ffmpeg.Tool{Name: "ffmpeg", Path: cfg.FFmpegPath, Timeout: cfg.Timeout},
		tempDir: cfg.ScratchDir(),
		log:     log,
		replace: replaceFile,
	}
}

// Read probes path and returns its descriptor. Every failure is an *Error of
// kind KindProbe; no partial descriptor is returned.
func (e *Editor) Read(ctx context.Context, path string) (*probe.MediaDescriptor, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &Error{Kind: KindProbe, Op: "read", Path: path, Err: err}
	}
	e.log.Debug("probe %s", abs)

	md, err := probe.Probe(ctx, e.prober, abs)
	if err != nil {
		pe := &Error{Kind: KindProbe, Op: "read", Path: abs, Err: err}
		var perr *probe.Error
		if errors.As(err, &perr) {
			pe.Detail = perr.Stderr
		}
		return nil, pe
	}
	return md, nil
}

// ReadTags is Read followed by extraction of the editable fields.
func (e *Editor) ReadTags(ctx context.Context, path string) (tagset.Set, *probe.MediaDescriptor, error) {
	md, err := e.Read(ctx, path)
	if err != nil {
		return tagset.Set{}, nil, err
	}
	return tagset.FromDescriptor(md), md, nil
}

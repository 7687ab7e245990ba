package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/backmassage/mediatag/internal/ffmpeg"
)

const tempPrefix = "mediatag-"

// Write rewrites the tags of req.Path. The sequence is:
//
//  1. preflight: the target resolves to a regular file we can open for writing
//  2. reserve a temp file in the scratch dir, keeping the extension (ffmpeg
//     picks the output muxer from it)
//  3. ffmpeg stream-copies every stream into the temp file with all six
//     assignments applied
//  4. the temp content replaces the original
//
// The temp file is removed on every exit path. When Write returns an error
// the original file has not been modified.
func (e *Editor) Write(ctx context.Context, req WriteRequest) error {
	path, err := resolveTarget(req.Path)
	if err != nil {
		return &Error{Kind: KindIO, Op: "write", Path: req.Path, Err: err}
	}
	ioErr := func(what string, err error) error {
		return &Error{Kind: KindIO, Op: "write", Path: path, Err: fmt.Errorf("%s: %w", what, err)}
	}

	orig, err := os.Stat(path)
	if err != nil {
		return ioErr("stat", err)
	}

	tmp, err := reserveTemp(e.tempDir, filepath.Ext(path))
	if err != nil {
		return ioErr("create temp file", err)
	}
	defer func() {
		if rmErr := os.Remove(tmp); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			e.log.Warn("Could not remove temp file %s: %v", tmp, rmErr)
		}
	}()

	args := ffmpeg.TagArgs(path, tmp, req.Tags.Assignments())
	res, runErr := e.muxer.Run(ctx, args...)
	if res != nil {
		e.log.Debug("%s (exit %d, %s)", res.CommandLine(), res.ExitCode, res.Elapsed.Round(time.Millisecond))
	}
	if runErr != nil {
		me := &Error{Kind: KindMux, Op: "write", Path: path, Err: runErr}
		if res != nil {
			me.Detail = res.Stderr
		}
		return me
	}

	out, err := os.Stat(tmp)
	if err != nil {
		return ioErr("stat temp file", err)
	}
	if out.Size() == 0 && orig.Size() > 0 {
		return &Error{Kind: KindMux, Op: "write", Path: path,
			Err: errors.New("ffmpeg produced an empty file"), Detail: res.Stderr}
	}

	if err := e.replace(tmp, path); err != nil {
		return ioErr("replace original", err)
	}
	return nil
}

// resolveTarget returns the absolute, symlink-resolved path of a regular
// file that can be opened for writing.
func resolveTarget(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !fi.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a regular file", abs)
	}
	f, err := os.OpenFile(abs, os.O_WRONLY, 0)
	if err != nil {
		return "", err
	}
	return abs, f.Close()
}

// reserveTemp creates an empty file named mediatag-<nanos>-<random><ext> in
// dir and returns its path. ffmpeg overwrites it with -y.
func reserveTemp(dir, ext string) (string, error) {
	pattern := fmt.Sprintf("%s%d-*%s", tempPrefix, time.Now().UnixNano(), ext)
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

// replaceFile copies the bytes of src over dst in place. dst keeps its
// inode, so hard links, ownership, permissions and extended attributes are
// untouched. src is opened and measured before dst is written, and dst is
// only truncated after the full copy, so a missing or unreadable src leaves
// dst as it was.
func replaceFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	fi, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return err
	}
	if n != fi.Size() {
		out.Close()
		return fmt.Errorf("short copy: %d of %d bytes", n, fi.Size())
	}
	if err := out.Truncate(n); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long Wait keeps draining output after the process
// was killed, in case a grandchild still holds the pipes.
const waitDelay = 2 * time.Second

// ErrTimeout is wrapped by Run when the invocation exceeded Tool.Timeout.
var ErrTimeout = errors.New("tool timed out")

// Tool is one external executable from the FFmpeg suite.
type Tool struct {
	Name    string        // Display name, e.g. "ffprobe".
	Path    string        // Executable; bare names are resolved through PATH.
	Timeout time.Duration // Zero means no bound beyond ctx.
}

// Result holds the outcome of a single invocation. It is returned for every
// process that was spawned, including ones that exited non-zero.
type Result struct {
	Args     []string
	Stdout   []byte
	Stderr   string
	ExitCode int
	Elapsed  time.Duration
}

// CommandLine renders the invocation for debug logging.
func (r *Result) CommandLine() string {
	return strings.Join(r.Args, " ")
}

// Run spawns the tool with args, waits for it to exit and captures both
// output streams. The returned error is non-nil when the process could not
// be started, exited non-zero, or was killed by the timeout; Result is nil
// only when the process was never spawned.
func (t Tool) Run(ctx context.Context, args ...string) (*Result, error) {
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, t.Path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%s: start: %w", t.name(), err)
	}
	err := cmd.Wait()

	res := &Result{
		Args:     append([]string{t.Path}, args...),
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
		Elapsed:  time.Since(start),
	}
	if err == nil {
		return res, nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && t.Timeout > 0 {
		return res, fmt.Errorf("%s: %w after %s", t.name(), ErrTimeout, t.Timeout)
	}
	if ctx.Err() != nil {
		return res, fmt.Errorf("%s: %w", t.name(), ctx.Err())
	}
	return res, fmt.Errorf("%s: %w", t.name(), err)
}

// Available reports whether the tool's executable can be resolved.
func (t Tool) Available() bool {
	_, err := exec.LookPath(t.Path)
	return err == nil
}

func (t Tool) name() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Path
}

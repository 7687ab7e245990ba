// Command mediatag is the entrypoint for the mediatag CLI. It reads media
// metadata with ffprobe and rewrites tags with a stream-copying ffmpeg run.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/mediatag/internal/cli"
)

// version and commit are set at build time via -ldflags (e.g. Makefile).
var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Interrupts cancel the context; a running ffprobe/ffmpeg is killed and
	// any temp file is removed before exit.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewApp(version, commit).Execute(ctx, os.Args[1:])
}

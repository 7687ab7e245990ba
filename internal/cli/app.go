// Package cli wires the cobra command tree to the editor core.
//
// Every command shares one App: the persistent pre-run loads defaults, the
// config file and explicitly set flags, validates the result, and builds the
// logger and the editor before the command body runs.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/backmassage/mediatag/internal/check"
	"github.com/backmassage/mediatag/internal/config"
	"github.com/backmassage/mediatag/internal/editor"
	"github.com/backmassage/mediatag/internal/logging"
)

// errReported marks a failure that has already been logged.
var errReported = errors.New("failure already reported")

// annotCreatesConfig marks commands that may run before the file named by
// --config exists.
const annotCreatesConfig = "creates-config"

// IOStreams are the standard streams commands read and write.
type IOStreams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// App is the state shared by all commands of one invocation.
type App struct {
	IO      IOStreams
	Version string
	Commit  string

	flags  *config.Overrides
	cfg    *config.Config
	log    *logging.Logger
	editor *editor.Editor
}

// NewApp returns an App bound to the process's standard streams.
func NewApp(version, commit string) *App {
	return &App{
		IO:      IOStreams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr},
		Version: version,
		Commit:  commit,
	}
}

// NewRootCommand builds the command tree.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "mediatag",
		Short: "Read and rewrite media file tags with ffprobe and ffmpeg",
		Long: "mediatag reads container metadata with ffprobe and rewrites the title, artist, album,\n" +
			"year, genre and comment tags with a stream-copying ffmpeg run. Audio and video\n" +
			"streams are never re-encoded.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return app.setup(cmd) },
	}
	app.flags = config.DefineFlags(root.PersistentFlags())

	root.AddCommand(
		newReadCommand(app),
		newWriteCommand(app),
		newEditCommand(app),
		newCheckCommand(app),
		newConfigCommand(app),
		newVersionCommand(app),
	)
	return root
}

// Execute runs the command line args and returns the process exit code.
func (a *App) Execute(ctx context.Context, args []string) int {
	root := NewRootCommand(a)
	root.SetArgs(args)
	root.SetIn(a.IO.In)
	root.SetOut(a.IO.Out)
	root.SetErr(a.IO.Err)

	err := root.ExecuteContext(ctx)
	defer a.close()
	if err == nil {
		return 0
	}
	a.report(err)
	return 1
}

// setup resolves the configuration: defaults, then the config file, then
// flags that were actually passed.
func (a *App) setup(cmd *cobra.Command) error {
	cfg := config.DefaultConfig()

	path, explicit := a.flags.ConfigPath()
	required := explicit && cmd.Annotations[annotCreatesConfig] == ""
	if !explicit {
		if p, err := config.DefaultConfigPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		if err := config.LoadFile(&cfg, path, required); err != nil {
			return err
		}
	}
	if err := a.flags.Apply(&cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.NewLogger(&cfg, a.IO.Err)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	a.cfg = &cfg
	a.log = log
	a.editor = editor.New(&cfg, log)
	log.Debug("config: file=%q ffprobe=%s ffmpeg=%s timeout=%s scratch=%s",
		cfg.ConfigFile, cfg.FFprobePath, cfg.FFmpegPath, cfg.Timeout, cfg.ScratchDir())
	return nil
}

// requireTools fails fast when a configured tool cannot be resolved.
func (a *App) requireTools() error {
	return check.CheckDeps(a.cfg)
}

func (a *App) report(err error) {
	if errors.Is(err, errReported) {
		return
	}
	if a.log == nil {
		fmt.Fprintf(a.IO.Err, "mediatag: %v\n", err)
		return
	}
	a.log.Error("%v", err)
	var ee *editor.Error
	if errors.As(err, &ee) {
		if h := ee.Hint(); h != "" {
			a.log.Warn("Hint: %s", h)
		}
		// The message only carries the last stderr line.
		if a.log.Verbose() && strings.TrimSpace(ee.Detail) != "" {
			a.log.Debug("%s stderr:\n%s", ee.Op, strings.TrimSpace(ee.Detail))
		}
	}
}

func (a *App) close() {
	if a.log != nil {
		a.log.Close()
	}
}

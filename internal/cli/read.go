package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/backmassage/mediatag/internal/config"
	"github.com/backmassage/mediatag/internal/display"
	"github.com/backmassage/mediatag/internal/probe"
	"github.com/backmassage/mediatag/internal/tagset"
	"github.com/backmassage/mediatag/internal/term"
)

// readResult is the machine-readable form of `read`.
type readResult struct {
	Path     string           `json:"path" yaml:"path"`
	Editable tagset.Set       `json:"editable" yaml:"editable"`
	Format   probe.FormatInfo `json:"format" yaml:"format"`
	Streams  []probe.Stream   `json:"streams" yaml:"streams"`
}

func newReadCommand(app *App) *cobra.Command {
	var field string
	cmd := &cobra.Command{
		Use:   "read <file>",
		Short: "Show a file's container metadata, tags and streams",
		Example: "  mediatag read song.flac\n" +
			"  mediatag read clip.mp4 -o json\n" +
			"  mediatag read song.mp3 --field year",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if field != "" && !tagset.Valid(field) {
				return fmt.Errorf("unknown field %q (editable: %s)", field, strings.Join(tagset.Names(), ", "))
			}
			if err := app.requireTools(); err != nil {
				return err
			}
			md, err := app.editor.Read(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			app.log.Debug("read %s: %s (%d audio, %d video, %d subtitle)", args[0], display.Summary(md),
				md.CountStreams("audio"), md.CountStreams("video"), md.CountStreams("subtitle"))

			if field != "" {
				v, err := tagset.FromDescriptor(md).Get(field)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(app.IO.Out, v)
				return err
			}

			switch app.cfg.Output {
			case config.OutputJSON:
				b, err := json.MarshalIndent(newReadResult(args[0], md), "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(app.IO.Out, string(b))
				return err
			case config.OutputYAML:
				enc := yaml.NewEncoder(app.IO.Out)
				enc.SetIndent(2)
				if err := enc.Encode(newReadResult(args[0], md)); err != nil {
					return err
				}
				return enc.Close()
			}
			return display.RenderDescriptor(app.IO.Out, term.Configure(app.IO.Out, app.cfg.ColorMode), md)
		},
	}
	app.flags.DefineOutputFlag(cmd.Flags())
	cmd.Flags().StringVar(&field, "field", "", "Print only this editable field's value")
	return cmd
}

func newReadResult(path string, md *probe.MediaDescriptor) readResult {
	return readResult{
		Path:     path,
		Editable: tagset.FromDescriptor(md),
		Format:   md.Format,
		Streams:  md.Streams,
	}
}

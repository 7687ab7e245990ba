package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/backmassage/mediatag/internal/editor"
	"github.com/backmassage/mediatag/internal/tagset"
)

func newWriteCommand(app *App) *cobra.Command {
	var clearAll bool
	values := make(map[string]*string, len(tagset.Fields))

	cmd := &cobra.Command{
		Use:   "write <file>",
		Short: "Rewrite a file's editable tags",
		Long: "Starts from the file's current editable tags (or none with --clear), applies the\n" +
			"given flags and writes all six fields. An explicit empty value removes the tag.\n" +
			"Streams are copied unchanged; the original is only replaced once ffmpeg succeeds.",
		Example: "  mediatag write song.mp3 --title \"New Title\" --year 1999\n" +
			"  mediatag write song.mp3 --comment \"\"\n" +
			"  mediatag write song.mp3 --clear --title Intro",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			var changed []string
			for _, f := range tagset.Fields {
				if cmd.Flags().Changed(f.Name) {
					changed = append(changed, f.Name)
				}
			}
			if len(changed) == 0 && !clearAll {
				return errors.New("nothing to write: pass at least one tag flag or --clear")
			}
			if err := app.requireTools(); err != nil {
				return err
			}

			var before tagset.Set
			if !clearAll {
				var err error
				before, _, err = app.editor.ReadTags(cmd.Context(), path)
				if err != nil {
					return err
				}
			}
			after := before
			for _, name := range changed {
				after, _ = after.With(name, *values[name])
			}

			if err := app.editor.Write(cmd.Context(), editor.WriteRequest{Path: path, Tags: after}); err != nil {
				return err
			}
			if diff := before.Diff(after); len(diff) > 0 {
				app.log.Success("Updated %s (%s)", path, strings.Join(diff, ", "))
			} else {
				app.log.Success("Rewrote %s (no tag changes)", path)
			}
			return nil
		},
	}

	for _, f := range tagset.Fields {
		usage := "Set " + strings.ToLower(f.Label)
		if len(f.Aliases) > 0 {
			usage += " (written as " + f.Key + ")"
		}
		values[f.Name] = cmd.Flags().String(f.Name, "", usage)
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Start from empty tags instead of the current ones")
	return cmd
}

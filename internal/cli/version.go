package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/backmassage/mediatag/internal/display"
	"github.com/backmassage/mediatag/internal/term"
)

func newVersionCommand(app *App) *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				_, err := fmt.Fprintln(app.IO.Out, app.Version)
				return err
			}
			display.PrintBanner(app.IO.Out, term.Configure(app.IO.Out, app.cfg.ColorMode))
			_, err := fmt.Fprintf(app.IO.Out, "mediatag %s (commit %s)\n", app.Version, app.Commit)
			return err
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}

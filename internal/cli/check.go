package cli

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/mediatag/internal/check"
)

func newCheckCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify ffprobe, ffmpeg and the scratch directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !check.RunCheck(cmd.Context(), app.cfg, app.log) {
				return errReported
			}
			return nil
		},
	}
}

package cli

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/backmassage/mediatag/internal/term"
	"github.com/backmassage/mediatag/internal/tui"
)

func newEditCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <file>",
		Short: "Edit tags in an interactive form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, inOK := app.IO.In.(*os.File)
			out, outOK := app.IO.Out.(*os.File)
			if !inOK || !outOK || !term.IsTerminal(in) || !term.IsTerminal(out) {
				return errors.New("edit needs an interactive terminal; use write instead")
			}
			if err := app.requireTools(); err != nil {
				return err
			}
			theme := term.Configure(out, app.cfg.ColorMode)
			return tui.Run(cmd.Context(), app.editor, args[0], theme,
				tea.WithAltScreen(), tea.WithInput(in), tea.WithOutput(out))
		},
	}
}

// Package term resolves the color mode and owns the Lip Gloss renderer and
// styles shared by logging, display, and the interactive editor.
//
// [Configure] sets the renderer once during startup; when colors are
// disabled the renderer uses the ASCII profile and every style renders as
// plain text.
package term

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/backmassage/mediatag/internal/config"
)

// Styles groups the styles used across the UI.
type Styles struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Key     lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
	Focused lipgloss.Style
}

// Theme is a renderer plus its styles.
type Theme struct {
	Renderer *lipgloss.Renderer
	Styles   Styles
	color    bool
}

// Configure builds a Theme for w, enabling colors per mode.
func Configure(w io.Writer, mode config.ColorMode) *Theme {
	r := lipgloss.NewRenderer(w)
	enable := resolve(w, mode)
	if enable {
		if r.ColorProfile() == termenv.Ascii {
			r.SetColorProfile(termenv.ANSI256)
		}
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Theme{Renderer: r, Styles: newStyles(r), color: enable}
}

// Plain returns a colorless Theme, used by tests and non-TTY output.
func Plain(w io.Writer) *Theme {
	return Configure(w, config.ColorNever)
}

// Enabled reports whether ANSI colors are active.
func (t *Theme) Enabled() bool { return t.color }

func newStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		Section: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Key:     r.NewStyle().Foreground(lipgloss.Color("14")),
		Value:   r.NewStyle(),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		Success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Warn:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		Error:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Focused: r.NewStyle().Bold(true).Foreground(lipgloss.Color("208")),
	}
}

// resolve determines whether colors should be enabled based on the configured
// mode, TTY detection, and the NO_COLOR env var (https://no-color.org).
func resolve(w io.Writer, mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		f, ok := w.(*os.File)
		return ok && IsTerminal(f) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a TTY (character device).
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// Package tui is the interactive tag form behind `mediatag edit`: one text
// input per editable field, seeded from a read, saved with a full write.
package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/backmassage/mediatag/internal/display"
	"github.com/backmassage/mediatag/internal/editor"
	"github.com/backmassage/mediatag/internal/probe"
	"github.com/backmassage/mediatag/internal/tagset"
	"github.com/backmassage/mediatag/internal/term"
)

// reloadDelay is how long the saved notice stays before the file is re-read.
const reloadDelay = time.Second

// Service is the read/write core the form drives. *editor.Editor
// implements it.
type Service interface {
	ReadTags(ctx context.Context, path string) (tagset.Set, *probe.MediaDescriptor, error)
	Write(ctx context.Context, req editor.WriteRequest) error
}

type state int

const (
	stateLoading state = iota
	stateReady
	stateSaving
	stateSaved
	stateError
)

func (s state) String() string {
	switch s {
	case stateLoading:
		return "loading"
	case stateReady:
		return "ready"
	case stateSaving:
		return "saving"
	case stateSaved:
		return "saved"
	case stateError:
		return "error"
	}
	return "unknown"
}

type loadedMsg struct {
	set tagset.Set
	md  *probe.MediaDescriptor
	err error
}

type savedMsg struct{ err error }

type reloadMsg struct{}

// Model is the Bubble Tea model for one file.
type Model struct {
	ctx   context.Context
	svc   Service
	path  string
	theme *term.Theme

	state  state
	inputs []textinput.Model
	focus  int
	md     *probe.MediaDescriptor
	loaded tagset.Set // Last values read from the file.
	err    error
	notice string

	reloadDelay time.Duration
}

// New returns a form for path in the loading state.
func New(ctx context.Context, svc Service, path string, theme *term.Theme) Model {
	m := Model{
		ctx:         ctx,
		svc:         svc,
		path:        path,
		theme:       theme,
		state:       stateLoading,
		inputs:      make([]textinput.Model, len(tagset.Fields)),
		reloadDelay: reloadDelay,
	}
	for i, f := range tagset.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = strings.ToLower(f.Label)
		ti.Width = 48
		ti.PlaceholderStyle = theme.Styles.Muted
		ti.TextStyle = theme.Styles.Value
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()
	return m
}

// Init starts the first read.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), textinput.Blink)
}

func (m Model) load() tea.Cmd {
	ctx, svc, path := m.ctx, m.svc, m.path
	return func() tea.Msg {
		set, md, err := svc.ReadTags(ctx, path)
		return loadedMsg{set: set, md: md, err: err}
	}
}

func (m Model) save(set tagset.Set) tea.Cmd {
	ctx, svc, path := m.ctx, m.svc, m.path
	return func() tea.Msg {
		return savedMsg{err: svc.Write(ctx, editor.WriteRequest{Path: path, Tags: set})}
	}
}

// busy reports whether an operation is in flight or a post-save reload is
// pending. Input is ignored and no new operation starts until the form is
// ready again, so nothing typed can be overwritten by the reload.
func (m Model) busy() bool {
	return m.state == stateLoading || m.state == stateSaving || m.state == stateSaved
}

// current collects the six input values.
func (m Model) current() tagset.Set {
	var s tagset.Set
	for i, f := range tagset.Fields {
		s, _ = s.With(f.Name, m.inputs[i].Value())
	}
	return s
}

// Dirty reports whether the form differs from the last read.
func (m Model) Dirty() bool {
	return m.current() != m.loaded
}

// Err returns the last load or save error, or nil after a success.
func (m Model) Err() error {
	return m.err
}

// Update handles key input and operation results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+s":
			if m.busy() || m.md == nil {
				return m, nil
			}
			m.state = stateSaving
			m.err = nil
			m.notice = ""
			return m, m.save(m.current())
		case "ctrl+r":
			if m.busy() {
				return m, nil
			}
			m.state = stateLoading
			m.notice = ""
			return m, m.load()
		case "tab", "down", "enter":
			return m, m.moveFocus(1)
		case "shift+tab", "up":
			return m, m.moveFocus(-1)
		}
		if m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd

	case loadedMsg:
		if msg.err != nil {
			m.state = stateError
			m.err = msg.err
			return m, nil
		}
		m.md = msg.md
		m.loaded = msg.set
		for i, v := range msg.set.Values() {
			m.inputs[i].SetValue(v)
			m.inputs[i].CursorEnd()
		}
		m.state = stateReady
		m.err = nil
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.state = stateError
			m.err = msg.err
			return m, nil
		}
		m.state = stateSaved
		m.loaded = m.current()
		m.notice = "Saved " + filepath.Base(m.path)
		return m, tea.Tick(m.reloadDelay, func(time.Time) tea.Msg { return reloadMsg{} })

	case reloadMsg:
		if m.state != stateSaved {
			return m, nil
		}
		m.state = stateLoading
		return m, m.load()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

// View renders the header, the six fields and a status line.
func (m Model) View() string {
	st := m.theme.Styles
	var b strings.Builder

	b.WriteString(st.Title.Render(filepath.Base(m.path)))
	if m.md != nil {
		b.WriteString("  ")
		b.WriteString(st.Muted.Render(display.Summary(m.md)))
	}
	b.WriteString("\n\n")

	for i, f := range tagset.Fields {
		label := fmt.Sprintf("%-8s", f.Label)
		if i == m.focus {
			b.WriteString(st.Focused.Render("> " + label))
		} else {
			b.WriteString(st.Key.Render("  " + label))
		}
		b.WriteString(" ")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(st.Muted.Render("tab/shift+tab move  ctrl+s save  ctrl+r reload  esc quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) statusLine() string {
	st := m.theme.Styles
	switch m.state {
	case stateLoading:
		if m.notice != "" {
			return st.Success.Render(m.notice)
		}
		return st.Muted.Render("Loading...")
	case stateSaving:
		return st.Warn.Render("Saving...")
	case stateSaved:
		return st.Success.Render(m.notice)
	case stateError:
		line := st.Error.Render("Error: ") + m.err.Error()
		var ee *editor.Error
		if errors.As(m.err, &ee) {
			if h := ee.Hint(); h != "" {
				line += "\n" + st.Muted.Render("hint: "+h)
			}
		}
		return line
	}
	if m.Dirty() {
		return st.Warn.Render("modified")
	}
	return ""
}

// Run drives the form until the user quits. It returns the last error when
// the form was left in the error state.
func Run(ctx context.Context, svc Service, path string, theme *term.Theme, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(New(ctx, svc, path, theme), opts...).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.state == stateError {
		return fm.err
	}
	return nil
}

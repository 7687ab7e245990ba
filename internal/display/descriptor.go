// Package display renders descriptors and sizes for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/backmassage/mediatag/internal/probe"
	"github.com/backmassage/mediatag/internal/tagset"
	"github.com/backmassage/mediatag/internal/term"
)

const keyWidth = 12

// RenderDescriptor writes the text form of md: a format section, the six
// editable fields, any other tags, and one line per stream.
func RenderDescriptor(w io.Writer, th *term.Theme, md *probe.MediaDescriptor) error {
	st := th.Styles
	var b strings.Builder

	row := func(key, value string) {
		b.WriteString("  ")
		b.WriteString(st.Key.Render(fmt.Sprintf("%-*s", keyWidth, key)))
		b.WriteString(" ")
		b.WriteString(value)
		b.WriteString("\n")
	}

	b.WriteString(st.Title.Render(md.Format.Filename))
	b.WriteString("\n\n")

	b.WriteString(st.Section.Render("Format"))
	b.WriteString("\n")
	format := md.Format.FormatName
	if md.Format.FormatLongName != "" {
		format += st.Muted.Render(" (" + md.Format.FormatLongName + ")")
	}
	row("container", format)
	row("duration", FormatDuration(md.Format.Duration))
	row("size", FormatBytes(md.Format.Size))
	row("bit rate", FormatBitrate(md.Format.BitRate))

	b.WriteString("\n")
	b.WriteString(st.Section.Render("Tags"))
	b.WriteString("\n")
	values := tagset.FromDescriptor(md).Values()
	for i, f := range tagset.Fields {
		v := values[i]
		if v == "" {
			v = st.Muted.Render("(empty)")
		} else {
			v = st.Value.Render(v)
		}
		row(strings.ToLower(f.Label), v)
	}

	if other := otherTags(md.Format.Tags); len(other) > 0 {
		b.WriteString("\n")
		b.WriteString(st.Section.Render("Other tags"))
		b.WriteString("\n")
		for _, k := range other {
			row(k, st.Muted.Render(md.Tag(k)))
		}
	}

	b.WriteString("\n")
	b.WriteString(st.Section.Render(fmt.Sprintf("Streams (%d)", len(md.Streams))))
	b.WriteString("\n")
	for i, s := range md.Streams {
		idx := s.Index()
		if idx < 0 {
			idx = i
		}
		row(fmt.Sprintf("#%d", idx), s.Summary())
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// otherTags returns the keys not covered by an editable field.
func otherTags(tags probe.Tags) []string {
	skip := make(map[string]bool)
	for _, f := range tagset.Fields {
		skip[f.Key] = true
		for _, a := range f.Aliases {
			skip[a] = true
		}
	}
	var out []string
	for _, k := range tags.Keys() {
		if !skip[k] {
			out = append(out, k)
		}
	}
	return out
}

// Package tagset defines the fixed allowlist of editable tag fields and the
// Set value carried from a read to a write.
package tagset

import (
	"fmt"
	"strings"

	"github.com/backmassage/mediatag/internal/probe"
)

// Field describes one editable tag.
type Field struct {
	Name    string   // Field name used by the CLI and the form.
	Label   string   // Human label.
	Key     string   // Muxer metadata key written for this field.
	Aliases []string // Other keys read as a fallback and cleared on write.
}

// Fields is the ordered allowlist. Nothing outside it is editable.
var Fields = []Field{
	{Name: "title", Label: "Title", Key: "title"},
	{Name: "artist", Label: "Artist", Key: "artist"},
	{Name: "album", Label: "Album", Key: "album"},
	{Name: "year", Label: "Year", Key: "date", Aliases: []string{"year"}},
	{Name: "genre", Label: "Genre", Key: "genre"},
	{Name: "comment", Label: "Comment", Key: "comment"},
}

// Lookup returns the field called name (case-insensitive).
func Lookup(name string) (Field, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Valid reports whether name is an editable field.
func Valid(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// Set holds exactly the six editable values. The zero value is a valid Set
// with every field empty; an empty value clears that tag on write.
type Set struct {
	Title   string `json:"title" yaml:"title"`
	Artist  string `json:"artist" yaml:"artist"`
	Album   string `json:"album" yaml:"album"`
	Year    string `json:"year" yaml:"year"`
	Genre   string `json:"genre" yaml:"genre"`
	Comment string `json:"comment" yaml:"comment"`
}

// FromTags extracts the editable fields from normalized tags: each field's
// key first, then its aliases, defaulting to "".
func FromTags(tags probe.Tags) Set {
	var s Set
	for _, f := range Fields {
		v := tags.Get(f.Key)
		for _, a := range f.Aliases {
			if v != "" {
				break
			}
			v = tags.Get(a)
		}
		*s.field(f.Name) = v
	}
	return s
}

// FromDescriptor is FromTags over the descriptor's format tags.
func FromDescriptor(md *probe.MediaDescriptor) Set {
	return FromTags(md.Format.Tags)
}

// Get returns the value of the named field.
func (s Set) Get(name string) (string, error) {
	f, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown field %q", name)
	}
	return *s.field(f.Name), nil
}

// With returns a copy of s with the named field set to value.
func (s Set) With(name, value string) (Set, error) {
	f, ok := Lookup(name)
	if !ok {
		return s, fmt.Errorf("unknown field %q (editable: %s)", name, strings.Join(Names(), ", "))
	}
	*s.field(f.Name) = value
	return s, nil
}

// Values returns the six values in [Fields] order.
func (s Set) Values() []string {
	out := make([]string, len(Fields))
	for i, f := range Fields {
		out[i] = *s.field(f.Name)
	}
	return out
}

// Assignments returns one "key=value" per field, always all of them, plus
// an empty assignment for every alias so a stale alias cannot shadow the
// written value on the next read.
func (s Set) Assignments() []string {
	out := make([]string, 0, len(Fields)+1)
	for _, f := range Fields {
		out = append(out, f.Key+"="+*s.field(f.Name))
		for _, a := range f.Aliases {
			out = append(out, a+"=")
		}
	}
	return out
}

// Diff lists the names of fields whose values differ between s and other.
func (s Set) Diff(other Set) []string {
	var names []string
	for _, f := range Fields {
		if *s.field(f.Name) != *other.field(f.Name) {
			names = append(names, f.Name)
		}
	}
	return names
}

// Names returns the field names in order.
func Names() []string {
	out := make([]string, len(Fields))
	for i, f := range Fields {
		out[i] = f.Name
	}
	return out
}

// field returns a pointer to the named struct field. name must come from
// [Fields].
func (s *Set) field(name string) *string {
	switch name {
	case "title":
		return &s.Title
	case "artist":
		return &s.Artist
	case "album":
		return &s.Album
	case "year":
		return &s.Year
	case "genre":
		return &s.Genre
	case "comment":
		return &s.Comment
	}
	panic("tagset: unknown field " + name)
}

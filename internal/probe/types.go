package probe

import "strconv"

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Filename       string  `json:"filename" yaml:"filename"`
	NbStreams      int     `json:"nb_streams" yaml:"nb_streams"`
	FormatName     string  `json:"format_name" yaml:"format_name"`
	FormatLongName string  `json:"format_long_name,omitempty" yaml:"format_long_name,omitempty"`
	Duration       float64 `json:"duration" yaml:"duration"` // Seconds.
	Size           int64   `json:"size" yaml:"size"`         // Bytes.
	BitRate        int64   `json:"bit_rate" yaml:"bit_rate"` // Bits/sec.
	Tags           Tags    `json:"tags" yaml:"tags"`
}

// Stream is one entry of ffprobe's streams array. Its attributes are passed
// through untouched; the accessors below only read the few that are
// displayed.
type Stream map[string]any

// Index returns the stream index, or -1 when absent.
func (s Stream) Index() int {
	switch v := s["index"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return -1
}

// CodecType returns "audio", "video", "subtitle", "data", "attachment" or "".
func (s Stream) CodecType() string { return s.str("codec_type") }

// CodecName returns the short codec name, e.g. "flac".
func (s Stream) CodecName() string { return s.str("codec_name") }

// IsAttachedPic reports whether the stream is embedded cover art.
func (s Stream) IsAttachedPic() bool {
	d, ok := s["disposition"].(map[string]any)
	if !ok {
		return false
	}
	v, _ := d["attached_pic"].(float64)
	return v == 1
}

// Summary is a short label such as "audio flac 44100 Hz 2ch".
func (s Stream) Summary() string {
	out := s.CodecType()
	if c := s.CodecName(); c != "" {
		out += " " + c
	}
	switch s.CodecType() {
	case "audio":
		if sr := s.str("sample_rate"); sr != "" {
			out += " " + sr + " Hz"
		}
		if ch, ok := s["channels"].(float64); ok && ch > 0 {
			out += " " + strconv.Itoa(int(ch)) + "ch"
		}
	case "video":
		w, _ := s["width"].(float64)
		h, _ := s["height"].(float64)
		if w > 0 && h > 0 {
			out += " " + strconv.Itoa(int(w)) + "x" + strconv.Itoa(int(h))
		}
		if s.IsAttachedPic() {
			out += " (cover)"
		}
	}
	return out
}

func (s Stream) str(key string) string {
	v, _ := s[key].(string)
	return v
}

// MediaDescriptor is the fully parsed output of a single ffprobe call. It is
// never mutated after [ParseJSON] returns it; reload by probing again.
type MediaDescriptor struct {
	Format  FormatInfo `json:"format" yaml:"format"`
	Streams []Stream   `json:"streams" yaml:"streams"`
}

// Tag is shorthand for Format.Tags.Get(key).
func (m *MediaDescriptor) Tag(key string) string {
	return m.Format.Tags.Get(key)
}

// CountStreams returns how many streams have the given codec type.
func (m *MediaDescriptor) CountStreams(codecType string) int {
	n := 0
	for _, s := range m.Streams {
		if s.CodecType() == codecType {
			n++
		}
	}
	return n
}

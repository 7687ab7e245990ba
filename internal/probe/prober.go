package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/backmassage/mediatag/internal/ffmpeg"
)

// Error describes a failed probe. Stderr carries ffprobe's diagnostic text
// when the tool ran.
type Error struct {
	Path   string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("ffprobe %q: %v", e.Path, e.Err)
	if s := ffmpeg.Summarize(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Probe runs a single ffprobe JSON call against path and returns the parsed
// descriptor. Any failure, including output that is not a descriptor, is
// returned as *Error; no partial result is returned.
func Probe(ctx context.Context, tool ffmpeg.Tool, path string) (*MediaDescriptor, error) {
	res, err := tool.Run(ctx, ffmpeg.ProbeArgs(path)...)
	if err != nil {
		pe := &Error{Path: path, Err: err}
		if res != nil {
			pe.Stderr = res.Stderr
		}
		return nil, pe
	}

	md, err := ParseJSON(res.Stdout)
	if err != nil {
		return nil, &Error{Path: path, Stderr: res.Stderr, Err: err}
	}
	return md, nil
}

// ParseJSON converts raw ffprobe JSON output into a MediaDescriptor.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*MediaDescriptor, error) {
	var raw ffprobeOutput
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	if raw.Format == nil {
		return nil, errors.New("parse ffprobe JSON: no format section")
	}

	md := &MediaDescriptor{
		Format:  convertFormat(raw.Format),
		Streams: make([]Stream, 0, len(raw.Streams)),
	}
	for _, s := range raw.Streams {
		if s == nil {
			s = Stream{}
		}
		md.Streams = append(md.Streams, s)
	}
	return md, nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  *ffprobeFormat `json:"format"`
	Streams []Stream       `json:"streams"`
}

type ffprobeFormat struct {
	Filename       string            `json:"filename"`
	NbStreams      int               `json:"nb_streams"`
	FormatName     string            `json:"format_name"`
	FormatLongName string            `json:"format_long_name"`
	Duration       numeric           `json:"duration"`
	Size           numeric           `json:"size"`
	BitRate        numeric           `json:"bit_rate"`
	Tags           map[string]string `json:"tags"`
}

// numeric accepts ffprobe's numbers-as-strings as well as plain JSON numbers.
// Unparseable values decode as zero.
type numeric string

func (n *numeric) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*n = numeric(strings.TrimSpace(v))
		return nil
	}
	*n = numeric(s)
	return nil
}

func (n numeric) float() float64 {
	f, _ := strconv.ParseFloat(string(n), 64)
	return f
}

func (n numeric) int64() int64 {
	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return i
	}
	return int64(n.float())
}

// --- Conversion from wire types to domain types ---

func convertFormat(f *ffprobeFormat) FormatInfo {
	return FormatInfo{
		Filename:       f.Filename,
		NbStreams:      f.NbStreams,
		FormatName:     f.FormatName,
		FormatLongName: f.FormatLongName,
		Duration:       f.Duration.float(),
		Size:           f.Size.int64(),
		BitRate:        f.BitRate.int64(),
		Tags:           NormalizeTags(f.Tags),
	}
}

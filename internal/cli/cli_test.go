package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// The stand-in ffprobe reports the tags last written by the stand-in
// ffmpeg, which records its title and artist next to the media file.
const fakeProbe = `for a in "$@"; do f="$a"; done
title=""; artist=""
if [ -f "$f.tags" ]; then . "$f.tags"; else title="Old"; artist="Someone"; fi
cat <<JSON
{"format": {"filename": "$f", "format_name": "mp3", "duration": "61.0", "bit_rate": "320000",
 "tags": {"TITLE": "$title", "artist": "$artist", "encoder": "Lavf"}},
 "streams": [{"index": 0, "codec_type": "audio", "codec_name": "mp3", "sample_rate": "44100", "channels": 2}]}
JSON
`

const fakeMux = `in=""; prev=""; out=""; tags=""
for a in "$@"; do
  if [ "$prev" = "-i" ]; then in="$a"; fi
  if [ "$prev" = "-metadata" ]; then
    case "$a" in
      title=*) tags="$tags title='${a#title=}'";;
      artist=*) tags="$tags artist='${a#artist=}'";;
    esac
  fi
  prev="$a"; out="$a"
done
if [ -z "$in" ]; then echo "ffmpeg version test"; exit 0; fi
cat "$in" > "$out" || exit 1
echo "$tags" > "$in.tags"
`

type env struct {
	dir   string
	media string
	base  []string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	// Resolved so the paths ffmpeg sees match the ones ffprobe sees.
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	write := func(name, body string, mode os.FileMode) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), mode); err != nil {
			t.Fatal(err)
		}
		return p
	}
	probe := write("ffprobe", "#!/bin/sh\n"+fakeProbe, 0o755)
	mux := write("ffmpeg", "#!/bin/sh\n"+fakeMux, 0o755)
	media := write("song.mp3", "mp3-bytes", 0o644)
	scratch := filepath.Join(dir, "scratch")
	if err := os.Mkdir(scratch, 0o755); err != nil {
		t.Fatal(err)
	}
	return &env{
		dir:   dir,
		media: media,
		base:  []string{"--ffprobe", probe, "--ffmpeg", mux, "--temp-dir", scratch, "--no-color"},
	}
}

func (e *env) run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errb bytes.Buffer
	app := &App{
		IO:      IOStreams{In: strings.NewReader(""), Out: &out, Err: &errb},
		Version: "1.2.3",
		Commit:  "abc123",
	}
	code = app.Execute(context.Background(), append(append([]string{}, e.base...), args...))
	return code, out.String(), errb.String()
}

func TestReadText(t *testing.T) {
	e := newEnv(t)
	code, out, stderr := e.run(t, "read", e.media)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	for _, want := range []string{"song.mp3", "1:01", "320 kbps", "Old", "Someone", "encoder", "audio mp3 44100 Hz 2ch"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("--no-color output contains ANSI sequences")
	}
}

func TestReadJSON(t *testing.T) {
	e := newEnv(t)
	code, out, stderr := e.run(t, "read", e.media, "-o", "json")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	var got struct {
		Path     string            `json:"path"`
		Editable map[string]string `json:"editable"`
		Format   struct {
			FormatName string            `json:"format_name"`
			Duration   float64           `json:"duration"`
			Tags       map[string]string `json:"tags"`
		} `json:"format"`
		Streams []map[string]any `json:"streams"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, out)
	}
	if got.Editable["title"] != "Old" || got.Editable["artist"] != "Someone" {
		t.Errorf("editable = %v", got.Editable)
	}
	if got.Format.Tags["title"] != "Old" {
		t.Errorf("tags should be lower-cased: %v", got.Format.Tags)
	}
	if got.Format.Duration != 61 || len(got.Streams) != 1 {
		t.Errorf("format = %+v, streams = %v", got.Format, got.Streams)
	}
}

func TestReadYAML(t *testing.T) {
	e := newEnv(t)
	code, out, stderr := e.run(t, "read", e.media, "--output", "YAML")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	var got map[string]any
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("stdout is not YAML: %v\n%s", err, out)
	}
	ed, _ := got["editable"].(map[string]any)
	if ed["title"] != "Old" {
		t.Errorf("editable = %v", got["editable"])
	}
}

func TestReadField(t *testing.T) {
	e := newEnv(t)
	code, out, stderr := e.run(t, "read", e.media, "--field", "Artist")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if out != "Someone\n" {
		t.Errorf("stdout = %q, want %q", out, "Someone\n")
	}

	code, out, stderr = e.run(t, "read", e.media, "--field", "composer")
	if code != 1 || out != "" || !strings.Contains(stderr, `unknown field "composer"`) {
		t.Errorf("exit %d, stdout %q: %s", code, out, stderr)
	}
}

func TestReadInvalidOutput(t *testing.T) {
	e := newEnv(t)
	code, _, stderr := e.run(t, "read", e.media, "-o", "xml")
	if code != 1 || !strings.Contains(stderr, "invalid output format") {
		t.Errorf("exit %d: %s", code, stderr)
	}
}

func TestReadProbeFailure(t *testing.T) {
	e := newEnv(t)
	bad := filepath.Join(e.dir, "ffprobe-bad")
	if err := os.WriteFile(bad, []byte("#!/bin/sh\necho 'Invalid data found when processing input' >&2\nexit 1\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	code, out, stderr := e.run(t, "--ffprobe", bad, "read", e.media)
	if code != 1 {
		t.Fatalf("exit %d", code)
	}
	if out != "" {
		t.Errorf("nothing should reach stdout on failure: %q", out)
	}
	if !strings.Contains(stderr, "probe failure") || !strings.Contains(stderr, "not a readable media file") {
		t.Errorf("stderr = %s", stderr)
	}
}

func TestReadVerboseShowsToolStderr(t *testing.T) {
	e := newEnv(t)
	bad := filepath.Join(e.dir, "ffprobe-bad")
	body := "#!/bin/sh\necho 'first line' >&2\necho 'Invalid data found when processing input' >&2\nexit 1\n"
	if err := os.WriteFile(bad, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}
	_, _, stderr := e.run(t, "-v", "--ffprobe", bad, "read", e.media)
	if !strings.Contains(stderr, "read stderr:") || !strings.Contains(stderr, "first line") {
		t.Errorf("verbose stderr = %s", stderr)
	}
}

func TestWriteOverlaysGivenFlags(t *testing.T) {
	e := newEnv(t)
	code, _, stderr := e.run(t, "write", e.media, "--title", "New")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stderr, "Updated") || !strings.Contains(stderr, "title") {
		t.Errorf("stderr = %s", stderr)
	}

	// The artist was not passed, so it is carried over from the read.
	_, out, _ := e.run(t, "read", e.media, "-o", "json")
	if !strings.Contains(out, `"title": "New"`) || !strings.Contains(out, `"artist": "Someone"`) {
		t.Errorf("after write:\n%s", out)
	}
	entries, _ := os.ReadDir(filepath.Join(e.dir, "scratch"))
	if len(entries) != 0 {
		t.Errorf("temp files left: %v", entries)
	}
}

func TestWriteExplicitEmptyClears(t *testing.T) {
	e := newEnv(t)
	if code, _, stderr := e.run(t, "write", e.media, "--artist", ""); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	_, out, _ := e.run(t, "read", e.media, "-o", "json")
	if !strings.Contains(out, `"artist": ""`) || !strings.Contains(out, `"title": "Old"`) {
		t.Errorf("after write:\n%s", out)
	}
}

func TestWriteClear(t *testing.T) {
	e := newEnv(t)
	if code, _, stderr := e.run(t, "write", e.media, "--clear", "--title", "Intro"); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	_, out, _ := e.run(t, "read", e.media, "-o", "json")
	if !strings.Contains(out, `"title": "Intro"`) || !strings.Contains(out, `"artist": ""`) {
		t.Errorf("after write:\n%s", out)
	}
}

func TestWriteNeedsSomething(t *testing.T) {
	e := newEnv(t)
	code, _, stderr := e.run(t, "write", e.media)
	if code != 1 || !strings.Contains(stderr, "nothing to write") {
		t.Errorf("exit %d: %s", code, stderr)
	}
}

func TestWriteMissingTool(t *testing.T) {
	e := newEnv(t)
	code, _, stderr := e.run(t, "--ffmpeg", filepath.Join(e.dir, "nope"), "write", e.media, "--title", "x")
	if code != 1 || !strings.Contains(stderr, "ffmpeg not found") {
		t.Errorf("exit %d: %s", code, stderr)
	}
}

func TestEditNeedsTerminal(t *testing.T) {
	e := newEnv(t)
	code, _, stderr := e.run(t, "edit", e.media)
	if code != 1 || !strings.Contains(stderr, "interactive terminal") {
		t.Errorf("exit %d: %s", code, stderr)
	}
}

func TestCheck(t *testing.T) {
	e := newEnv(t)
	code, _, stderr := e.run(t, "check")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stderr, "System Check") || !strings.Contains(stderr, "ffmpeg version test") {
		t.Errorf("stderr = %s", stderr)
	}

	code, _, stderr = e.run(t, "--ffprobe", filepath.Join(e.dir, "nope"), "check")
	if code != 1 || !strings.Contains(stderr, "ffprobe not found") {
		t.Errorf("exit %d: %s", code, stderr)
	}
}

func TestVersion(t *testing.T) {
	e := newEnv(t)
	code, out, _ := e.run(t, "version")
	if code != 0 || !strings.Contains(out, "mediatag 1.2.3 (commit abc123)") {
		t.Errorf("exit %d: %s", code, out)
	}
	_, out, _ = e.run(t, "version", "--short")
	if out != "1.2.3\n" {
		t.Errorf("short version = %q", out)
	}
}

func TestConfigInitAndLoad(t *testing.T) {
	e := newEnv(t)
	path := filepath.Join(e.dir, "conf", "mediatag.yml")

	code, _, stderr := e.run(t, "--config", path, "--timeout", "45s", "config", "init")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if code, _, stderr := e.run(t, "--config", path, "config", "init"); code != 1 || !strings.Contains(stderr, "already exists") {
		t.Errorf("second init: exit %d: %s", code, stderr)
	}

	// The file's timeout holds when no flag overrides it.
	var out bytes.Buffer
	app := &App{IO: IOStreams{In: strings.NewReader(""), Out: &out, Err: &bytes.Buffer{}}}
	if code := app.Execute(context.Background(), []string{"--config", path, "config", "show"}); code != 0 {
		t.Fatalf("show exit %d", code)
	}
	if !strings.Contains(out.String(), "timeout: 45s") || !strings.Contains(out.String(), "# loaded from "+path) {
		t.Errorf("config show:\n%s", out.String())
	}
}

func TestMissingExplicitConfig(t *testing.T) {
	e := newEnv(t)
	code, _, stderr := e.run(t, "--config", filepath.Join(e.dir, "absent.yml"), "read", e.media)
	if code != 1 || !strings.Contains(stderr, "read config") {
		t.Errorf("exit %d: %s", code, stderr)
	}
}

func TestColorFlagsExclusive(t *testing.T) {
	e := newEnv(t)
	code, _, stderr := e.run(t, "--color", "read", e.media)
	if code != 1 || !strings.Contains(stderr, "mutually exclusive") {
		t.Errorf("exit %d: %s", code, stderr)
	}
}

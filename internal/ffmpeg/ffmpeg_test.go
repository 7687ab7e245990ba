package ffmpeg

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// --- Builder tests ---

func TestProbeArgs(t *testing.T) {
	got := strings.Join(ProbeArgs("/music/a b.flac"), " ")
	want := "-hide_banner -v error -print_format json -show_format -show_streams /music/a b.flac"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestTagArgs_Order(t *testing.T) {
	args := TagArgs("/in/song.mp3", "/tmp/out.mp3", []string{"title=A", "artist="})

	// Input must precede output options; the output path must be last.
	idxIn := indexOf(args, "-i")
	if idxIn < 0 || args[idxIn+1] != "/in/song.mp3" {
		t.Fatalf("missing input: %v", args)
	}
	if args[len(args)-1] != "/tmp/out.mp3" || args[len(args)-2] != "-y" {
		t.Errorf("output must be last and preceded by -y: %v", args)
	}
	if idx := indexOf(args, "-c"); idx < idxIn || args[idx+1] != "copy" {
		t.Errorf("stream copy missing or before input: %v", args)
	}
	if idx := indexOf(args, "-map"); idx < 0 || args[idx+1] != "0" {
		t.Errorf("all streams must be mapped: %v", args)
	}
}

func TestTagArgs_EveryAssignmentEmitted(t *testing.T) {
	meta := []string{"title=A", "artist=", "album=B", "date=", "year=", "genre=", "comment="}
	args := TagArgs("in.flac", "out.flac", meta)

	var got []string
	for i, a := range args {
		if a == "-metadata" {
			got = append(got, args[i+1])
		}
	}
	if strings.Join(got, "|") != strings.Join(meta, "|") {
		t.Errorf("metadata args = %v, want %v", got, meta)
	}
}

// --- Classification tests ---

func TestHint(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   string
	}{
		{"stream copy", "[mp4 @ 0x1] Could not find tag for codec pcm_s16le in stream #0, codec not currently supported in container", "container cannot hold one of the streams without re-encoding"},
		{"permission", "/tmp/x.mp3: Permission denied", "permission denied"},
		{"read-only fs", "Read-only file system", "permission denied"},
		{"missing", "a.mp3: No such file or directory", "file not found"},
		{"corrupt", "song.mp3: Invalid data found when processing input", "input is not a readable media file"},
		{"no space", "av_interleaved_write_frame(): No space left on device", "no space left in the scratch directory"},
		{"unknown", "something else broke", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hint(tt.stderr); got != tt.want {
				t.Errorf("Hint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"one line", "one line"},
		{"first\nsecond\n\n  \n", "second"},
		{"  padded  \n", "padded"},
	}
	for _, tt := range tests {
		if got := Summarize(tt.in); got != tt.want {
			t.Errorf("Summarize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// --- Executor tests (POSIX sh required) ---

func TestRun_CapturesOutput(t *testing.T) {
	sh := Tool{Name: "sh", Path: "sh"}
	if !sh.Available() {
		t.Skip("sh not available")
	}
	res, err := sh.Run(context.Background(), "-c", "echo out; echo err >&2")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if string(res.Stdout) != "out\n" || res.Stderr != "err\n" {
		t.Errorf("stdout=%q stderr=%q", res.Stdout, res.Stderr)
	}
	if res.ExitCode != 0 {
		t.Errorf("exit code %d", res.ExitCode)
	}
	if !strings.HasPrefix(res.CommandLine(), "sh -c") {
		t.Errorf("CommandLine() = %q", res.CommandLine())
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	sh := Tool{Name: "sh", Path: "sh"}
	if !sh.Available() {
		t.Skip("sh not available")
	}
	res, err := sh.Run(context.Background(), "-c", "echo broken >&2; exit 3")
	if err == nil {
		t.Fatal("expected error")
	}
	if res == nil || res.ExitCode != 3 || res.Stderr != "broken\n" {
		t.Errorf("result = %+v", res)
	}
}

func TestRun_StartFailure(t *testing.T) {
	tool := Tool{Name: "ghost", Path: "/nonexistent/ghost-tool"}
	res, err := tool.Run(context.Background())
	if err == nil {
		t.Fatal("expected start error")
	}
	if res != nil {
		t.Errorf("result should be nil when nothing was spawned, got %+v", res)
	}
	if tool.Available() {
		t.Error("ghost tool should not be available")
	}
}

func TestRun_Timeout(t *testing.T) {
	sh := Tool{Name: "sh", Path: "sh", Timeout: 100 * time.Millisecond}
	if !sh.Available() {
		t.Skip("sh not available")
	}
	start := time.Now()
	_, err := sh.Run(context.Background(), "-c", "exec sleep 5")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if time.Since(start) > 4*time.Second {
		t.Error("timeout did not stop the process")
	}
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

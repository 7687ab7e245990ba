package ffmpeg

import (
	"regexp"
	"strings"
)

// Pre-compiled regexes for classifying ffmpeg/ffprobe stderr output into a
// short hint shown next to a failed operation. Checked in order by [Hint].
var (
	reStreamCopyIssue = regexp.MustCompile(
		`(?i)Could not find tag for codec .* in stream|` +
			`codec not currently supported in container|` +
			`Unsupported codec with id|` +
			`Could not write header for output file|` +
			`incorrect codec parameters|` +
			`Tag .* incompatible with output codec`)

	rePermissionDenied = regexp.MustCompile(`(?i)Permission denied|Operation not permitted|Read-only file system`)

	reNoSuchFile = regexp.MustCompile(`(?i)No such file or directory`)

	reInvalidData = regexp.MustCompile(
		`(?i)Invalid data found when processing input|` +
			`moov atom not found|` +
			`could not find codec parameters`)

	reNoSpace = regexp.MustCompile(`(?i)No space left on device`)
)

// MatchStreamCopyIssue reports whether stderr shows the output container
// rejecting one of the copied streams.
func MatchStreamCopyIssue(stderr string) bool {
	return reStreamCopyIssue.MatchString(stderr)
}

// MatchPermissionDenied reports whether stderr contains a permission error.
func MatchPermissionDenied(stderr string) bool {
	return rePermissionDenied.MatchString(stderr)
}

// MatchNoSuchFile reports whether stderr contains a missing-file error.
func MatchNoSuchFile(stderr string) bool {
	return reNoSuchFile.MatchString(stderr)
}

// MatchInvalidData reports whether stderr shows an unreadable or corrupt input.
func MatchInvalidData(stderr string) bool {
	return reInvalidData.MatchString(stderr)
}

// MatchNoSpace reports whether stderr shows a full output device.
func MatchNoSpace(stderr string) bool {
	return reNoSpace.MatchString(stderr)
}

// Hint maps stderr to a one-line explanation, or "" when nothing matches.
// Order: no space → permission → missing file → corrupt input → stream copy.
func Hint(stderr string) string {
	switch {
	case MatchNoSpace(stderr):
		return "no space left in the scratch directory"
	case MatchPermissionDenied(stderr):
		return "permission denied"
	case MatchNoSuchFile(stderr):
		return "file not found"
	case MatchInvalidData(stderr):
		return "input is not a readable media file"
	case MatchStreamCopyIssue(stderr):
		return "container cannot hold one of the streams without re-encoding"
	}
	return ""
}

// Summarize returns the last non-empty line of stderr, which is where both
// tools print the terminal error when run at -v error.
func Summarize(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}

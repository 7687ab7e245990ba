package ffmpeg

// ProbeArgs returns the ffprobe arguments for a single JSON description of
// path: container format plus every stream, errors only on stderr.
func ProbeArgs(path string) []string {
	return []string{
		"-hide_banner",
		"-v", "error",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	}
}

// TagArgs returns the ffmpeg arguments that stream-copy input into output
// while assigning each "key=value" in metadata. Every stream and all
// existing global metadata are carried over; only the listed keys change.
// An assignment with an empty value removes that key.
func TagArgs(input, output string, metadata []string) []string {
	args := make([]string, 0, 16+2*len(metadata))

	// --- Preamble ---
	args = append(args, "-hide_banner", "-nostdin", "-loglevel", "error")

	// --- Input ---
	args = append(args, "-i", input)

	// --- Stream selection: all streams, no re-encode ---
	args = append(args,
		"-map", "0",
		"-map_metadata", "0",
		"-c", "copy",
	)

	// --- Tag assignments ---
	for _, kv := range metadata {
		args = append(args, "-metadata", kv)
	}

	// --- Output (overwrite the reserved temp path) ---
	args = append(args, "-y", output)
	return args
}

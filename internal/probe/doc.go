// Package probe runs ffprobe against a single file and turns its JSON output
// into a [MediaDescriptor]: the container format section with normalized
// [Tags], plus the stream list kept opaque.
package probe

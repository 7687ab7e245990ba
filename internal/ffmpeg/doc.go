// Package ffmpeg runs the FFmpeg suite's command-line tools.
//
// [Tool] is a scoped process: spawn, wait, capture stdout/stderr and the exit
// status, with an optional timeout. The builders produce the argument lists
// for a JSON probe ([ProbeArgs]) and a stream-copy tag rewrite ([TagArgs]);
// the matchers classify stderr into a short human hint ([Hint]).
package ffmpeg

package display

import (
	"fmt"
	"math"

	"github.com/backmassage/mediatag/internal/probe"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatBitrate returns a short label for a rate in bits per second
// (e.g. "320 kbps", "1.4 Mbps"). Zero means ffprobe did not report one.
func FormatBitrate(bps int64) string {
	switch {
	case bps <= 0:
		return "unknown"
	case bps < 1000:
		return fmt.Sprintf("%d bps", bps)
	case bps < 1000*1000:
		return fmt.Sprintf("%d kbps", bps/1000)
	}
	return fmt.Sprintf("%.1f Mbps", float64(bps)/1e6)
}

// FormatDuration renders seconds as m:ss, or h:mm:ss from one hour up.
// Fractions are truncated.
func FormatDuration(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "0:00"
	}
	total := int64(seconds)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Summary is a one-line description of md, e.g.
// "flac, 3:25, 1.0 Mbps, 2 streams".
func Summary(md *probe.MediaDescriptor) string {
	noun := "streams"
	if len(md.Streams) == 1 {
		noun = "stream"
	}
	return fmt.Sprintf("%s, %s, %s, %d %s",
		md.Format.FormatName,
		FormatDuration(md.Format.Duration),
		FormatBitrate(md.Format.BitRate),
		len(md.Streams), noun)
}

package types

import (
	"fmt"
	"strings"
	"time"
)

// AudioInfo carries the incidental technical properties a codec can
// derive while it is already parsing a file for tags: duration and
// bitrate are never authoritative (no full audio decode is performed),
// only what falls out of header/frame inspection.
type AudioInfo struct {
	Duration      time.Duration
	SampleRate    int
	BitsPerSample int
	Channels      int
	Bitrate       int
	VBR           bool
}

// String returns a human-readable summary, e.g. "44.1kHz 16-bit stereo 192kbps".
func (a AudioInfo) String() string {
	var parts []string
	if a.SampleRate > 0 {
		parts = append(parts, fmt.Sprintf("%.1fkHz", float64(a.SampleRate)/1000))
	}
	if a.BitsPerSample > 0 {
		parts = append(parts, fmt.Sprintf("%d-bit", a.BitsPerSample))
	}
	if ch := channelDescription(a.Channels); ch != "" {
		parts = append(parts, ch)
	}
	if a.Bitrate > 0 {
		br := fmt.Sprintf("%dkbps", a.Bitrate/1000)
		if a.VBR {
			br += " VBR"
		}
		parts = append(parts, br)
	}
	return strings.Join(parts, " ")
}

func channelDescription(channels int) string {
	switch channels {
	case 0:
		return ""
	case 1:
		return "mono"
	case 2:
		return "stereo"
	case 4:
		return "quad"
	case 6:
		return "5.1"
	case 8:
		return "7.1"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}

// IsHighRes reports whether the audio exceeds CD-quality resolution.
func (a AudioInfo) IsHighRes() bool {
	return a.SampleRate > 48000 || a.BitsPerSample > 16
}

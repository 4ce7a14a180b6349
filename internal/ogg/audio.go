package ogg

import (
	"fmt"
	"time"

	"github.com/go-tagkit/tagkit/internal/types"
)

// decodeIdentification parses the Vorbis identification header (packet
// 0 of the logical stream): packet type 0x01 + "vorbis" + version +
// channels + sample rate + three bitrate fields, all little-endian.
// Only the pieces this package surfaces as AudioInfo are kept.
func decodeIdentification(data []byte) (types.AudioInfo, error) {
	if len(data) < 30 {
		return types.AudioInfo{}, fmt.Errorf("ogg: identification header too short: %d bytes", len(data))
	}
	if data[0] != 0x01 || string(data[1:7]) != "vorbis" {
		return types.AudioInfo{}, fmt.Errorf("ogg: not a Vorbis identification header")
	}

	channels := int(data[11])
	sampleRate := int(leUint32(data[12:16]))
	bitrateNominal := int(leUint32(data[20:24]))

	return types.AudioInfo{
		SampleRate: sampleRate,
		Channels:   channels,
		Bitrate:    bitrateNominal,
		VBR:        true,
	}, nil
}

// durationFromGranule derives playback duration from the last page's
// granule position (samples decoded so far) belonging to serial.
func durationFromGranule(pages []Page, serial uint32, sampleRate int) time.Duration {
	if sampleRate == 0 {
		return 0
	}
	var lastGranule int64 = -1
	for _, p := range pages {
		if p.Header.Serial == serial && p.Header.Granule >= 0 {
			lastGranule = p.Header.Granule
		}
	}
	if lastGranule < 0 {
		return 0
	}
	return time.Duration(float64(lastGranule) / float64(sampleRate) * float64(time.Second))
}

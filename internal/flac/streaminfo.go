package flac

import (
	"fmt"
	"time"

	"github.com/go-tagkit/tagkit/internal/types"
)

// streamInfoSize is STREAMINFO's fixed body length: 18 bytes of
// parameters plus a 16-byte MD5 signature.
const streamInfoSize = 34

// decodeStreamInfo derives the incidental audio properties from the
// mandatory first metadata block. Sample rate (20 bits), channel count
// (3 bits, stored minus one), bits per sample (5 bits, stored minus
// one), and total sample count (36 bits) are packed into bytes 10-17 as
// one big-endian 64-bit value; bitrate is never carried explicitly in
// FLAC, so it is estimated from file size and duration.
func decodeStreamInfo(body []byte, fileSize int64) (types.AudioInfo, error) {
	if len(body) != streamInfoSize {
		return types.AudioInfo{}, fmt.Errorf("flac: STREAMINFO size %d, want %d", len(body), streamInfoSize)
	}

	packed := uint64(body[10])<<56 | uint64(body[11])<<48 | uint64(body[12])<<40 | uint64(body[13])<<32 |
		uint64(body[14])<<24 | uint64(body[15])<<16 | uint64(body[16])<<8 | uint64(body[17])

	sampleRate := (packed >> 44) & 0xFFFFF
	channels := ((packed >> 41) & 0x7) + 1
	bitsPerSample := ((packed >> 36) & 0x1F) + 1
	totalSamples := packed & 0xFFFFFFFFF

	info := types.AudioInfo{
		SampleRate:    int(sampleRate),
		Channels:      int(channels),
		BitsPerSample: int(bitsPerSample),
	}

	if sampleRate > 0 {
		info.Duration = time.Duration(float64(totalSamples) / float64(sampleRate) * float64(time.Second))
	}
	if info.Duration > 0 {
		info.Bitrate = int(float64(fileSize) * 8 / info.Duration.Seconds())
	}

	return info, nil
}

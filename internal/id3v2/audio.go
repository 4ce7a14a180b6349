package id3v2

import (
	"fmt"
	"time"

	"github.com/go-tagkit/tagkit/internal/binary"
	"github.com/go-tagkit/tagkit/internal/types"
)

// MPEG1 Layer III bitrate table, kbps.
var bitrateTable = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}

// MPEG1 sample rate table, Hz.
var sampleRateTable = [4]int{44100, 48000, 32000, 0}

// probeAudio scans for the first MPEG audio frame after the ID3v2 tag
// (tagEnd bytes in) and derives bitrate, sample rate, channel count,
// and duration from it, preferring a Xing/Info or VBRI VBR header over
// the constant-bitrate estimate when one is present.
func probeAudio(sr *binary.SafeReader, tagEnd, fileSize int64) (types.AudioInfo, error) {
	for offset := tagEnd; offset < fileSize-4; offset++ {
		header, err := readFrameSync(sr, offset)
		if err != nil {
			continue
		}
		bitrate, sampleRate, channels := decodeFrameHeader(header)
		if bitrate == 0 || sampleRate == 0 {
			continue
		}

		info := types.AudioInfo{Bitrate: bitrate, SampleRate: sampleRate, Channels: channels}
		if duration, ok := vbrDuration(sr, offset, sampleRate); ok {
			info.Duration = duration
			info.VBR = true
		} else {
			info.Duration = cbrDuration(bitrate, fileSize-tagEnd)
		}
		return info, nil
	}
	return types.AudioInfo{}, fmt.Errorf("id3v2: no MPEG audio frame found")
}

func readFrameSync(sr *binary.SafeReader, offset int64) (uint32, error) {
	buf := make([]byte, 4)
	if err := sr.ReadAt(buf, offset, "MPEG frame header"); err != nil {
		return 0, err
	}
	header := be32(buf)
	if header&0xFFE00000 != 0xFFE00000 {
		return 0, fmt.Errorf("no frame sync")
	}
	version := (header >> 19) & 0x3
	layer := (header >> 17) & 0x3
	if (version != 3 && version != 2) || layer != 1 {
		return 0, fmt.Errorf("unsupported MPEG version/layer")
	}
	return header, nil
}

func decodeFrameHeader(header uint32) (bitrate, sampleRate, channels int) {
	bitrate = bitrateTable[(header>>12)&0xF] * 1000
	sampleRate = sampleRateTable[(header>>10)&0x3]
	if (header>>6)&0x3 == 3 {
		channels = 1
	} else {
		channels = 2
	}
	return
}

// vbrDuration looks for a Xing/Info or VBRI header 36 bytes past the
// frame it's associated with and derives an exact duration from its
// frame count, since CBR's size/bitrate estimate is only approximate
// for VBR streams.
func vbrDuration(sr *binary.SafeReader, frameOffset int64, sampleRate int) (time.Duration, bool) {
	buf := make([]byte, 120)
	if err := sr.ReadAt(buf, frameOffset+36, "VBR header"); err != nil {
		return 0, false
	}

	if string(buf[0:4]) == "Xing" || string(buf[0:4]) == "Info" {
		flags := be32(buf[4:8])
		if flags&0x0001 != 0 {
			numFrames := be32(buf[8:12])
			return framesDuration(numFrames, sampleRate), true
		}
		return 0, false
	}
	if string(buf[0:4]) == "VBRI" && len(buf) >= 18 {
		numFrames := be32(buf[14:18])
		return framesDuration(numFrames, sampleRate), true
	}
	return 0, false
}

func framesDuration(numFrames uint32, sampleRate int) time.Duration {
	const samplesPerFrame = 1152
	totalSamples := uint64(numFrames) * samplesPerFrame
	return time.Duration(float64(totalSamples) / float64(sampleRate) * float64(time.Second))
}

func cbrDuration(bitrate int, audioSize int64) time.Duration {
	if bitrate == 0 {
		return 0
	}
	return time.Duration(float64(audioSize*8) / float64(bitrate) * float64(time.Second))
}

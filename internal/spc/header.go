// Package spc implements the SPC700/ID666/xid6 codec (spec §4.9): a
// fixed-offset ID666 header embedded in the SPC file prefix, plus an
// optional xid6 extended footer carrying richer metadata and the
// playback-control values that drive emulated playback duration.
package spc

import (
	"fmt"
	"math"

	"github.com/go-tagkit/tagkit/internal/binary"
)

// SPC_RAW_LENGTH: the size of the fixed SPC file prefix (format tag,
// version markers, ID666 header, RAM image, DSP registers). A file
// longer than this carries an xid6 footer starting here.
const spcRawLength = 66048

const (
	formatTagOffset = 0
	formatTag1      = "SNES-SPC700 Sound File Data"

	registersOffset = 43
	registersSize   = 9

	headerOffset = registersOffset + registersSize // 52

	titleOffset   = headerOffset
	titleSize     = 32
	albumOffset   = titleOffset + titleSize // 84
	albumSize     = 32
	dumperOffset  = albumOffset + albumSize // 116
	dumperSize    = 16
	commentOffset = dumperOffset + dumperSize // 132
	commentSize   = 32
	dateOffset    = commentOffset + commentSize // 164
	dateSize      = 11
	songOffset    = dateOffset + dateSize // 175
	songSize      = 3
	fadeOffset    = songOffset + songSize // 178
	fadeSize      = 5
	artistOffset  = fadeOffset + fadeSize // 183
	artistSize    = 32

	headerTagTotalSize = artistSize + (artistOffset - headerOffset) // 163: title through artist; the 14 unused bytes after it are not included
)

// rawHeader is the ID666 header's fields, decoded but otherwise
// unprocessed - song/fade are kept as their original raw bytes too, so
// Write can pass them through untouched (they describe playback
// duration, not user metadata, and are never edited via TagData).
type rawHeader struct {
	Exists bool

	Title, Album, Dumper, Comment, Date, Artist string

	SongSeconds int
	FadeMS      int
	TextMode    bool

	SongRaw, FadeRaw []byte // original songSize/fadeSize bytes, verbatim
}

func readHeader(sr *binary.SafeReader) (rawHeader, error) {
	var h rawHeader

	magic := make([]byte, len(formatTag1))
	if err := sr.ReadAt(magic, formatTagOffset, "SPC format tag"); err != nil {
		return h, err
	}
	if string(magic) != formatTag1 {
		return h, fmt.Errorf("spc: missing %q format tag", formatTag1)
	}

	tagInHeader := make([]byte, 1)
	if err := sr.ReadAt(tagInHeader, 41, "SPC tag-in-header flag"); err != nil {
		return h, err
	}
	if tagInHeader[0] != 0x1A {
		return h, nil
	}

	buf := make([]byte, headerTagTotalSize)
	if err := sr.ReadAt(buf, headerOffset, "ID666 header"); err != nil {
		return h, err
	}

	field := func(off, size int) []byte { return buf[off-headerOffset : off-headerOffset+size] }

	h.Exists = true
	h.Title = binary.DecodeLatin1(trimPadded(field(titleOffset, titleSize)))
	h.Album = binary.DecodeLatin1(trimPadded(field(albumOffset, albumSize)))
	h.Dumper = binary.DecodeLatin1(trimPadded(field(dumperOffset, dumperSize)))
	h.Comment = binary.DecodeLatin1(trimPadded(field(commentOffset, commentSize)))
	h.Date = binary.DecodeLatin1(trimPadded(field(dateOffset, dateSize)))
	h.Artist = binary.DecodeLatin1(trimPadded(field(artistOffset, artistSize)))

	songRaw := field(songOffset, songSize)
	fadeRaw := field(fadeOffset, fadeSize)
	h.SongRaw = append([]byte{}, songRaw...)
	h.FadeRaw = append([]byte{}, fadeRaw...)

	h.TextMode = decideTextMode(h.Date, songRaw, fadeRaw)
	if h.TextMode {
		h.SongSeconds = atoiLatin1(songRaw)
		h.FadeMS = atoiLatin1(fadeRaw)
	} else {
		h.SongSeconds = clampInt(int(leUint(songRaw)), 0, 959)
		h.FadeMS = clampInt(int(leUint(fadeRaw)), 0, 59999)
	}

	return h, nil
}

// duration is the header-only duration estimate, overridden by
// the xid6 tick formula when an xid6 footer is present (spec §4.9).
func (h rawHeader) duration() float64 {
	if h.SongSeconds <= 0 {
		return 0
	}
	return math.Round(float64(h.FadeMS)/1000) + float64(h.SongSeconds)
}

// classification of one latin-1 date/song/fade byte string.
type textClass int

const (
	classText textClass = iota
	classEmpty
	classBinary
)

func classify(b []byte) textClass {
	allZero := true
	for _, c := range b {
		if c != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return classEmpty
	}
	for _, c := range b {
		if c == 0 || c == ' ' {
			continue
		}
		if (c < '0' || c > '9') && c != '/' {
			return classBinary
		}
	}
	return classText
}

// decideTextMode implements spec §4.9's binary/text disambiguation.
// The "bytes 4..7 all zero" sub-rule is part of the literal spec text
// but both its branches resolve to binary, so it never changes the
// outcome and is not evaluated here.
func decideTextMode(date string, songRaw, fadeRaw []byte) bool {
	dateBytes := []byte(date)
	dateClass := classify(dateBytes)
	if dateClass == classEmpty {
		return false
	}
	songClass := classify(songRaw)
	fadeClass := classify(fadeRaw)
	if dateClass == classText && songClass == classText && fadeClass == classText {
		return true
	}
	return false
}

func trimPadded(b []byte) []byte {
	end := len(b)
	for end > 0 && (b[end-1] == 0 || b[end-1] == ' ') {
		end--
	}
	return b[:end]
}

func atoiLatin1(b []byte) int {
	n := 0
	for _, c := range trimPadded(b) {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

func leUint(b []byte) uint32 {
	var v uint32
	for i := 0; i < len(b) && i < 4; i++ {
		v |= uint32(b[i]) << (8 * i)
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// encodeHeader serializes h's text fields plus the original song/fade
// bytes (passed through untouched - they are audio-intrinsic, not tag
// metadata) into the 163-byte ID666 region (title through artist).
func encodeHeader(h rawHeader) []byte {
	out := make([]byte, headerTagTotalSize)
	put := func(off, size int, s string) {
		copy(out[off-headerOffset:off-headerOffset+size], binary.PadLatin1(s, size, 0))
	}
	put(titleOffset, titleSize, h.Title)
	put(albumOffset, albumSize, h.Album)
	put(dumperOffset, dumperSize, h.Dumper)
	put(commentOffset, commentSize, h.Comment)
	put(dateOffset, dateSize, h.Date)
	copy(out[songOffset-headerOffset:songOffset-headerOffset+songSize], h.SongRaw)
	copy(out[fadeOffset-headerOffset:fadeOffset-headerOffset+fadeSize], h.FadeRaw)
	put(artistOffset, artistSize, h.Artist)
	return out
}

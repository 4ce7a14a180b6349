package id3v2

import (
	"bytes"
	"unicode/utf8"

	"github.com/go-tagkit/tagkit/internal/binary"
)

// Text encoding bytes (spec §4.6).
const (
	encLatin1  byte = 0
	encUTF16   byte = 1 // with BOM
	encUTF16BE byte = 2
	encUTF8    byte = 3 // v2.4 only
)

// decodeText decodes a frame's text payload according to its leading
// encoding byte.
func decodeText(data []byte, encoding byte) string {
	switch encoding {
	case encLatin1:
		return binary.DecodeLatin1(data)
	case encUTF16:
		return decodeUTF16WithBOM(data)
	case encUTF16BE:
		return binary.DecodeUTF16BE(data)
	case encUTF8:
		if utf8.Valid(data) {
			return string(data)
		}
		return string(data)
	default:
		return binary.DecodeLatin1(data)
	}
}

// decodeUTF16WithBOM dispatches on the byte-order mark; a missing BOM
// is treated as big-endian, matching the de facto behavior of taggers
// that write encoding byte 1 without one.
func decodeUTF16WithBOM(data []byte) string {
	switch {
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return binary.DecodeUTF16LE(data[2:])
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return binary.DecodeUTF16BE(data[2:])
	default:
		return binary.DecodeUTF16BE(data)
	}
}

// chooseTextEncoding picks the minimum encoding byte that preserves s,
// per spec §4.6. writeVersion is v2.3, so UTF-8 (v2.4 only) is never a
// candidate here even though decodeText can read it.
func chooseTextEncoding(s string) byte {
	if binary.IsLatin1(s) {
		return encLatin1
	}
	return encUTF16
}

// encodeText encodes s with the given encoding byte, without the
// leading encoding byte itself (callers prepend it).
func encodeText(s string, encoding byte) []byte {
	switch encoding {
	case encUTF16:
		return binary.EncodeUTF16LEWithBOM(s)
	default:
		return binary.EncodeLatin1(s, 0)
	}
}

// findNullTerminator locates the null terminator separating two text
// fields packed into one frame (e.g. TXXX's description from its
// value), honoring the double-byte null UTF-16 variants use.
func findNullTerminator(data []byte, encoding byte) int {
	switch encoding {
	case encUTF16, encUTF16BE:
		for i := 0; i+1 < len(data); i += 2 {
			if data[i] == 0 && data[i+1] == 0 {
				return i
			}
		}
		return -1
	default:
		return bytes.IndexByte(data, 0)
	}
}

func terminatorSize(encoding byte) int {
	switch encoding {
	case encUTF16, encUTF16BE:
		return 2
	default:
		return 1
	}
}

// Text codec helpers shared by ID3v1, ID3v2, and SPC700, grounded on the
// golang.org/x/text/encoding/charmap pattern used to decode legacy
// single-byte tag text (STEJLS-AudioServer's mp3/ID3v1.go decodes its
// Windows-1251 tags the same way, through x/text/encoding/charmap).
package binary

import (
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

// DecodeLatin1 converts ISO-8859-1 (Latin-1) bytes to a UTF-8 string.
// Every byte value is a valid Latin-1 code point, so this never fails.
func DecodeLatin1(b []byte) string {
	s, err := charmap.ISO8859_1.NewDecoder().String(string(b))
	if err != nil {
		// ISO8859_1 is a total mapping; String only errors on write
		// failures from the underlying transformer, which cannot
		// happen for an in-memory string. Fall back defensively.
		return string(b)
	}
	return s
}

// EncodeLatin1 converts a UTF-8 string to ISO-8859-1 bytes, truncated to
// maxLen if non-zero. Characters with no Latin-1 representation are
// replaced with '?'.
func EncodeLatin1(s string, maxLen int) []byte {
	out, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		// Best-effort: replace unencodable runes one at a time.
		var b strings.Builder
		for _, r := range s {
			if enc, err := charmap.ISO8859_1.NewEncoder().String(string(r)); err == nil {
				b.WriteString(enc)
			} else {
				b.WriteByte('?')
			}
		}
		out = b.String()
	}
	if maxLen > 0 && len(out) > maxLen {
		out = out[:maxLen]
	}
	return []byte(out)
}

// PadLatin1 encodes s as Latin-1 and pads/truncates to exactly n bytes
// using pad as the filler byte (space 0x20 or null 0x00 per format).
func PadLatin1(s string, n int, pad byte) []byte {
	enc := EncodeLatin1(s, n)
	out := make([]byte, n)
	for i := range out {
		out[i] = pad
	}
	copy(out, enc)
	return out
}

// DecodeUTF16LE decodes UTF-16LE bytes (no BOM) to a string.
func DecodeUTF16LE(b []byte) string {
	if len(b)%2 != 0 {
		b = b[:len(b)-1]
	}
	u := make([]uint16, len(b)/2)
	for i := range u {
		u[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}
	return string(utf16.Decode(u))
}

// DecodeUTF16BE decodes UTF-16BE bytes (no BOM) to a string.
func DecodeUTF16BE(b []byte) string {
	if len(b)%2 != 0 {
		b = b[:len(b)-1]
	}
	u := make([]uint16, len(b)/2)
	for i := range u {
		u[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
	}
	return string(utf16.Decode(u))
}

// EncodeUTF16LEWithBOM encodes s as UTF-16LE with a leading BOM, the
// form ID3v2 text-encoding byte 0x01 requires.
func EncodeUTF16LEWithBOM(s string) []byte {
	runes := utf16.Encode([]rune(s))
	out := make([]byte, 2+2*len(runes))
	out[0], out[1] = 0xFF, 0xFE
	for i, u := range runes {
		out[2+2*i] = byte(u)
		out[2+2*i+1] = byte(u >> 8)
	}
	return out
}

// EncodeUTF16BE encodes s as UTF-16BE without a BOM (ID3v2 encoding byte 0x02).
func EncodeUTF16BE(s string) []byte {
	runes := utf16.Encode([]rune(s))
	out := make([]byte, 2*len(runes))
	for i, u := range runes {
		out[2*i] = byte(u >> 8)
		out[2*i+1] = byte(u)
	}
	return out
}

// IsASCII reports whether s contains only 7-bit ASCII bytes.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7F {
			return false
		}
	}
	return true
}

// IsLatin1 reports whether every rune in s has a Latin-1 representation.
func IsLatin1(s string) bool {
	for _, r := range s {
		if r > 0xFF {
			return false
		}
	}
	return true
}

// Package picture maps the picture-type byte shared verbatim by FLAC's
// PICTURE block and ID3v2's APIC/PIC frames onto the format-neutral
// types.PictureType enum. Both formats borrowed the same 21-value table
// (0 "Other" through 20 "Publisher/Studio logotype"); this package is
// the one place that table is spelled out.
package picture

import "github.com/go-tagkit/tagkit/internal/types"

// maxNativeType is the highest picture-type byte either format assigns
// meaning to; anything past it round-trips as PictureUnsupported.
const maxNativeType = 20

// DecodeType converts a FLAC/APIC picture-type byte into the
// format-neutral enum, preserving the raw value as NativeCode when it
// falls outside the shared table.
func DecodeType(raw uint32) (types.PictureType, string) {
	if raw <= maxNativeType {
		return types.PictureType(raw), ""
	}
	return types.PictureUnsupported, nativeCodeFor(raw)
}

// EncodeType converts a format-neutral picture type (plus NativeCode,
// used when Type is PictureUnsupported) back into the wire byte.
func EncodeType(t types.PictureType, nativeCode string) uint32 {
	if t == types.PictureUnsupported {
		if raw, ok := parseNativeCode(nativeCode); ok {
			return raw
		}
		return 0
	}
	if int(t) <= maxNativeType {
		return uint32(t)
	}
	return 0
}

func nativeCodeFor(raw uint32) string {
	return "flac-picture-type:" + itoa(raw)
}

func parseNativeCode(code string) (uint32, bool) {
	const prefix = "flac-picture-type:"
	if len(code) <= len(prefix) || code[:len(prefix)] != prefix {
		return 0, false
	}
	var v uint32
	for _, c := range code[len(prefix):] {
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + uint32(c-'0')
	}
	return v, true
}

func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

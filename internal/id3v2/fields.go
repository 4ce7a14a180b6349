package id3v2

import (
	"bytes"
	"strings"

	"github.com/go-tagkit/tagkit/internal/binary"
	"github.com/go-tagkit/tagkit/internal/picture"
	"github.com/go-tagkit/tagkit/internal/types"
)

// frameToField and fieldToFrame are the text-frame vocabulary this
// codec knows (spec §4.6's frame table, the ordinary TIT2/TPE1/...
// single-value frames). COMM, TXXX, WXXX, APIC, and CHAP have their own
// decode/encode logic below since their payloads carry more than one
// value.
var frameToField = map[string]types.FieldKey{
	"TIT2": types.FieldTitle,
	"TPE1": types.FieldArtist,
	"TALB": types.FieldAlbum,
	"TPE2": types.FieldAlbumArtist,
	"TCOM": types.FieldComposer,
	"TCON": types.FieldGenre,
	"TRCK": types.FieldTrackNumber,
	"TPOS": types.FieldDiscNumber,
	"TCOP": types.FieldCopyright,
	"TPUB": types.FieldPublisher,
	"TPE3": types.FieldConductor,
	"TOPE": types.FieldOriginalArtist,
	"TOAL": types.FieldOriginalAlbum,
	"TYER": types.FieldReleaseYear,
	"TDRC": types.FieldReleaseDate,
}

var fieldToFrame = map[types.FieldKey]string{
	types.FieldTitle:          "TIT2",
	types.FieldArtist:         "TPE1",
	types.FieldAlbum:          "TALB",
	types.FieldAlbumArtist:    "TPE2",
	types.FieldComposer:       "TCOM",
	types.FieldGenre:          "TCON",
	types.FieldTrackNumber:    "TRCK",
	types.FieldDiscNumber:     "TPOS",
	types.FieldCopyright:      "TCOP",
	types.FieldPublisher:      "TPUB",
	types.FieldConductor:      "TPE3",
	types.FieldOriginalArtist: "TOPE",
	types.FieldOriginalAlbum:  "TOAL",
	types.FieldReleaseYear:    "TYER",
	// TDRC is formally a v2.4 frame, but frameToField already reads it
	// back into FieldReleaseDate on any version, so writing it here
	// keeps the field round-tripping instead of dropping it on a v2.3
	// write.
	types.FieldReleaseDate: "TDRC",
}

// decodeTextFrame decodes a plain single-value text frame's body
// (encoding byte + text, no terminator) into its string value.
func decodeTextFrame(data []byte) string {
	if len(data) < 1 {
		return ""
	}
	return decodeText(data[1:], data[0])
}

// encodeTextFrame encodes value with the minimum encoding that
// preserves it, prefixed with its encoding byte.
func encodeTextFrame(value string) []byte {
	enc := chooseTextEncoding(value)
	body := encodeText(value, enc)
	return append([]byte{enc}, body...)
}

// nativeCodeTXXX/WXXX/COMM key additional fields by description, since
// spec §4.6 treats same-description instances as the same field for
// upsert/delete.
func nativeCodeTXXX(desc string) string { return "TXXX:" + desc }
func nativeCodeWXXX(desc string) string { return "WXXX:" + desc }
func nativeCodeCOMM(desc string) string { return "COMM:" + desc }

// decodeTXXXFrame decodes [encoding][description\0][value].
func decodeTXXXFrame(data []byte) (description, value string, ok bool) {
	if len(data) < 1 {
		return "", "", false
	}
	encoding := data[0]
	rest := data[1:]
	nullIdx := findNullTerminator(rest, encoding)
	if nullIdx < 0 {
		return "", "", false
	}
	description = decodeText(rest[:nullIdx], encoding)
	value = decodeText(rest[nullIdx+terminatorSize(encoding):], encoding)
	return description, value, true
}

func encodeTXXXFrame(description, value string) []byte {
	enc := chooseTextEncoding(description)
	if chooseTextEncoding(value) == encUTF16 {
		enc = encUTF16 // one encoding byte covers both fields
	}
	out := []byte{enc}
	out = append(out, encodeText(description, enc)...)
	out = append(out, terminator(enc)...)
	out = append(out, encodeText(value, enc)...)
	return out
}

// decodeWXXXFrame decodes [encoding][description\0][URL]; the URL
// itself is always Latin-1 regardless of the encoding byte, which only
// governs the description.
func decodeWXXXFrame(data []byte) (description, url string, ok bool) {
	if len(data) < 1 {
		return "", "", false
	}
	encoding := data[0]
	rest := data[1:]
	nullIdx := findNullTerminator(rest, encoding)
	if nullIdx < 0 {
		return "", "", false
	}
	description = decodeText(rest[:nullIdx], encoding)
	url = binary.DecodeLatin1(rest[nullIdx+terminatorSize(encoding):])
	return description, url, true
}

func encodeWXXXFrame(description, url string) []byte {
	enc := chooseTextEncoding(description)
	out := []byte{enc}
	out = append(out, encodeText(description, enc)...)
	out = append(out, terminator(enc)...)
	out = append(out, binary.EncodeLatin1(url, 0)...)
	return out
}

// decodeCommentFrame decodes [encoding][language(3)][short description\0][text].
func decodeCommentFrame(data []byte) (language, description, text string, ok bool) {
	if len(data) < 4 {
		return "", "", "", false
	}
	encoding := data[0]
	language = string(data[1:4])
	rest := data[4:]
	nullIdx := findNullTerminator(rest, encoding)
	if nullIdx < 0 {
		return language, "", decodeText(rest, encoding), true
	}
	description = decodeText(rest[:nullIdx], encoding)
	text = decodeText(rest[nullIdx+terminatorSize(encoding):], encoding)
	return language, description, text, true
}

func encodeCommentFrame(language, description, text string) []byte {
	if len(language) != 3 {
		language = "eng"
	}
	enc := chooseTextEncoding(description)
	if chooseTextEncoding(text) == encUTF16 {
		enc = encUTF16
	}
	out := []byte{enc}
	out = append(out, language...)
	out = append(out, encodeText(description, enc)...)
	out = append(out, terminator(enc)...)
	out = append(out, encodeText(text, enc)...)
	return out
}

func terminator(encoding byte) []byte {
	if encoding == encUTF16 || encoding == encUTF16BE {
		return []byte{0, 0}
	}
	return []byte{0}
}

// decodeAPICFrame decodes the v2.3/2.4 APIC layout: [encoding][MIME\0]
// [picture type][description\0][data]. The v2.2 PIC layout instead
// packs a fixed 3-byte image format in place of the null-terminated
// MIME string and has no length prefix on either.
func decodeAPICFrame(data []byte, legacy bool) (types.Picture, bool) {
	if len(data) < 2 {
		return types.Picture{}, false
	}
	encoding := data[0]
	rest := data[1:]

	var mime string
	if legacy {
		if len(rest) < 3 {
			return types.Picture{}, false
		}
		mime = mimeFromImageFormat(string(rest[0:3]))
		rest = rest[3:]
	} else {
		nullIdx := bytes.IndexByte(rest, 0)
		if nullIdx < 0 {
			return types.Picture{}, false
		}
		mime = binary.DecodeLatin1(rest[:nullIdx])
		rest = rest[nullIdx+1:]
	}

	if len(rest) < 1 {
		return types.Picture{}, false
	}
	pictureType := rest[0]
	rest = rest[1:]

	nullIdx := findNullTerminator(rest, encoding)
	if nullIdx < 0 {
		return types.Picture{}, false
	}
	description := decodeText(rest[:nullIdx], encoding)
	picData := rest[nullIdx+terminatorSize(encoding):]

	pt, native := picture.DecodeType(uint32(pictureType))
	return types.Picture{
		Type:        pt,
		NativeCode:  native,
		MIME:        mime,
		Description: description,
		Data:        picData,
	}, true
}

// encodeAPICFrame always writes the v2.3/2.4 layout, since writeVersion is 3.
func encodeAPICFrame(p types.Picture) []byte {
	enc := chooseTextEncoding(p.Description)
	out := []byte{enc}
	out = append(out, binary.EncodeLatin1(p.MIME, 0)...)
	out = append(out, 0)
	out = append(out, byte(picture.EncodeType(p.Type, p.NativeCode)))
	out = append(out, encodeText(p.Description, enc)...)
	out = append(out, terminator(enc)...)
	out = append(out, p.Data...)
	return out
}

func mimeFromImageFormat(format string) string {
	switch strings.ToUpper(strings.TrimRight(format, "\x00")) {
	case "PNG":
		return "image/png"
	case "JPG", "JPEG":
		return "image/jpeg"
	case "GIF":
		return "image/gif"
	case "BMP":
		return "image/bmp"
	default:
		return "image/" + strings.ToLower(format)
	}
}

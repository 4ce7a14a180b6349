package picture

import (
	"fmt"

	"github.com/go-tagkit/tagkit/internal/types"
)

// DecodeBody decodes a FLAC PICTURE block body (spec §4.4): big-endian
// 32-bit type, MIME length+string, description length+string, width,
// height, color depth, colors-used, data length, data. This exact byte
// layout is also what Ogg Vorbis's METADATA_BLOCK_PICTURE comment
// carries base64-encoded (spec §4.3), so both container codecs share
// this one decoder. Width, height, color depth, and colors-used are
// read into types.Picture so a later EncodeBody can reproduce them.
func DecodeBody(body []byte) (types.Picture, error) {
	r := newFieldReader(body)

	rawType, err := r.uint32("picture type")
	if err != nil {
		return types.Picture{}, err
	}
	mime, err := r.lenPrefixedString32("MIME type")
	if err != nil {
		return types.Picture{}, err
	}
	desc, err := r.lenPrefixedString32("description")
	if err != nil {
		return types.Picture{}, err
	}
	width, err := r.uint32("width")
	if err != nil {
		return types.Picture{}, err
	}
	height, err := r.uint32("height")
	if err != nil {
		return types.Picture{}, err
	}
	depth, err := r.uint32("color depth")
	if err != nil {
		return types.Picture{}, err
	}
	colorsUsed, err := r.uint32("colors used")
	if err != nil {
		return types.Picture{}, err
	}
	dataLen, err := r.uint32("picture data length")
	if err != nil {
		return types.Picture{}, err
	}
	data, err := r.bytes(int(dataLen), "picture data")
	if err != nil {
		return types.Picture{}, err
	}

	pt, native := DecodeType(rawType)
	return types.Picture{
		Type:        pt,
		NativeCode:  native,
		MIME:        mime,
		Description: desc,
		Data:        data,
		Width:       width,
		Height:      height,
		ColorDepth:  depth,
		ColorsUsed:  colorsUsed,
	}, nil
}

// EncodeBody is the inverse of DecodeBody. Width, height, color depth,
// and colors-used are written from p's fields, zero when unset
// (spec §4.4: "may be zero on write if unknown").
func EncodeBody(p types.Picture) []byte {
	rawType := EncodeType(p.Type, p.NativeCode)

	buf := make([]byte, 0, 32+len(p.MIME)+len(p.Description)+len(p.Data))
	buf = appendUint32(buf, rawType)
	buf = appendUint32(buf, uint32(len(p.MIME)))
	buf = append(buf, p.MIME...)
	buf = appendUint32(buf, uint32(len(p.Description)))
	buf = append(buf, p.Description...)
	buf = appendUint32(buf, p.Width)
	buf = appendUint32(buf, p.Height)
	buf = appendUint32(buf, p.ColorDepth)
	buf = appendUint32(buf, p.ColorsUsed)
	buf = appendUint32(buf, uint32(len(p.Data)))
	buf = append(buf, p.Data...)
	return buf
}

func appendUint32(buf []byte, v uint32) []byte {
	return append(buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// fieldReader is a tiny bounds-checked cursor over a block body; the
// PICTURE layout is simple enough not to warrant pulling in
// internal/binary's SafeReader, which is built around io.ReaderAt
// rather than an in-memory slice already carved out by the caller.
type fieldReader struct {
	buf []byte
	off int
}

func newFieldReader(buf []byte) *fieldReader {
	return &fieldReader{buf: buf}
}

func (r *fieldReader) uint32(what string) (uint32, error) {
	b, err := r.bytes(4, what)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

func (r *fieldReader) lenPrefixedString32(what string) (string, error) {
	n, err := r.uint32(what + " length")
	if err != nil {
		return "", err
	}
	b, err := r.bytes(int(n), what)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *fieldReader) bytes(n int, what string) ([]byte, error) {
	if n < 0 || r.off+n > len(r.buf) {
		return nil, fmt.Errorf("picture: block truncated reading %s", what)
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

package vorbis

import "fmt"

// DecodeWire parses the raw Vorbis Comment payload shared byte-for-byte
// by the FLAC VORBIS_COMMENT block body and the Ogg comment packet
// (spec §4.3): a little-endian 32-bit vendor length + vendor string,
// then a little-endian 32-bit comment count, then that many
// (length+string) entries. The container codecs own locating these
// bytes; this just turns them into (vendor, comments).
func DecodeWire(data []byte) (vendor string, comments []string, err error) {
	off := 0
	vendor, off, err = readWireString(data, off, "vendor string")
	if err != nil {
		return "", nil, err
	}

	count, err := readWireUint32(data, off, "comment count")
	if err != nil {
		return "", nil, err
	}
	off += 4

	comments = make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		var c string
		c, off, err = readWireString(data, off, fmt.Sprintf("comment %d", i))
		if err != nil {
			return "", nil, err
		}
		comments = append(comments, c)
	}
	return vendor, comments, nil
}

// EncodeWire is the inverse of DecodeWire.
func EncodeWire(vendor string, comments []string) []byte {
	buf := make([]byte, 0, 8+len(vendor)+len(comments)*8)
	buf = appendWireString(buf, vendor)
	buf = appendWireUint32(buf, uint32(len(comments)))
	for _, c := range comments {
		buf = appendWireString(buf, c)
	}
	return buf
}

func readWireUint32(data []byte, off int, what string) (uint32, error) {
	if off < 0 || off+4 > len(data) {
		return 0, fmt.Errorf("vorbis: wire payload truncated reading %s", what)
	}
	b := data[off : off+4]
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

func readWireString(data []byte, off int, what string) (string, int, error) {
	n, err := readWireUint32(data, off, what+" length")
	if err != nil {
		return "", off, err
	}
	off += 4
	if off+int(n) > len(data) {
		return "", off, fmt.Errorf("vorbis: wire payload truncated reading %s", what)
	}
	return string(data[off : off+int(n)]), off + int(n), nil
}

func appendWireUint32(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendWireString(buf []byte, s string) []byte {
	buf = appendWireUint32(buf, uint32(len(s)))
	return append(buf, s...)
}

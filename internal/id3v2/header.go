// Package id3v2 implements the ID3v2 tag codec (spec §4.6): the 10-byte
// header, frame framing across versions 2.2 through 2.4, the text
// encoding table, and a StructureHelper-backed writer that always
// re-encodes as ID3v2.3, the spec's default write version.
package id3v2

import (
	"fmt"

	"github.com/go-tagkit/tagkit/internal/binary"
)

// Header flag bits (byte 5 of the 10-byte header).
const (
	flagUnsynchronisation byte = 1 << 7
	flagExtendedHeader    byte = 1 << 6
	flagExperimental      byte = 1 << 5
	flagFooter            byte = 1 << 4 // v2.4 only; this codec never writes one
)

// writeVersion is the ID3v2 minor version this codec always writes,
// per spec §4.6 ("2.3 default on write").
const writeVersion byte = 3

// header is the fixed 10-byte ID3v2 tag header.
type header struct {
	Version byte // 2, 3, or 4
	Flags   byte
	Size    uint32 // sync-safe; frames plus padding, excluding these 10 bytes
}

// readHeader parses the header at file offset 0. Returning an error
// means no ID3v2 tag is present (or it is malformed beyond recovery).
func readHeader(sr *binary.SafeReader) (header, error) {
	buf := make([]byte, 10)
	if err := sr.ReadAt(buf, 0, "ID3v2 header"); err != nil {
		return header{}, err
	}
	if string(buf[0:3]) != "ID3" {
		return header{}, fmt.Errorf("id3v2: missing ID3 magic")
	}
	version := buf[3]
	if version < 2 || version > 4 {
		return header{}, fmt.Errorf("id3v2: unsupported version 2.%d", version)
	}
	return header{
		Version: version,
		Flags:   buf[5],
		Size:    binary.DecodeSyncSafe32(buf[6:10]),
	}, nil
}

// encodeHeader serializes the ten-byte tag header for a tag body of
// size bytes, always at writeVersion.
func encodeHeader(size uint32) []byte {
	buf := make([]byte, 10)
	copy(buf[0:3], "ID3")
	buf[3] = writeVersion
	buf[4] = 0 // revision
	buf[5] = 0 // flags: no unsynchronisation, extended header, or footer
	sz := binary.EncodeSyncSafe32(size)
	copy(buf[6:10], sz[:])
	return buf
}

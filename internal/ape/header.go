// Package ape implements the APEv2 tag codec (spec §4.7): a tag block
// living at the end of the file, optionally followed by an ID3v1
// trailer, bracketed by a 32-byte header (optional) and a mandatory
// 32-byte footer.
package ape

import (
	"fmt"

	"github.com/go-tagkit/tagkit/internal/binary"
)

const (
	blockSize = 32
	magic     = "APETAGEX"
	version   = 2000
)

// Tag-level flag bits, set on the footer (and mirrored on the header
// when one is written). Bit positions follow the APEv2 format as
// published by its authors; spec.md itself only spells out the item
// flags (value type), not these.
const (
	flagHasHeader uint32 = 1 << 31
	flagIsHeader  uint32 = 1 << 29
)

// block is one decoded 32-byte header or footer.
type block struct {
	Version   uint32
	TagSize   uint32 // items + footer, excluding any header
	ItemCount uint32
	Flags     uint32
}

func readBlock(sr *binary.SafeReader, offset int64) (block, error) {
	buf := make([]byte, blockSize)
	if err := sr.ReadAt(buf, offset, "APEv2 header/footer"); err != nil {
		return block{}, err
	}
	if string(buf[0:8]) != magic {
		return block{}, fmt.Errorf("ape: missing APETAGEX magic")
	}
	return block{
		Version:   leUint32(buf[8:12]),
		TagSize:   leUint32(buf[12:16]),
		ItemCount: leUint32(buf[16:20]),
		Flags:     leUint32(buf[20:24]),
	}, nil
}

func encodeBlock(b block) []byte {
	out := make([]byte, blockSize)
	copy(out[0:8], magic)
	putLE32(out[8:12], b.Version)
	putLE32(out[12:16], b.TagSize)
	putLE32(out[16:20], b.ItemCount)
	putLE32(out[20:24], b.Flags)
	return out
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

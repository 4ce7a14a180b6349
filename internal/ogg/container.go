// Package ogg implements the Ogg container codec (spec §4.5): page
// framing, packet reassembly across continuation pages, and a
// StructureHelper-backed writer that re-pages the Vorbis comment
// packet in place, renumbering whatever pages follow it.
package ogg

import (
	"fmt"

	"github.com/go-tagkit/tagkit/internal/binary"
)

// Page header flags.
const (
	FlagContinued byte = 1 << 0 // packet continues from the previous page
	FlagBOS       byte = 1 << 1 // beginning of logical stream
	FlagEOS       byte = 1 << 2 // end of logical stream
)

const (
	headerSize  = 27
	maxSegValue = 255
)

// PageHeader is the fixed 27-byte prefix of an Ogg page, byte for byte
// (spec §4.5), minus the magic/version bytes which are implied: fixed
// on write, verified on read.
type PageHeader struct {
	Flags    byte
	Granule  int64
	Serial   uint32
	Sequence uint32
	CRC      uint32
}

// Page is one demuxed Ogg page: header, raw segment table, and the
// concatenated segment payload.
type Page struct {
	Offset  int64 // file offset of the 'O' in "OggS"
	Header  PageHeader
	Lacing  []byte
	Payload []byte
}

// Size is the page's total on-disk length: header + lacing table + payload.
func (p *Page) Size() int64 {
	return int64(headerSize+len(p.Lacing)) + int64(len(p.Payload))
}

// ReadPages demuxes every page in [0, size) from target.
func ReadPages(sr *binary.SafeReader, size int64) ([]Page, error) {
	var pages []Page
	offset := int64(0)
	for offset < size {
		p, err := readPage(sr, offset)
		if err != nil {
			return pages, err
		}
		pages = append(pages, p)
		offset += p.Size()
	}
	return pages, nil
}

func readPage(sr *binary.SafeReader, offset int64) (Page, error) {
	hdr := make([]byte, headerSize)
	if err := sr.ReadAt(hdr, offset, "ogg page header"); err != nil {
		return Page{}, err
	}
	if string(hdr[0:4]) != "OggS" {
		return Page{}, fmt.Errorf("ogg: bad page magic at offset %d", offset)
	}

	segCount := int(hdr[26])
	lacing := make([]byte, segCount)
	if segCount > 0 {
		if err := sr.ReadAt(lacing, offset+headerSize, "ogg segment table"); err != nil {
			return Page{}, err
		}
	}

	payloadLen := 0
	for _, v := range lacing {
		payloadLen += int(v)
	}
	payload := make([]byte, payloadLen)
	if payloadLen > 0 {
		if err := sr.ReadAt(payload, offset+headerSize+int64(segCount), "ogg page payload"); err != nil {
			return Page{}, err
		}
	}

	h := PageHeader{
		Flags:    hdr[5],
		Granule:  int64(leUint64(hdr[6:14])),
		Serial:   leUint32(hdr[14:18]),
		Sequence: leUint32(hdr[18:22]),
		CRC:      leUint32(hdr[22:26]),
	}

	return Page{Offset: offset, Header: h, Lacing: lacing, Payload: payload}, nil
}

// EncodePage serializes a page, computing its CRC over the assembled
// bytes with the CRC field held at zero, per spec §4.5.
func EncodePage(h PageHeader, lacing, payload []byte) []byte {
	out := make([]byte, headerSize+len(lacing)+len(payload))
	copy(out[0:4], "OggS")
	out[4] = 0 // version
	out[5] = h.Flags
	putLE64(out[6:14], uint64(h.Granule))
	putLE32(out[14:18], h.Serial)
	putLE32(out[18:22], h.Sequence)
	// out[22:26] (CRC) stays zero until computed below.
	out[26] = byte(len(lacing))
	copy(out[27:27+len(lacing)], lacing)
	copy(out[27+len(lacing):], payload)

	crc := crc32Checksum(out)
	putLE32(out[22:26], crc)
	return out
}

// RewriteHeaderFields patches a page's sequence number and CRC in
// place, recomputing the CRC over the full page bytes. Used to
// renumber pages that follow a re-paged region without re-lacing them.
func RewriteHeaderFields(pageBytes []byte, sequence uint32) {
	putLE32(pageBytes[18:22], sequence)
	putLE32(pageBytes[22:26], 0)
	crc := crc32Checksum(pageBytes)
	putLE32(pageBytes[22:26], crc)
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func leUint64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func putLE64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

// packet is one reassembled logical packet plus the index range of the
// pages (inclusive) that carried it.
type packet struct {
	Data      []byte
	StartPage int
	EndPage   int
}

// collectPackets reassembles every packet belonging to serial from an
// already-demuxed page list, in order. A packet's segments end with a
// lacing value under 255; a run of 255s continues onto the next
// segment (possibly the next page).
func collectPackets(pages []Page, serial uint32) []packet {
	var packets []packet
	var cur []byte
	curStart := -1

	for i, p := range pages {
		if p.Header.Serial != serial {
			continue
		}
		segOff := 0
		payOff := 0
		for segOff < len(p.Lacing) {
			segStart := segOff
			n := 0
			for segOff < len(p.Lacing) {
				v := p.Lacing[segOff]
				n += int(v)
				segOff++
				if v != maxSegValue {
					break
				}
			}
			if segOff == segStart {
				break
			}
			chunk := p.Payload[payOff : payOff+n]
			payOff += n
			if curStart == -1 {
				curStart = i
			}
			cur = append(cur, chunk...)

			terminal := p.Lacing[segOff-1] != maxSegValue
			if terminal {
				packets = append(packets, packet{Data: cur, StartPage: curStart, EndPage: i})
				cur = nil
				curStart = -1
			}
		}
	}
	return packets
}

// pageChunk is one page's worth of a single packet being laced.
type pageChunk struct {
	Lacing  []byte
	Payload []byte
}

// lacePages splits data into the (lacing, payload) pairs needed to
// carry it as one packet across however many pages it takes,
// terminating with a segment shorter than 255 (possibly zero-length,
// including for an empty packet) so the packet boundary is
// unambiguous even when len(data) is an exact multiple of 255.
func lacePages(data []byte) []pageChunk {
	var chunks []pageChunk
	i := 0
	n := len(data)
	for {
		var segs []byte
		start := i
		terminal := false
		for len(segs) < maxSegValue {
			rem := n - i
			if rem >= maxSegValue {
				segs = append(segs, maxSegValue)
				i += maxSegValue
			} else {
				segs = append(segs, byte(rem))
				i = n
				terminal = true
				break
			}
		}
		chunks = append(chunks, pageChunk{Lacing: segs, Payload: data[start:i]})
		if terminal {
			break
		}
	}
	return chunks
}

package spc

import (
	"fmt"

	"github.com/go-tagkit/tagkit/internal/binary"
)

// xid6 item ids (spec §4.9).
const (
	idTitle         = 0x01
	idAlbum         = 0x02
	idArtist        = 0x03
	idDumper        = 0x04
	idDate          = 0x05
	idEmulator      = 0x06
	idComments      = 0x07
	idOST           = 0x10
	idDisc          = 0x11
	idTrack         = 0x12
	idPublisher     = 0x13
	idCopyrightYear = 0x14

	idIntro = 0x30
	idLoop  = 0x31
	idEnd   = 0x32
	idFade  = 0x33
	idMute  = 0x34
	idLoopX = 0x35
	idAmp   = 0x36
)

// playbackIDs is the set of ids the SPC-specific removal policy retains.
var playbackIDs = map[byte]bool{
	idIntro: true, idLoop: true, idEnd: true, idFade: true,
	idMute: true, idLoopX: true, idAmp: true,
}

// xid6 item value types.
const (
	xtypeInline byte = 0 // value lives in the size field itself
	xtypeText   byte = 1
	xtypeInt32  byte = 4
)

type xid6Item struct {
	ID    byte
	Type  byte
	Size  uint16 // for xtypeInline, this IS the value
	Value []byte // for xtypeText/xtypeInt32
}

// readXID6 reads the extended footer starting at spcRawLength, if the
// file is long enough to carry one.
func readXID6(sr *binary.SafeReader, fileSize int64) ([]xid6Item, bool, error) {
	if fileSize <= spcRawLength {
		return nil, false, nil
	}
	hdr := make([]byte, 8)
	if err := sr.ReadAt(hdr, spcRawLength, "xid6 header"); err != nil {
		return nil, false, err
	}
	if string(hdr[0:4]) != "xid6" {
		return nil, false, nil
	}
	chunkSize := leUint32(hdr[4:8])

	body := make([]byte, chunkSize)
	if err := sr.ReadAt(body, spcRawLength+8, "xid6 body"); err != nil {
		return nil, false, err
	}

	var items []xid6Item
	offset := 0
	for offset+4 <= len(body) {
		id := body[offset]
		typ := body[offset+1]
		size := uint16(body[offset+2]) | uint16(body[offset+3])<<8
		offset += 4

		switch typ {
		case xtypeInline:
			items = append(items, xid6Item{ID: id, Type: typ, Size: size})
		case xtypeText:
			padded := int(size)
			if padded%2 != 0 {
				padded++
			}
			if offset+padded > len(body) {
				return items, true, fmt.Errorf("spc: xid6 text item runs past chunk end")
			}
			items = append(items, xid6Item{ID: id, Type: typ, Size: size, Value: append([]byte{}, body[offset:offset+int(size)]...)})
			offset += padded
		case xtypeInt32:
			if offset+4 > len(body) {
				return items, true, fmt.Errorf("spc: xid6 int item runs past chunk end")
			}
			items = append(items, xid6Item{ID: id, Type: typ, Value: append([]byte{}, body[offset:offset+4]...)})
			offset += 4
		default:
			return items, true, fmt.Errorf("spc: unknown xid6 item type %d", typ)
		}
	}
	return items, true, nil
}

func (it xid6Item) asUint32() uint32 {
	switch it.Type {
	case xtypeInline:
		return uint32(it.Size)
	case xtypeInt32:
		return leUint32(it.Value)
	default:
		return 0
	}
}

func encodeXID6Item(it xid6Item) []byte {
	switch it.Type {
	case xtypeInline:
		out := make([]byte, 4)
		out[0], out[1] = it.ID, it.Type
		out[2], out[3] = byte(it.Size), byte(it.Size>>8)
		return out
	case xtypeText:
		size := len(it.Value)
		padded := size
		if padded%2 != 0 {
			padded++
		}
		out := make([]byte, 4+padded)
		out[0], out[1] = it.ID, it.Type
		out[2], out[3] = byte(size), byte(size>>8)
		copy(out[4:], it.Value)
		return out
	case xtypeInt32:
		out := make([]byte, 8)
		out[0], out[1] = it.ID, it.Type
		out[2], out[3] = 4, 0
		copy(out[4:8], it.Value)
		return out
	default:
		return nil
	}
}

func encodeXID6(items []xid6Item) []byte {
	var body []byte
	for _, it := range items {
		body = append(body, encodeXID6Item(it)...)
	}
	out := make([]byte, 8+len(body))
	copy(out[0:4], "xid6")
	putLEUint32(out[4:8], uint32(len(body)))
	copy(out[8:], body)
	return out
}

func leUint32(b []byte) uint32 {
	var v uint32
	for i := 0; i < len(b) && i < 4; i++ {
		v |= uint32(b[i]) << (8 * i)
	}
	return v
}

func putLEUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func int32Value(v uint32) []byte {
	out := make([]byte, 4)
	putLEUint32(out, v)
	return out
}

// xid6Duration computes the tick-based duration spec §4.9 describes
// when playback-control items are present.
func xid6Duration(items []xid6Item) (float64, bool) {
	var intro, loop, end, fade, loopx uint32
	var haveAny bool
	for _, it := range items {
		switch it.ID {
		case idIntro:
			intro, haveAny = it.asUint32(), true
		case idLoop:
			loop, haveAny = it.asUint32(), true
		case idEnd:
			end, haveAny = it.asUint32(), true
		case idFade:
			fade, haveAny = it.asUint32(), true
		case idLoopX:
			loopx = it.asUint32()
		}
	}
	if !haveAny {
		return 0, false
	}
	lx := loopx
	if lx > 9 {
		lx = 9
	}
	loopTicks := uint64(loop) * uint64(lx)
	if loopTicks > 383_999_999 {
		loopTicks = 383_999_999
	}
	ticks := uint64(intro) + loopTicks + uint64(end) + uint64(fade)
	const ticksPerSecond = 64000
	return float64(ticks) / ticksPerSecond, true
}

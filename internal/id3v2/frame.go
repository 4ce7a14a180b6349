package id3v2

import (
	"github.com/go-tagkit/tagkit/internal/binary"
)

// frame is one decoded ID3v2 frame. ID is always normalized to its
// 4-character v2.3/2.4 form (idTable below); Legacy records that the
// source frame used the v2.2 3-character layout, since a couple of
// frame bodies (PIC vs APIC) are shaped differently between the two.
type frame struct {
	ID     string
	Data   []byte
	Legacy bool
}

// idTable maps v2.2's 3-character frame ids onto their v2.3/2.4
// equivalents, for the common frames this codec understands. A v2.2 id
// with no entry here round-trips unnormalized as an opaque additional
// field.
var idTable = map[string]string{
	"TT2": "TIT2", "TP1": "TPE1", "TP2": "TPE2", "TP3": "TPE3",
	"TAL": "TALB", "TYE": "TYER", "TRK": "TRCK", "TPA": "TPOS",
	"TCM": "TCOM", "TCO": "TCON", "TCR": "TCOP", "TPB": "TPUB",
	"TOA": "TOPE", "TOT": "TOAL",
	"COM": "COMM", "TXX": "TXXX", "WXX": "WXXX", "PIC": "APIC",
}

func normalizeFrameID(id string) (string, bool) {
	if len(id) != 3 {
		return id, false
	}
	if norm, ok := idTable[id]; ok {
		return norm, true
	}
	return id, false
}

// extendedHeaderLen reads the extended header (if present) at offset
// and returns how many bytes to skip to reach the first frame,
// measured in the same way the teacher's parseID3v2 does: v2.4's size
// field covers the whole extended header including itself; v2.3's
// covers everything after the 4-byte size field.
func extendedHeaderLen(sr *binary.SafeReader, offset int64, version byte) (int64, error) {
	buf := make([]byte, 4)
	if err := sr.ReadAt(buf, offset, "extended header size"); err != nil {
		return 0, err
	}
	if version == 4 {
		return int64(binary.DecodeSyncSafe32(buf)), nil
	}
	return int64(be32(buf)) + 4, nil
}

// removeUnsynchronisation strips every 0x00 byte that follows a 0xFF
// byte, undoing the scheme ID3v2's unsynchronisation flag applies to
// keep frame bytes from producing an MPEG sync pattern.
func removeUnsynchronisation(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		out = append(out, b[i])
		if b[i] == 0xFF && i+1 < len(b) && b[i+1] == 0x00 {
			i++
		}
	}
	return out
}

// readFrames walks the frame region of an already-parsed header,
// stopping at the first padding (null ID) byte or the declared tag
// end, whichever comes first. framesEnd is the offset where padding
// begins, letting the caller measure how much padding the tag carried.
func readFrames(sr *binary.SafeReader, h header) (frames []frame, framesEnd int64, err error) {
	offset := int64(10)
	if h.Flags&flagExtendedHeader != 0 {
		skip, err := extendedHeaderLen(sr, offset, h.Version)
		if err != nil {
			return nil, offset, err
		}
		offset += skip
	}
	tagEnd := int64(10) + int64(h.Size)

	headerLen := int64(10)
	if h.Version == 2 {
		headerLen = 6
	}

	for offset+headerLen <= tagEnd {
		hdr := make([]byte, headerLen)
		if err := sr.ReadAt(hdr, offset, "ID3v2 frame header"); err != nil {
			break
		}
		if hdr[0] == 0 {
			break
		}

		var id string
		var size uint32
		if h.Version == 2 {
			id = string(hdr[0:3])
			size = uint32(hdr[3])<<16 | uint32(hdr[4])<<8 | uint32(hdr[5])
		} else {
			id = string(hdr[0:4])
			if h.Version == 4 {
				size = binary.DecodeSyncSafe32(hdr[4:8])
			} else {
				size = be32(hdr[4:8])
			}
		}

		data := make([]byte, size)
		if size > 0 {
			if err := sr.ReadAt(data, offset+headerLen, "ID3v2 frame data"); err != nil {
				break
			}
		}
		if h.Flags&flagUnsynchronisation != 0 {
			data = removeUnsynchronisation(data)
		}

		norm, legacy := normalizeFrameID(id)
		frames = append(frames, frame{ID: norm, Data: data, Legacy: legacy})
		offset += headerLen + int64(size)
	}

	return frames, offset, nil
}

// encodeFrame serializes one frame at writeVersion (2.3): 4-byte id,
// 4-byte plain (non-sync-safe) big-endian size, 2-byte flags (always
// zero), data. Only v2.4 frame sizes are sync-safe; the tag header's
// size field is sync-safe in every version, which is what
// encodeHeader handles separately.
func encodeFrame(id string, data []byte) []byte {
	out := make([]byte, 10+len(data))
	copy(out[0:4], id)
	out[4], out[5], out[6], out[7] = byte(len(data)>>24), byte(len(data)>>16), byte(len(data)>>8), byte(len(data))
	out[8], out[9] = 0, 0
	copy(out[10:], data)
	return out
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

package id3v2

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/go-tagkit/tagkit/internal/types"
)

// decodeCHAPFrame decodes one CHAP frame body (the ID3v2 chapter frame
// addendum, not part of the core ID3v2 spec but carried the same way
// audiobook taggers use it): a null-terminated element id, big-endian
// start/end times in milliseconds, two offset fields usually left at
// 0xFFFFFFFF, then an embedded TIT2 sub-frame for the title.
func decodeCHAPFrame(data []byte) (startMS, endMS int64, title string, ok bool) {
	nullIdx := bytes.IndexByte(data, 0)
	if nullIdx < 0 {
		return 0, 0, "", false
	}
	rest := data[nullIdx+1:]
	if len(rest) < 16 {
		return 0, 0, "", false
	}
	startMS = int64(be32(rest[0:4]))
	endMS = int64(be32(rest[4:8]))

	sub := rest[16:]
	if len(sub) >= 10 && string(sub[0:4]) == "TIT2" {
		size := int64(be32(sub[4:8])) // CHAP sub-frames use plain, non-sync-safe sizes
		if int64(len(sub)) >= 10+size {
			title = decodeTextFrame(sub[10 : 10+size])
		}
	}
	return startMS, endMS, title, true
}

// encodeCHAPFrame is the inverse of decodeCHAPFrame; offset fields are
// written as 0xFFFFFFFF (unused) per convention.
func encodeCHAPFrame(elementID string, ch types.Chapter) []byte {
	title := ch.Title
	if title == "" {
		title = ch.Subtitle
	}
	titleFrame := encodeFrame("TIT2", encodeTextFrame(title))

	out := make([]byte, 0, len(elementID)+1+16+len(titleFrame))
	out = append(out, elementID...)
	out = append(out, 0)
	out = appendBE32(out, uint32(ch.StartMS))
	out = appendBE32(out, uint32(ch.EndMS))
	out = appendBE32(out, 0xFFFFFFFF)
	out = appendBE32(out, 0xFFFFFFFF)
	out = append(out, titleFrame...)
	return out
}

// encodeCTOCFrame lists every chapter element id as a single top-level,
// ordered table of contents, the form players expect alongside CHAP
// frames.
func encodeCTOCFrame(elementIDs []string) []byte {
	out := []byte("toc\x00")
	out = append(out, 0x03) // top-level + ordered
	out = append(out, byte(len(elementIDs)))
	for _, id := range elementIDs {
		out = append(out, id...)
		out = append(out, 0)
	}
	return out
}

// decodeChapters turns the raw CHAP frame bodies collected during the
// frame walk into a chapter list, stable-sorted by start time.
func decodeChapters(chapFrames [][]byte) []types.Chapter {
	type decoded struct {
		startMS, endMS int64
		title          string
	}
	var all []decoded
	for _, data := range chapFrames {
		startMS, endMS, title, ok := decodeCHAPFrame(data)
		if !ok {
			continue
		}
		all = append(all, decoded{startMS, endMS, title})
	}
	slices.SortStableFunc(all, func(a, b decoded) int {
		return cmp.Compare(a.startMS, b.startMS)
	})

	chapters := make([]types.Chapter, len(all))
	for i, d := range all {
		chapters[i] = types.Chapter{StartMS: d.startMS, EndMS: d.endMS, Title: d.title}
	}
	return chapters
}

// encodeChapters produces the CHAP frames (plus a trailing CTOC) for
// chapters, in order.
func encodeChapters(chapters []types.Chapter) [][]byte {
	if len(chapters) == 0 {
		return nil
	}
	var frames [][]byte
	var ids []string
	for i, ch := range chapters {
		id := fmt.Sprintf("chp%d", i)
		ids = append(ids, id)
		frames = append(frames, encodeFrame("CHAP", encodeCHAPFrame(id, ch)))
	}
	frames = append(frames, encodeFrame("CTOC", encodeCTOCFrame(ids)))
	return frames
}

func appendBE32(buf []byte, v uint32) []byte {
	return append(buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

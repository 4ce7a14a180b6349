package id3v2

import (
	"strings"

	"github.com/go-tagkit/tagkit/internal/binary"
	"github.com/go-tagkit/tagkit/internal/codec"
	"github.com/go-tagkit/tagkit/internal/registry"
	"github.com/go-tagkit/tagkit/internal/structure"
	"github.com/go-tagkit/tagkit/internal/types"
)

func init() {
	registry.Register(types.FormatMP3, Codec{})
}

// Codec implements codec.Codec for types.TagTypeID3v2, a tag region
// living at the start of the file (MP3 or otherwise). It reads all of
// v2.2 through v2.4 but always writes v2.3, per spec §4.6.
type Codec struct{}

func (Codec) TagType() types.TagType { return types.TagTypeID3v2 }

func (Codec) Read(target codec.Target, size int64, path string) (*codec.ReadOutcome, error) {
	sr := binary.NewSafeReader(target, size, path)
	outcome := &codec.ReadOutcome{}

	hdr, err := readHeader(sr)
	if err != nil {
		if info, perr := probeAudio(sr, 0, size); perr == nil {
			outcome.Audio = info
		}
		return outcome, nil
	}

	frames, _, err := readFrames(sr, hdr)
	if err != nil {
		return nil, err
	}

	tag := types.NewTagData()
	var chapFrames [][]byte

	for _, f := range frames {
		switch f.ID {
		case "APIC":
			if pic, ok := decodeAPICFrame(f.Data, f.Legacy); ok {
				tag.Pictures = append(tag.Pictures, pic)
			} else {
				outcome.Warnings = append(outcome.Warnings, types.Warning{Stage: "id3v2", Message: "malformed APIC frame"})
			}
		case "CHAP":
			chapFrames = append(chapFrames, f.Data)
		case "CTOC":
			// chapter order is re-derived from CHAP start times
		case "COMM":
			language, desc, text, ok := decodeCommentFrame(f.Data)
			if !ok {
				outcome.Warnings = append(outcome.Warnings, types.Warning{Stage: "id3v2", Message: "malformed COMM frame"})
				continue
			}
			if desc == "" {
				tag.Set(types.FieldComment, text)
			} else {
				tag.UpsertAdditional(types.AdditionalField{
					TagType: types.TagTypeID3v2, NativeCode: nativeCodeCOMM(desc), Value: text, Language: language,
				})
			}
		case "TXXX":
			desc, value, ok := decodeTXXXFrame(f.Data)
			if !ok {
				outcome.Warnings = append(outcome.Warnings, types.Warning{Stage: "id3v2", Message: "malformed TXXX frame"})
				continue
			}
			tag.UpsertAdditional(types.AdditionalField{TagType: types.TagTypeID3v2, NativeCode: nativeCodeTXXX(desc), Value: value})
		case "WXXX":
			desc, url, ok := decodeWXXXFrame(f.Data)
			if !ok {
				outcome.Warnings = append(outcome.Warnings, types.Warning{Stage: "id3v2", Message: "malformed WXXX frame"})
				continue
			}
			tag.UpsertAdditional(types.AdditionalField{TagType: types.TagTypeID3v2, NativeCode: nativeCodeWXXX(desc), Value: url})
		default:
			if field, ok := frameToField[f.ID]; ok {
				tag.Set(field, decodeTextFrame(f.Data))
			} else {
				tag.UpsertAdditional(types.AdditionalField{TagType: types.TagTypeID3v2, NativeCode: f.ID, BinaryValue: f.Data})
			}
		}
	}

	if len(chapFrames) > 0 {
		tag.Chapters = decodeChapters(chapFrames)
	}

	outcome.Exists = true
	outcome.Tag = tag

	if info, perr := probeAudio(sr, framesAbsoluteEnd(hdr), size); perr == nil {
		outcome.Audio = info
	} else {
		outcome.Warnings = append(outcome.Warnings, types.Warning{Stage: "id3v2", Message: perr.Error()})
	}

	return outcome, nil
}

func framesAbsoluteEnd(hdr header) int64 {
	return 10 + int64(hdr.Size)
}

func (c Codec) Write(target codec.Target, size int64, path string, current, delta *types.TagData, opts codec.WriteOptions) (int64, error) {
	merged := codec.Merge(current, delta)
	return c.writeTag(target, size, path, merged, opts)
}

// Remove clears every frame this codec owns. Unlike Ogg's mandatory
// comment packet or SPC's playback-control ids, ID3v2 has nothing that
// must survive removal, so clearing means writing an empty tag (or
// dropping it to a bare, zero-size header).
func (c Codec) Remove(target codec.Target, size int64, path string) (int64, error) {
	return c.writeTag(target, size, path, types.NewTagData(), codec.WriteOptions{EnablePadding: true})
}

func (c Codec) writeTag(target codec.Target, size int64, path string, tag *types.TagData, opts codec.WriteOptions) (int64, error) {
	sr := binary.NewSafeReader(target, size, path)

	var oldTagSize int64
	var oldFramesSize int64
	hdr, err := readHeader(sr)
	tagExists := err == nil
	if tagExists {
		_, framesEnd, ferr := readFrames(sr, hdr)
		if ferr != nil {
			return size, ferr
		}
		oldTagSize = 10 + int64(hdr.Size)
		oldFramesSize = framesEnd - 10
	}

	newFrames := encodeAllFrames(tag)
	var newFramesBytes []byte
	for _, f := range newFrames {
		newFramesBytes = append(newFramesBytes, f...)
	}

	var newPaddingLen int64
	if opts.EnablePadding && tagExists {
		oldPaddingLen := oldTagSize - 10 - oldFramesSize
		if oldPaddingLen < 0 {
			oldPaddingLen = 0
		}
		netDelta := int64(len(newFramesBytes)) - oldFramesSize
		newPaddingLen = oldPaddingLen - netDelta
		if newPaddingLen < 0 {
			newPaddingLen = 0
		}
	}

	newTagBody := append(newFramesBytes, make([]byte, newPaddingLen)...)
	newTagBytes := append(encodeHeader(uint32(len(newTagBody))), newTagBody...)

	h := structure.New()
	const zoneName = "tag"
	h.RegisterZone(types.Zone{Name: zoneName, Offset: 0, Size: oldTagSize})

	return h.Commit(target, size, map[string][]byte{zoneName: newTagBytes})
}

// encodeAllFrames serializes every piece of tag this codec owns into
// ID3v2.3 frames: mapped text frames, COMM (default-description
// comment plus description-keyed additional comments), TXXX/WXXX
// additional fields, unknown frames passed through by native code,
// pictures, and chapters.
func encodeAllFrames(tag *types.TagData) [][]byte {
	var frames [][]byte

	for _, field := range types.OrderedFieldKeys {
		id, ok := fieldToFrame[field]
		if !ok {
			continue
		}
		if v, ok := tag.Get(field); ok && v != "" {
			frames = append(frames, encodeFrame(id, encodeTextFrame(v)))
		}
	}
	if v, ok := tag.Get(types.FieldComment); ok && v != "" {
		frames = append(frames, encodeFrame("COMM", encodeCommentFrame("eng", "", v)))
	}

	for _, af := range tag.AdditionalFields() {
		if af.TagType != types.TagTypeID3v2 {
			continue
		}
		switch {
		case strings.HasPrefix(af.NativeCode, "TXXX:"):
			frames = append(frames, encodeFrame("TXXX", encodeTXXXFrame(strings.TrimPrefix(af.NativeCode, "TXXX:"), af.Value)))
		case strings.HasPrefix(af.NativeCode, "WXXX:"):
			frames = append(frames, encodeFrame("WXXX", encodeWXXXFrame(strings.TrimPrefix(af.NativeCode, "WXXX:"), af.Value)))
		case strings.HasPrefix(af.NativeCode, "COMM:"):
			frames = append(frames, encodeFrame("COMM", encodeCommentFrame(af.Language, strings.TrimPrefix(af.NativeCode, "COMM:"), af.Value)))
		default:
			frames = append(frames, encodeFrame(af.NativeCode, af.BinaryValue))
		}
	}

	for _, p := range tag.Pictures {
		frames = append(frames, encodeFrame("APIC", encodeAPICFrame(p)))
	}

	frames = append(frames, encodeChapters(tag.Chapters)...)

	return frames
}

var _ codec.Codec = Codec{}

package ogg

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/go-tagkit/tagkit/internal/binary"
	"github.com/go-tagkit/tagkit/internal/codec"
	"github.com/go-tagkit/tagkit/internal/picture"
	"github.com/go-tagkit/tagkit/internal/registry"
	"github.com/go-tagkit/tagkit/internal/structure"
	"github.com/go-tagkit/tagkit/internal/types"
	"github.com/go-tagkit/tagkit/internal/vorbis"
)

func init() {
	registry.Register(types.FormatOgg, Codec{})
}

// pictureCommentKey is the non-standard Vorbis Comment key Ogg Vorbis
// uses to carry pictures, since the comment header has no native
// picture slot (spec §4.3): its decoded value is base64 text whose
// decoded bytes are a FLAC PICTURE block body (spec §4.4).
const pictureCommentKey = "METADATA_BLOCK_PICTURE"

// Codec implements codec.Codec for types.TagTypeVorbisComment carried
// as the comment packet of an Ogg Vorbis logical bitstream.
type Codec struct{}

func (Codec) TagType() types.TagType { return types.TagTypeVorbisComment }

// primarySerial returns the serial number of the first beginning-of-
// stream page, or the first page's serial if none is flagged BOS.
func primarySerial(pages []Page) uint32 {
	for _, p := range pages {
		if p.Header.Flags&FlagBOS != 0 {
			return p.Header.Serial
		}
	}
	if len(pages) > 0 {
		return pages[0].Header.Serial
	}
	return 0
}

// splitPictureComments separates METADATA_BLOCK_PICTURE entries
// (case-insensitive key) from the rest, which vorbis.Decode and
// DecodeChapters handle.
func splitPictureComments(comments []string) (rest []string, pictureValues []string) {
	for _, c := range comments {
		eq := strings.IndexByte(c, '=')
		if eq < 0 {
			rest = append(rest, c)
			continue
		}
		key := strings.ToUpper(strings.TrimSpace(c[:eq]))
		if key == pictureCommentKey {
			pictureValues = append(pictureValues, c[eq+1:])
			continue
		}
		rest = append(rest, c)
	}
	return rest, pictureValues
}

func (Codec) Read(target codec.Target, size int64, path string) (*codec.ReadOutcome, error) {
	sr := binary.NewSafeReader(target, size, path)
	pages, err := ReadPages(sr, size)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("ogg: no pages found")
	}

	outcome := &codec.ReadOutcome{}
	serial := primarySerial(pages)
	packets := collectPackets(pages, serial)

	if len(packets) > 0 {
		if info, err := decodeIdentification(packets[0].Data); err == nil {
			info.Duration = durationFromGranule(pages, serial, info.SampleRate)
			outcome.Audio = info
		} else {
			outcome.Warnings = append(outcome.Warnings, types.Warning{Stage: "ogg", Message: err.Error()})
		}
	}

	if len(packets) < 2 {
		return outcome, nil
	}
	commentPacket := packets[1].Data
	if len(commentPacket) < 7 || commentPacket[0] != 0x03 || string(commentPacket[1:7]) != "vorbis" {
		outcome.Warnings = append(outcome.Warnings, types.Warning{Stage: "ogg", Message: "packet 1 is not a Vorbis comment header"})
		return outcome, nil
	}

	raw := commentPacket[7:]
	wirePayload := raw
	if len(raw) > 0 && raw[len(raw)-1] == 0x01 {
		wirePayload = raw[:len(raw)-1]
	} else {
		outcome.Warnings = append(outcome.Warnings, types.Warning{Stage: "ogg", Message: "comment packet missing trailing framing bit"})
	}

	vendor, comments, err := vorbis.DecodeWire(wirePayload)
	if err != nil {
		outcome.Warnings = append(outcome.Warnings, types.Warning{Stage: "ogg", Message: err.Error()})
		return outcome, nil
	}

	textComments, pictureValues := splitPictureComments(comments)
	tag, warnings := vorbis.Decode(vendor, textComments)
	outcome.Warnings = append(outcome.Warnings, warnings...)
	tag.Chapters = vorbis.DecodeChapters(textComments)

	for _, v := range pictureValues {
		raw, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			outcome.Warnings = append(outcome.Warnings, types.Warning{Stage: "ogg", Message: "bad METADATA_BLOCK_PICTURE base64: " + err.Error()})
			continue
		}
		pic, err := picture.DecodeBody(raw)
		if err != nil {
			outcome.Warnings = append(outcome.Warnings, types.Warning{Stage: "ogg", Message: err.Error()})
			continue
		}
		tag.Pictures = append(tag.Pictures, pic)
	}

	outcome.Exists = true
	outcome.Tag = tag
	return outcome, nil
}

func (c Codec) Write(target codec.Target, size int64, path string, current, delta *types.TagData, _ codec.WriteOptions) (int64, error) {
	merged := codec.Merge(current, delta)
	return c.writeTag(target, size, path, merged)
}

// Remove clears the comment packet's content down to an empty vendor
// string and no comments: unlike FLAC's VORBIS_COMMENT block, the Ogg
// Vorbis bitstream requires exactly three header packets, so the
// comment packet itself cannot be removed, only emptied.
func (c Codec) Remove(target codec.Target, size int64, path string) (int64, error) {
	return c.writeTag(target, size, path, types.NewTagData())
}

func (c Codec) writeTag(target codec.Target, size int64, path string, tag *types.TagData) (int64, error) {
	sr := binary.NewSafeReader(target, size, path)
	pages, err := ReadPages(sr, size)
	if err != nil {
		return size, err
	}
	if len(pages) == 0 {
		return size, fmt.Errorf("ogg: no pages found")
	}

	serial := primarySerial(pages)
	packets := collectPackets(pages, serial)
	if len(packets) < 2 {
		return size, fmt.Errorf("ogg: no comment packet found")
	}
	startPage, endPage := packets[1].StartPage, packets[1].EndPage

	vendor, comments := vorbis.Encode(tag)
	for _, p := range tag.Pictures {
		comments = append(comments, pictureCommentKey+"="+base64.StdEncoding.EncodeToString(picture.EncodeBody(p)))
	}
	wirePayload := vorbis.EncodeWire(vendor, comments)

	packetBytes := make([]byte, 0, 7+len(wirePayload)+1)
	packetBytes = append(packetBytes, 0x03)
	packetBytes = append(packetBytes, "vorbis"...)
	packetBytes = append(packetBytes, wirePayload...)
	packetBytes = append(packetBytes, 0x01) // framing bit

	chunks := lacePages(packetBytes)

	firstPage := pages[startPage]
	newPagesBytes := make([]byte, 0, len(packetBytes)+len(chunks)*headerSize)
	seq := firstPage.Header.Sequence
	for i, ch := range chunks {
		flags := byte(0)
		if i > 0 {
			flags = FlagContinued
		}
		h := PageHeader{
			Flags:    flags,
			Granule:  firstPage.Header.Granule,
			Serial:   serial,
			Sequence: seq,
		}
		newPagesBytes = append(newPagesBytes, EncodePage(h, ch.Lacing, ch.Payload)...)
		seq++
	}

	oldRangeStart := pages[startPage].Offset
	oldRangeEnd := pages[endPage].Offset + pages[endPage].Size()
	oldRangeSize := oldRangeEnd - oldRangeStart

	h := structure.New()
	const zoneName = "commentpages"
	h.RegisterZone(types.Zone{Name: zoneName, Offset: oldRangeStart, Size: oldRangeSize})

	newSize, err := h.Commit(target, size, map[string][]byte{zoneName: newPagesBytes})
	if err != nil {
		return size, err
	}

	oldPageCount := endPage - startPage + 1
	newPageCount := len(chunks)
	seqDelta := newPageCount - oldPageCount
	byteDelta := int64(len(newPagesBytes)) - oldRangeSize

	if seqDelta != 0 {
		if err := renumberFollowingPages(target, pages, serial, endPage, byteDelta, seqDelta); err != nil {
			return newSize, err
		}
	}

	return newSize, nil
}

// renumberFollowingPages patches the sequence number and CRC of every
// page after afterIdx that belongs to serial, whose bytes are
// otherwise unchanged but have shifted by byteDelta and whose sequence
// number must shift by seqDelta to stay contiguous with the rebuilt
// comment pages.
func renumberFollowingPages(target codec.Target, pages []Page, serial uint32, afterIdx int, byteDelta int64, seqDelta int) error {
	for i := afterIdx + 1; i < len(pages); i++ {
		p := pages[i]
		if p.Header.Serial != serial {
			continue
		}
		newOffset := p.Offset + byteDelta
		pageLen := p.Size()
		buf := make([]byte, pageLen)
		if _, err := target.ReadAt(buf, newOffset); err != nil {
			return fmt.Errorf("ogg: read page for renumbering at %d: %w", newOffset, err)
		}
		newSeq := uint32(int64(p.Header.Sequence) + int64(seqDelta))
		RewriteHeaderFields(buf, newSeq)
		if _, err := target.WriteAt(buf, newOffset); err != nil {
			return fmt.Errorf("ogg: write renumbered page at %d: %w", newOffset, err)
		}
	}
	return nil
}

var _ codec.Codec = Codec{}

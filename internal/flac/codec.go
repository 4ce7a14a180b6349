// Package flac implements the FLAC container codec (spec §4.4): magic
// byte verification, metadata-block framing, STREAMINFO-derived audio
// properties, and a StructureHelper-backed writer for the
// VORBIS_COMMENT and PICTURE blocks. CUESHEET and APPLICATION blocks
// round-trip untouched as opaque additional fields rather than being
// decoded into chapters, since the Auphonic Vorbis Comment convention
// (internal/vorbis) is this codec's one chapter source of truth.
package flac

import (
	"fmt"

	"github.com/go-tagkit/tagkit/internal/binary"
	"github.com/go-tagkit/tagkit/internal/codec"
	"github.com/go-tagkit/tagkit/internal/registry"
	"github.com/go-tagkit/tagkit/internal/structure"
	"github.com/go-tagkit/tagkit/internal/types"
	"github.com/go-tagkit/tagkit/internal/vorbis"
)

func init() {
	registry.Register(types.FormatFLAC, Codec{})
}

// Metadata block types (spec §4.4).
const (
	blockTypeStreamInfo    = 0
	blockTypePadding       = 1
	blockTypeApplication   = 2
	blockTypeSeekTable     = 3
	blockTypeVorbisComment = 4
	blockTypeCueSheet      = 5
	blockTypePicture       = 6
)

// block is one metadata block as located by walkBlocks.
type block struct {
	HeaderOffset int64
	Type         uint8
	Body         []byte
	IsLast       bool
}

// Codec implements codec.Codec for types.TagTypeVorbisComment carried
// inside a FLAC container.
type Codec struct{}

func (Codec) TagType() types.TagType { return types.TagTypeVorbisComment }

func verifyMagic(sr *binary.SafeReader) error {
	magic := make([]byte, 4)
	if err := sr.ReadAt(magic, 0, "FLAC magic bytes"); err != nil {
		return err
	}
	if string(magic) != "fLaC" {
		return fmt.Errorf("flac: bad magic bytes")
	}
	return nil
}

// walkBlocks iterates the metadata-block chain starting right after the
// magic bytes, stopping once a block carries the last-block flag (or
// the file runs out first).
func walkBlocks(sr *binary.SafeReader, size int64) ([]block, error) {
	var blocks []block
	offset := int64(4)
	for offset < size {
		header, err := binary.Read[uint32](sr, offset, "metadata block header")
		if err != nil {
			return blocks, fmt.Errorf("flac: read block header at %d: %w", offset, err)
		}

		isLast := (header >> 31) == 1
		blockType := uint8((header >> 24) & 0x7F)
		blockLength := int64(header & 0x00FFFFFF)

		body := make([]byte, blockLength)
		if blockLength > 0 {
			if err := sr.ReadAt(body, offset+4, "metadata block body"); err != nil {
				return blocks, fmt.Errorf("flac: read block body at %d: %w", offset+4, err)
			}
		}

		blocks = append(blocks, block{HeaderOffset: offset, Type: blockType, Body: body, IsLast: isLast})

		offset += 4 + blockLength
		if isLast {
			break
		}
	}
	return blocks, nil
}

func packBlock(blockType uint8, body []byte, isLast bool) []byte {
	length := uint32(len(body))
	header := length & 0x00FFFFFF
	header |= uint32(blockType&0x7F) << 24
	if isLast {
		header |= 1 << 31
	}
	out := make([]byte, 4+len(body))
	out[0] = byte(header >> 24)
	out[1] = byte(header >> 16)
	out[2] = byte(header >> 8)
	out[3] = byte(header)
	copy(out[4:], body)
	return out
}

func opaqueNativeCode(blockType uint8) string {
	switch blockType {
	case blockTypeCueSheet:
		return "CUESHEET"
	case blockTypeApplication:
		return "APPLICATION"
	default:
		return fmt.Sprintf("BLOCK%d", blockType)
	}
}

// Read decodes STREAMINFO, the VORBIS_COMMENT block (plus the Auphonic
// chapter comments layered on top of it), and every PICTURE block.
// CUESHEET/APPLICATION blocks surface as opaque additional fields so a
// write that doesn't touch them round-trips their bytes unchanged.
func (Codec) Read(target codec.Target, size int64, path string) (*codec.ReadOutcome, error) {
	sr := binary.NewSafeReader(target, size, path)
	if err := verifyMagic(sr); err != nil {
		return nil, err
	}

	blocks, err := walkBlocks(sr, size)
	if err != nil {
		return nil, err
	}

	outcome := &codec.ReadOutcome{}
	var vendor string
	var comments []string
	var haveComment bool
	var pictures []types.Picture
	var opaque []types.AdditionalField

	for _, b := range blocks {
		switch b.Type {
		case blockTypeStreamInfo:
			info, err := decodeStreamInfo(b.Body, size)
			if err != nil {
				outcome.Warnings = append(outcome.Warnings, types.Warning{
					Stage: "flac", Message: err.Error(), Offset: b.HeaderOffset,
				})
				continue
			}
			outcome.Audio = info

		case blockTypeVorbisComment:
			v, c, err := vorbis.DecodeWire(b.Body)
			if err != nil {
				outcome.Warnings = append(outcome.Warnings, types.Warning{
					Stage: "flac", Message: err.Error(), Offset: b.HeaderOffset,
				})
				continue
			}
			vendor, comments, haveComment = v, c, true

		case blockTypePicture:
			pic, err := decodePictureBody(b.Body)
			if err != nil {
				outcome.Warnings = append(outcome.Warnings, types.Warning{
					Stage: "flac", Message: err.Error(), Offset: b.HeaderOffset,
				})
				continue
			}
			pictures = append(pictures, pic)

		case blockTypeCueSheet, blockTypeApplication:
			opaque = append(opaque, types.AdditionalField{
				TagType:     types.TagTypeVorbisComment,
				NativeCode:  opaqueNativeCode(b.Type),
				BinaryValue: b.Body,
			})
		}
	}

	if !haveComment && len(pictures) == 0 && len(opaque) == 0 {
		return outcome, nil
	}

	tag := types.NewTagData()
	if haveComment {
		decoded, warnings := vorbis.Decode(vendor, comments)
		outcome.Warnings = append(outcome.Warnings, warnings...)
		decoded.Chapters = vorbis.DecodeChapters(comments)
		tag = decoded
	}
	tag.Pictures = pictures
	for _, f := range opaque {
		tag.UpsertAdditional(f)
	}

	outcome.Exists = true
	outcome.Tag = tag
	return outcome, nil
}

func (c Codec) Write(target codec.Target, size int64, path string, current, delta *types.TagData, opts codec.WriteOptions) (int64, error) {
	merged := codec.Merge(current, delta)
	return c.writeTag(target, size, path, merged, opts)
}

// Remove clears the comment and picture blocks, leaving STREAMINFO and
// any CUESHEET/APPLICATION blocks untouched: those aren't part of the
// tag this codec owns, just structural data it passes through.
func (c Codec) Remove(target codec.Target, size int64, path string) (int64, error) {
	return c.writeTag(target, size, path, types.NewTagData(), codec.WriteOptions{EnablePadding: true})
}

// planBlock is one final metadata block slot: an existing block being
// rewritten in place, or a group (the picture zone can hold zero or
// more physical PICTURE blocks).
type planBlock struct {
	zoneName  string
	blockType uint8
	bodies    [][]byte
}

func (c Codec) writeTag(target codec.Target, size int64, path string, tag *types.TagData, opts codec.WriteOptions) (int64, error) {
	sr := binary.NewSafeReader(target, size, path)
	if err := verifyMagic(sr); err != nil {
		return size, err
	}

	blocks, err := walkBlocks(sr, size)
	if err != nil {
		return size, err
	}

	h := structure.New()
	plan := make([]planBlock, len(blocks))
	for i, b := range blocks {
		name := fmt.Sprintf("block%d", i)
		h.RegisterZone(types.Zone{Name: name, Offset: b.HeaderOffset, Size: int64(4 + len(b.Body))})
		plan[i] = planBlock{zoneName: name, blockType: b.Type, bodies: [][]byte{b.Body}}
	}

	endOfMetadata := int64(4)
	if len(blocks) > 0 {
		last := blocks[len(blocks)-1]
		endOfMetadata = last.HeaderOffset + 4 + int64(len(last.Body))
	}

	commentIdx, firstPictureIdx, paddingIdx := -1, -1, -1
	for i, b := range blocks {
		switch b.Type {
		case blockTypeVorbisComment:
			if commentIdx == -1 {
				commentIdx = i
			}
		case blockTypePicture:
			if firstPictureIdx == -1 {
				firstPictureIdx = i
			} else {
				plan[i].bodies = nil // every picture zone but the first is erased
			}
		case blockTypePadding:
			if paddingIdx == -1 {
				paddingIdx = i
			}
		}
	}

	vendor, comments := vorbis.Encode(tag)
	commentNeeded := vendor != "" || len(comments) > 0
	oldCommentSize := int64(0)
	newCommentSize := int64(0)
	if commentIdx >= 0 {
		oldCommentSize = int64(4 + len(blocks[commentIdx].Body))
		if commentNeeded {
			newCommentBody := vorbis.EncodeWire(vendor, comments)
			plan[commentIdx].bodies = [][]byte{newCommentBody}
			newCommentSize = int64(4 + len(newCommentBody))
		} else {
			plan[commentIdx].bodies = nil
		}
	} else if commentNeeded {
		newCommentBody := vorbis.EncodeWire(vendor, comments)
		newCommentSize = int64(4 + len(newCommentBody))
		name := "comment-insert"
		h.RegisterZone(types.Zone{Name: name, Offset: endOfMetadata, Size: 0})
		plan = append(plan, planBlock{zoneName: name, blockType: blockTypeVorbisComment, bodies: [][]byte{newCommentBody}})
	}

	oldPictureSize := int64(0)
	for _, b := range blocks {
		if b.Type == blockTypePicture {
			oldPictureSize += int64(4 + len(b.Body))
		}
	}
	var newPictureBodies [][]byte
	newPictureSize := int64(0)
	for _, p := range tag.Pictures {
		body := encodePictureBody(p)
		newPictureBodies = append(newPictureBodies, body)
		newPictureSize += int64(4 + len(body))
	}
	if firstPictureIdx >= 0 {
		plan[firstPictureIdx].bodies = newPictureBodies
	} else if len(newPictureBodies) > 0 {
		name := "picture-insert"
		h.RegisterZone(types.Zone{Name: name, Offset: endOfMetadata, Size: 0})
		plan = append(plan, planBlock{zoneName: name, blockType: blockTypePicture, bodies: newPictureBodies})
	}

	// PADDING is the preferred absorber for the size delta the comment
	// and picture rewrites introduce, per spec §4.4: shrink it to soak
	// up growth, grow it back when the new content is smaller, letting
	// the file itself change size only once padding is exhausted. When
	// padding is disabled, any existing PADDING block is dropped instead
	// of being resized to absorb the delta.
	if paddingIdx >= 0 {
		var newPadLen int64
		if opts.EnablePadding {
			netDelta := (newCommentSize - oldCommentSize) + (newPictureSize - oldPictureSize)
			oldPadLen := int64(len(blocks[paddingIdx].Body))
			newPadLen = oldPadLen - netDelta
			if newPadLen < 0 {
				newPadLen = 0
			}
		}
		if newPadLen == 0 {
			plan[paddingIdx].bodies = nil
		} else {
			plan[paddingIdx].bodies = [][]byte{make([]byte, newPadLen)}
		}
	}

	content := make(map[string][]byte, len(plan))
	totalPhysical := 0
	for _, pb := range plan {
		totalPhysical += len(pb.bodies)
	}
	physSeen := 0
	for _, pb := range plan {
		var buf []byte
		for _, body := range pb.bodies {
			physSeen++
			isLast := physSeen == totalPhysical
			buf = append(buf, packBlock(pb.blockType, body, isLast)...)
		}
		content[pb.zoneName] = buf
	}

	return h.Commit(target, size, content)
}

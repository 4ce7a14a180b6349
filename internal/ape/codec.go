package ape

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

const id3v1Size = 128

// Codec implements codec.Codec for types.TagTypeAPEv2.
type Codec struct{}

func (Codec) TagType() types.TagType { return types.TagTypeAPEv2 }

// locate finds where an APEv2 tag (if any) sits relative to the end of
// the file, accounting for an optional trailing ID3v1 tag. tagEnd is
// the offset just past the APEv2 footer (i.e. where an ID3v1 tag, if
// present, begins).
func locate(sr *binary.SafeReader, size int64) (tagStart, tagEnd int64, footer block, hasHeader bool, found bool, err error) {
	tagEnd = size
	if size >= id3v1Size {
		buf := make([]byte, 3)
		if rerr := sr.ReadAt(buf, size-id3v1Size, "ID3v1 probe"); rerr == nil && string(buf) == "TAG" {
			tagEnd = size - id3v1Size
		}
	}
	if tagEnd < blockSize {
		return 0, tagEnd, block{}, false, false, nil
	}

	footerOffset := tagEnd - blockSize
	footer, ferr := readBlock(sr, footerOffset)
	if ferr != nil {
		return 0, tagEnd, block{}, false, false, nil
	}

	itemsSize := int64(footer.TagSize) - blockSize
	hasHeader = footer.Flags&flagHasHeader != 0
	headerSize := int64(0)
	if hasHeader {
		headerSize = blockSize
	}
	tagStart = footerOffset - itemsSize - headerSize
	if tagStart < 0 {
		return 0, tagEnd, block{}, false, false, nil
	}
	return tagStart, tagEnd, footer, hasHeader, true, nil
}

func (Codec) Read(target codec.Target, size int64, path string) (*codec.ReadOutcome, error) {
	sr := binary.NewSafeReader(target, size, path)
	outcome := &codec.ReadOutcome{}

	tagStart, tagEnd, footer, hasHeader, found, err := locate(sr, size)
	if err != nil {
		return nil, err
	}
	if !found {
		return outcome, nil
	}

	itemsStart := tagStart
	if hasHeader {
		itemsStart += blockSize
	}
	itemsSize := (tagEnd - blockSize) - itemsStart
	data := make([]byte, itemsSize)
	if err := sr.ReadAt(data, itemsStart, "APEv2 items"); err != nil {
		return nil, err
	}

	items, err := readItems(data, footer.ItemCount)
	if err != nil {
		return nil, err
	}

	tag := types.NewTagData()
	for _, it := range items {
		if it.ValueType == valueBinary {
			tag.UpsertAdditional(types.AdditionalField{TagType: types.TagTypeAPEv2, NativeCode: it.Key, BinaryValue: it.Value})
			continue
		}
		value := strings.Join(splitMultiValue(it.Value), "; ")
		if field, ok := fieldForKey(it.Key); ok {
			tag.Set(field, value)
		} else {
			tag.UpsertAdditional(types.AdditionalField{TagType: types.TagTypeAPEv2, NativeCode: it.Key, Value: value})
		}
	}

	outcome.Exists = true
	outcome.Tag = tag
	return outcome, nil
}

func (c Codec) Write(target codec.Target, size int64, path string, current, delta *types.TagData, _ codec.WriteOptions) (int64, error) {
	merged := codec.Merge(current, delta)
	return c.writeTag(target, size, path, merged)
}

func (c Codec) Remove(target codec.Target, size int64, path string) (int64, error) {
	return c.writeTag(target, size, path, types.NewTagData())
}

func (c Codec) writeTag(target codec.Target, size int64, path string, tag *types.TagData) (int64, error) {
	sr := binary.NewSafeReader(target, size, path)

	tagStart, tagEnd, _, _, found, err := locate(sr, size)
	if err != nil {
		return size, err
	}
	oldZoneSize := int64(0)
	oldZoneOffset := tagEnd
	if found {
		oldZoneSize = tagEnd - tagStart
		oldZoneOffset = tagStart
	}

	items := encodeAllItems(tag)
	var itemsBytes []byte
	for _, it := range items {
		itemsBytes = append(itemsBytes, encodeItem(it)...)
	}

	footer := block{
		Version:   version,
		TagSize:   uint32(len(itemsBytes) + blockSize),
		ItemCount: uint32(len(items)),
		Flags:     flagHasHeader,
	}
	header := footer
	header.Flags = flagHasHeader | flagIsHeader

	var newZoneBytes []byte
	if len(items) > 0 {
		newZoneBytes = append(newZoneBytes, encodeBlock(header)...)
		newZoneBytes = append(newZoneBytes, itemsBytes...)
		newZoneBytes = append(newZoneBytes, encodeBlock(footer)...)
	}

	h := structure.New()
	h.RegisterZone(types.Zone{Name: "tag", Offset: oldZoneOffset, Size: oldZoneSize})
	return h.Commit(target, size, map[string][]byte{"tag": newZoneBytes})
}

// encodeAllItems serializes every supported field, additional field,
// and binary value this codec owns into APEv2 items. Pictures and
// chapters have no home in APEv2 (spec §4.7 names no such mapping) and
// are silently dropped, matching APEv2's text/binary-item-only model.
func encodeAllItems(tag *types.TagData) []item {
	var items []item

	for _, field := range types.OrderedFieldKeys {
		key, ok := fieldToKey[field]
		if !ok {
			continue
		}
		if v, ok := tag.Get(field); ok && v != "" {
			items = append(items, item{Key: key, ValueType: valueText, Value: joinMultiValue(strings.Split(v, "; "))})
		}
	}

	for _, af := range tag.AdditionalFields() {
		if af.TagType != types.TagTypeAPEv2 {
			continue
		}
		if af.BinaryValue != nil {
			items = append(items, item{Key: af.NativeCode, ValueType: valueBinary, Value: af.BinaryValue})
		} else {
			items = append(items, item{Key: af.NativeCode, ValueType: valueText, Value: joinMultiValue(strings.Split(af.Value, "; "))})
		}
	}

	return items
}

var _ codec.Codec = Codec{}

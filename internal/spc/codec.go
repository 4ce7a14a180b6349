package spc

import (
	"time"

	"github.com/go-tagkit/tagkit/internal/binary"
	"github.com/go-tagkit/tagkit/internal/codec"
	"github.com/go-tagkit/tagkit/internal/registry"
	"github.com/go-tagkit/tagkit/internal/structure"
	"github.com/go-tagkit/tagkit/internal/types"
)

func init() {
	registry.Register(types.FormatSPC, Codec{})
}

// Codec implements codec.Codec for types.TagTypeSPCID666: the ID666
// header plus an optional xid6 extended footer.
type Codec struct{}

func (Codec) TagType() types.TagType { return types.TagTypeSPCID666 }

func (Codec) Read(target codec.Target, size int64, path string) (*codec.ReadOutcome, error) {
	sr := binary.NewSafeReader(target, size, path)
	outcome := &codec.ReadOutcome{}

	h, err := readHeader(sr)
	if err != nil {
		// Not an SPC file (or too short to carry the format tag): no
		// tag of this type, not a read failure.
		return outcome, nil
	}
	items, hasXID6, err := readXID6(sr, size)
	if err != nil {
		return nil, err
	}

	if !h.Exists && !hasXID6 {
		return outcome, nil
	}

	tag := types.NewTagData()
	byID := indexItems(items)

	setText := func(field types.FieldKey, headerVal string, id byte) {
		if it, ok := byID[id]; ok && it.Type == xtypeText {
			tag.Set(field, binary.DecodeLatin1(it.Value))
		} else if headerVal != "" {
			tag.Set(field, headerVal)
		}
	}
	setText(types.FieldTitle, h.Title, idTitle)
	setText(types.FieldAlbum, h.Album, idAlbum)
	setText(types.FieldArtist, h.Artist, idArtist)
	setText(types.FieldComment, h.Comment, idComments)

	setAdditional := func(code string, headerVal string, id byte) {
		if it, ok := byID[id]; ok && it.Type == xtypeText {
			tag.UpsertAdditional(types.AdditionalField{TagType: types.TagTypeSPCID666, NativeCode: code, Value: binary.DecodeLatin1(it.Value)})
		} else if headerVal != "" {
			tag.UpsertAdditional(types.AdditionalField{TagType: types.TagTypeSPCID666, NativeCode: code, Value: headerVal})
		}
	}
	setAdditional(nativeDumper, h.Dumper, idDumper)
	setAdditional(nativeDate, h.Date, idDate)
	if it, ok := byID[idEmulator]; ok {
		tag.UpsertAdditional(types.AdditionalField{TagType: types.TagTypeSPCID666, NativeCode: nativeEmulator, Value: binary.DecodeLatin1(it.Value)})
	}
	if it, ok := byID[idOST]; ok {
		tag.UpsertAdditional(types.AdditionalField{TagType: types.TagTypeSPCID666, NativeCode: nativeOST, Value: binary.DecodeLatin1(it.Value)})
	}
	if it, ok := byID[idPublisher]; ok {
		tag.Set(types.FieldPublisher, binary.DecodeLatin1(it.Value))
	}
	if it, ok := byID[idDisc]; ok {
		tag.Set(types.FieldDiscNumber, itoaUint32(it.asUint32()))
	}
	if it, ok := byID[idTrack]; ok && it.Type == xtypeInline {
		tag.Set(types.FieldTrackNumber, decodeTrack(it.Size))
	}
	if it, ok := byID[idCopyrightYear]; ok {
		tag.Set(types.FieldCopyright, itoaUint32(it.asUint32()))
	}
	for id := range playbackIDs {
		if it, ok := byID[id]; ok {
			tag.UpsertAdditional(types.AdditionalField{TagType: types.TagTypeSPCID666, NativeCode: playbackName(id), Value: itoaUint32(it.asUint32())})
		}
	}

	outcome.Exists = true
	outcome.Tag = tag

	if secs, ok := xid6Duration(items); ok {
		outcome.Audio.Duration = time.Duration(secs * float64(time.Second))
	} else {
		outcome.Audio.Duration = time.Duration(h.duration() * float64(time.Second))
	}

	return outcome, nil
}

func indexItems(items []xid6Item) map[byte]xid6Item {
	out := make(map[byte]xid6Item, len(items))
	for _, it := range items {
		out[it.ID] = it
	}
	return out
}

func playbackName(id byte) string {
	switch id {
	case idIntro:
		return "intro"
	case idLoop:
		return "loop"
	case idEnd:
		return "end"
	case idFade:
		return "fade"
	case idMute:
		return "mute"
	case idLoopX:
		return "loopx"
	case idAmp:
		return "amp"
	default:
		return ""
	}
}

func itoaUint32(v uint32) string {
	return uintToString(v)
}

func uintToString(v uint32) string {
	if v == 0 {
		return "0"
	}
	buf := [10]byte{}
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

func (c Codec) Write(target codec.Target, size int64, path string, current, delta *types.TagData, _ codec.WriteOptions) (int64, error) {
	merged := codec.Merge(current, delta)
	return c.writeTag(target, size, path, merged, false)
}

// Remove clears tag metadata but retains every playback-control id and
// the header's song-length/fade bytes (spec §4.9's SPC-specific
// removal policy: they describe playback, not metadata).
func (c Codec) Remove(target codec.Target, size int64, path string) (int64, error) {
	return c.writeTag(target, size, path, types.NewTagData(), true)
}

func (c Codec) writeTag(target codec.Target, size int64, path string, tag *types.TagData, removing bool) (int64, error) {
	sr := binary.NewSafeReader(target, size, path)

	oldHeader, err := readHeader(sr)
	if err != nil {
		return size, err
	}
	oldItems, hasXID6, err := readXID6(sr, size)
	if err != nil {
		return size, err
	}

	newHeader := oldHeader
	newHeader.Title, _ = tag.Get(types.FieldTitle)
	newHeader.Album, _ = tag.Get(types.FieldAlbum)
	newHeader.Comment, _ = tag.Get(types.FieldComment)
	newHeader.Artist, _ = tag.Get(types.FieldArtist)
	if v, ok := tag.GetAdditional(types.TagTypeSPCID666, nativeDumper); ok {
		newHeader.Dumper = v.Value
	} else {
		newHeader.Dumper = ""
	}
	if v, ok := tag.GetAdditional(types.TagTypeSPCID666, nativeDate); ok {
		newHeader.Date = v.Value
	} else {
		newHeader.Date = ""
	}
	// SongRaw/FadeRaw carry over from oldHeader untouched: playback
	// duration is audio-intrinsic, never part of the tag delta.

	var newItems []xid6Item
	addText := func(id byte, headerWidth int, s string) {
		if s == "" {
			return
		}
		if headerWidth > 0 && len(s) <= headerWidth {
			return // fits the header field; no duplication per spec's write policy
		}
		newItems = append(newItems, xid6Item{ID: id, Type: xtypeText, Value: []byte(s)})
	}
	addText(idTitle, titleSize, newHeader.Title)
	addText(idAlbum, albumSize, newHeader.Album)
	addText(idArtist, artistSize, newHeader.Artist)
	addText(idComments, commentSize, newHeader.Comment)
	addText(idDumper, dumperSize, newHeader.Dumper)
	addText(idDate, 0, newHeader.Date)

	if v, ok := tag.GetAdditional(types.TagTypeSPCID666, nativeEmulator); ok && v.Value != "" {
		newItems = append(newItems, xid6Item{ID: idEmulator, Type: xtypeText, Value: []byte(v.Value)})
	}
	if v, ok := tag.GetAdditional(types.TagTypeSPCID666, nativeOST); ok && v.Value != "" {
		newItems = append(newItems, xid6Item{ID: idOST, Type: xtypeText, Value: []byte(v.Value)})
	}
	if v, ok := tag.Get(types.FieldPublisher); ok && v != "" {
		newItems = append(newItems, xid6Item{ID: idPublisher, Type: xtypeText, Value: []byte(v)})
	}
	if v, ok := tag.Get(types.FieldDiscNumber); ok && v != "" {
		newItems = append(newItems, xid6Item{ID: idDisc, Type: xtypeInline, Size: uint16(atoiSafe(v))})
	}
	if v, ok := tag.Get(types.FieldTrackNumber); ok && v != "" {
		newItems = append(newItems, xid6Item{ID: idTrack, Type: xtypeInline, Size: encodeTrack(v)})
	}
	if v, ok := tag.Get(types.FieldCopyright); ok && v != "" {
		newItems = append(newItems, xid6Item{ID: idCopyrightYear, Type: xtypeInline, Size: uint16(atoiSafe(v))})
	}

	for id := range playbackIDs {
		if removing {
			// Retain verbatim from the original footer.
			for _, it := range oldItems {
				if it.ID == id {
					newItems = append(newItems, it)
				}
			}
			continue
		}
		if v, ok := tag.GetAdditional(types.TagTypeSPCID666, playbackName(id)); ok {
			newItems = append(newItems, xid6Item{ID: id, Type: xtypeInt32, Value: int32Value(uint32(atoiSafe(v.Value)))})
		} else {
			for _, it := range oldItems {
				if it.ID == id {
					newItems = append(newItems, it)
				}
			}
		}
	}

	newHeaderBytes := encodeHeader(newHeader)
	newFooterBytes := encodeXID6(newItems)

	h := structure.New()
	h.RegisterZone(types.Zone{Name: "header", Offset: headerOffset, Size: headerTagTotalSize})

	footerOffset := int64(spcRawLength)
	footerOldSize := int64(0)
	if hasXID6 {
		probe := make([]byte, 8)
		if err := sr.ReadAt(probe, spcRawLength, "xid6 probe"); err == nil {
			footerOldSize = 8 + int64(leUint32(probe[4:8]))
		}
	}
	h.RegisterZone(types.Zone{Name: "footer", Offset: footerOffset, Size: footerOldSize})

	content := map[string][]byte{"header": newHeaderBytes}
	if len(newItems) > 0 {
		content["footer"] = newFooterBytes
	} else {
		content["footer"] = nil
	}

	newSize, err := h.Commit(target, size, content)
	if err != nil {
		return size, err
	}

	tagInHeaderByte := []byte{0x1A}
	if _, err := target.WriteAt(tagInHeaderByte, 41); err != nil {
		return newSize, err
	}
	return newSize, nil
}

func atoiSafe(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

var _ codec.Codec = Codec{}

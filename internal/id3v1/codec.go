// Package id3v1 implements the ID3v1/ID3v1.1 codec (spec §4.8): a fixed
// 128-byte trailer at the end of the file, Latin-1 text, supported
// fields only - no additional fields, no pictures, no chapters.
package id3v1

import (
	"strconv"

	"github.com/go-tagkit/tagkit/internal/binary"
	"github.com/go-tagkit/tagkit/internal/codec"
	"github.com/go-tagkit/tagkit/internal/registry"
	"github.com/go-tagkit/tagkit/internal/structure"
	"github.com/go-tagkit/tagkit/internal/types"
)

func init() {
	registry.Register(types.FormatMP3, Codec{})
}

const tagSize = 128

// Codec implements codec.Codec for types.TagTypeID3v1.
type Codec struct{}

func (Codec) TagType() types.TagType { return types.TagTypeID3v1 }

func (Codec) Read(target codec.Target, size int64, path string) (*codec.ReadOutcome, error) {
	outcome := &codec.ReadOutcome{}
	if size < tagSize {
		return outcome, nil
	}

	sr := binary.NewSafeReader(target, size, path)
	buf := make([]byte, tagSize)
	if err := sr.ReadAt(buf, size-tagSize, "ID3v1 tag"); err != nil {
		return nil, err
	}
	if string(buf[0:3]) != "TAG" {
		return outcome, nil
	}

	tag := types.NewTagData()
	tag.Set(types.FieldTitle, trimPadded(buf[3:33]))
	tag.Set(types.FieldArtist, trimPadded(buf[33:63]))
	tag.Set(types.FieldAlbum, trimPadded(buf[63:93]))
	if year := trimPadded(buf[93:97]); year != "" {
		tag.Set(types.FieldReleaseYear, year)
	}

	comment := buf[97:127]
	if comment[28] == 0 && comment[29] != 0 {
		tag.Set(types.FieldComment, trimPadded(comment[0:28]))
		tag.Set(types.FieldTrackNumber, strconv.Itoa(int(comment[29])))
	} else {
		tag.Set(types.FieldComment, trimPadded(comment))
	}

	if name := genreName(buf[127]); name != "" {
		tag.Set(types.FieldGenre, name)
	}

	outcome.Exists = true
	outcome.Tag = tag
	return outcome, nil
}

func (c Codec) Write(target codec.Target, size int64, path string, current, delta *types.TagData, _ codec.WriteOptions) (int64, error) {
	merged := codec.Merge(current, delta)
	return c.writeTag(target, size, merged)
}

// Remove drops the trailer entirely; ID3v1 has no field that must
// survive removal (unlike SPC's playback-control ids).
func (c Codec) Remove(target codec.Target, size int64, path string) (int64, error) {
	exists, err := c.tagPresent(target, size, path)
	if err != nil {
		return size, err
	}
	if !exists {
		return size, nil
	}
	h := structure.New()
	h.RegisterZone(types.Zone{Name: "tag", Offset: size - tagSize, Size: tagSize})
	return h.Commit(target, size, map[string][]byte{"tag": nil})
}

func (c Codec) tagPresent(target codec.Target, size int64, path string) (bool, error) {
	if size < tagSize {
		return false, nil
	}
	sr := binary.NewSafeReader(target, size, path)
	buf := make([]byte, 3)
	if err := sr.ReadAt(buf, size-tagSize, "ID3v1 magic"); err != nil {
		return false, err
	}
	return string(buf) == "TAG", nil
}

func (c Codec) writeTag(target codec.Target, size int64, tag *types.TagData) (int64, error) {
	exists := false
	if size >= tagSize {
		sr := binary.NewSafeReader(target, size, "")
		buf := make([]byte, 3)
		if err := sr.ReadAt(buf, size-tagSize, "ID3v1 magic"); err == nil {
			exists = string(buf) == "TAG"
		}
	}

	out := make([]byte, tagSize)
	copy(out[0:3], "TAG")
	copy(out[3:33], binary.PadLatin1(must(tag.Get(types.FieldTitle)), 30, 0))
	copy(out[33:63], binary.PadLatin1(must(tag.Get(types.FieldArtist)), 30, 0))
	copy(out[63:93], binary.PadLatin1(must(tag.Get(types.FieldAlbum)), 30, 0))
	copy(out[93:97], binary.PadLatin1(must(tag.Get(types.FieldReleaseYear)), 4, 0))

	comment := must(tag.Get(types.FieldComment))
	track, hasTrack := parseTrack(tag)
	if hasTrack {
		copy(out[97:125], binary.PadLatin1(comment, 28, 0))
		out[125] = 0
		out[126] = track
	} else {
		copy(out[97:127], binary.PadLatin1(comment, 30, 0))
	}

	out[127] = 255
	if genreStr, ok := tag.Get(types.FieldGenre); ok && genreStr != "" {
		if code, found := genreCode(genreStr); found {
			out[127] = code
		}
	}

	h := structure.New()
	zoneSize := int64(0)
	if exists {
		zoneSize = tagSize
	}
	h.RegisterZone(types.Zone{Name: "tag", Offset: size - zoneSize, Size: zoneSize})
	return h.Commit(target, size, map[string][]byte{"tag": out})
}

func must(s string, ok bool) string {
	if !ok {
		return ""
	}
	return s
}

// parseTrack reports the ID3v1.1 track byte to write, if TagData carries
// a valid one (1-255; track 0 is indistinguishable from "no track" and
// written as plain ID3v1 instead).
func parseTrack(tag *types.TagData) (byte, bool) {
	s, ok := tag.Get(types.FieldTrackNumber)
	if !ok || s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > 255 {
		return 0, false
	}
	return byte(n), true
}

// trimPadded decodes a Latin-1 field and trims trailing null and space
// padding (taggers have historically used either).
func trimPadded(b []byte) string {
	end := len(b)
	for end > 0 && (b[end-1] == 0 || b[end-1] == ' ') {
		end--
	}
	return binary.DecodeLatin1(b[:end])
}

var _ codec.Codec = Codec{}

// Package types defines the format-neutral tag data model shared by every
// codec, plus the zone/error/format plumbing codecs are built against.
//
// This is the canonical model; the root package re-exports everything here
// as type aliases, mirroring the teacher's internal/types + root-alias split.
package types

import "slices"

// FieldKey identifies one of the supported-field slots in TagData.
type FieldKey int

const (
	FieldGeneralDescription FieldKey = iota
	FieldTitle
	FieldArtist
	FieldComposer
	FieldComment
	FieldGenre
	FieldAlbum
	FieldReleaseDate
	FieldReleaseYear
	FieldTrackNumber
	FieldDiscNumber
	FieldRating
	FieldOriginalArtist
	FieldOriginalAlbum
	FieldCopyright
	FieldPublisher
	FieldAlbumArtist
	FieldConductor
)

var fieldKeyNames = [...]string{
	"general-description", "title", "artist", "composer", "comment",
	"genre", "album", "release-date", "release-year", "track-number",
	"disc-number", "rating", "original-artist", "original-album",
	"copyright", "publisher", "album-artist", "conductor",
}

func (k FieldKey) String() string {
	if k < 0 || int(k) >= len(fieldKeyNames) {
		return "unknown"
	}
	return fieldKeyNames[k]
}

// OrderedFieldKeys lists every FieldKey in declaration order. Codecs that
// serialize the supported-field set range over this slice rather than a
// map, so the same TagData always produces byte-identical output across
// calls (spec §3 invariant 2, §8 property 3).
var OrderedFieldKeys = [...]FieldKey{
	FieldGeneralDescription, FieldTitle, FieldArtist, FieldComposer,
	FieldComment, FieldGenre, FieldAlbum, FieldReleaseDate, FieldReleaseYear,
	FieldTrackNumber, FieldDiscNumber, FieldRating, FieldOriginalArtist,
	FieldOriginalAlbum, FieldCopyright, FieldPublisher, FieldAlbumArtist,
	FieldConductor,
}

// TagType discriminates which codec owns a tag: it is both the unit of
// AudioFile.Update/Remove and the discriminator field of AdditionalField.
type TagType int

const (
	TagTypeUnknown TagType = iota
	TagTypeVorbisComment
	TagTypeID3v1
	TagTypeID3v2
	TagTypeAPEv2
	TagTypeSPCID666
)

var tagTypeNames = [...]string{
	"unknown", "vorbis-comment", "id3v1", "id3v2", "apev2", "spc-id666",
}

func (t TagType) String() string {
	if t < 0 || int(t) >= len(tagTypeNames) {
		return "unknown"
	}
	return tagTypeNames[t]
}

// AdditionalField carries a field the underlying format supports but the
// TagData supported-field table has no slot for. TagType discriminates
// which codec produced/owns the field; ZoneName is the codec-internal
// region name the field's bytes live in (used by StructureHelper).
type AdditionalField struct {
	TagType           TagType
	NativeCode        string
	Value             string
	BinaryValue       []byte // set instead of Value for opaque/binary fields
	StreamNumber      int
	Language          string
	ZoneName          string
	MarkedForDeletion bool
}

func (a AdditionalField) key() additionalFieldKey {
	return additionalFieldKey{a.TagType, a.NativeCode}
}

type additionalFieldKey struct {
	tagType    TagType
	nativeCode string
}

// TagData is the format-neutral in-memory tag: supported fields, additional
// fields, pictures, and chapters. See spec §3.
type TagData struct {
	supported       map[FieldKey]string
	additionalOrder []additionalFieldKey
	additional      map[additionalFieldKey]AdditionalField
	Pictures        []Picture
	Chapters        []Chapter
}

// NewTagData returns an empty, ready-to-use TagData.
func NewTagData() *TagData {
	return &TagData{
		supported:  make(map[FieldKey]string),
		additional: make(map[additionalFieldKey]AdditionalField),
	}
}

func (t *TagData) ensure() {
	if t.supported == nil {
		t.supported = make(map[FieldKey]string)
	}
	if t.additional == nil {
		t.additional = make(map[additionalFieldKey]AdditionalField)
	}
}

// Get returns the value of a supported field and whether it is present.
func (t *TagData) Get(key FieldKey) (string, bool) {
	if t.supported == nil {
		return "", false
	}
	v, ok := t.supported[key]
	return v, ok
}

// DeleteField removes a supported field's slot entirely, so Get reports
// absent. Used by codec.Merge to apply an empty-string delta value.
func (t *TagData) DeleteField(key FieldKey) {
	delete(t.supported, key)
}

// Set assigns a supported field, including the empty string. On a tag
// used as a write delta, Set(key, "") is how a caller requests erasure
// of that field (invariant 4); codec.Merge interprets an empty delta
// value as "remove this field from the persisted tag" rather than
// storing an empty string. On a tag read from a file, codecs should
// simply not call Set for fields the format doesn't carry, rather than
// setting them to "".
func (t *TagData) Set(key FieldKey, value string) {
	t.ensure()
	t.supported[key] = value
}

// SupportedFields returns a snapshot of all set supported fields.
func (t *TagData) SupportedFields() map[FieldKey]string {
	out := make(map[FieldKey]string, len(t.supported))
	for k, v := range t.supported {
		out[k] = v
	}
	return out
}

// AdditionalFields returns the additional fields in insertion order
// (later inserts of the same (TagType, NativeCode) replace earlier ones
// in place, per invariant on duplicate native codes).
func (t *TagData) AdditionalFields() []AdditionalField {
	out := make([]AdditionalField, 0, len(t.additionalOrder))
	for _, k := range t.additionalOrder {
		out = append(out, t.additional[k])
	}
	return out
}

// UpsertAdditional inserts or replaces an additional field keyed by
// (TagType, NativeCode). A later insert of a duplicate key replaces the
// earlier one in place (its position in iteration order is preserved).
func (t *TagData) UpsertAdditional(f AdditionalField) {
	t.ensure()
	k := f.key()
	if _, exists := t.additional[k]; !exists {
		t.additionalOrder = append(t.additionalOrder, k)
	}
	t.additional[k] = f
}

// RemoveAdditional deletes the additional field matching (tagType, nativeCode).
func (t *TagData) RemoveAdditional(tagType TagType, nativeCode string) {
	if t.additional == nil {
		return
	}
	k := additionalFieldKey{tagType, nativeCode}
	if _, ok := t.additional[k]; !ok {
		return
	}
	delete(t.additional, k)
	t.additionalOrder = slices.DeleteFunc(t.additionalOrder, func(e additionalFieldKey) bool {
		return e == k
	})
}

// GetAdditional looks up one additional field by (tagType, nativeCode).
func (t *TagData) GetAdditional(tagType TagType, nativeCode string) (AdditionalField, bool) {
	if t.additional == nil {
		return AdditionalField{}, false
	}
	f, ok := t.additional[additionalFieldKey{tagType, nativeCode}]
	return f, ok
}

// Clone returns a deep copy of t.
func (t *TagData) Clone() *TagData {
	c := NewTagData()
	for k, v := range t.supported {
		c.supported[k] = v
	}
	for _, k := range t.additionalOrder {
		c.additionalOrder = append(c.additionalOrder, k)
		c.additional[k] = t.additional[k]
	}
	c.Pictures = slices.Clone(t.Pictures)
	c.Chapters = slices.Clone(t.Chapters)
	return c
}

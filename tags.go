package tagkit

import (
	"github.com/go-tagkit/tagkit/internal/types"
)

// TagData is an alias to types.TagData, the format-neutral in-memory
// tag every codec reads into and writes from.
type TagData = types.TagData

// NewTagData returns an empty, ready-to-use TagData, typically used to
// build the delta passed to (*AudioFile).Update.
func NewTagData() *TagData {
	return types.NewTagData()
}

// FieldKey is an alias to types.FieldKey.
type FieldKey = types.FieldKey

// Re-export every supported-field key.
const (
	FieldGeneralDescription = types.FieldGeneralDescription
	FieldTitle              = types.FieldTitle
	FieldArtist             = types.FieldArtist
	FieldComposer           = types.FieldComposer
	FieldComment            = types.FieldComment
	FieldGenre              = types.FieldGenre
	FieldAlbum              = types.FieldAlbum
	FieldReleaseDate        = types.FieldReleaseDate
	FieldReleaseYear        = types.FieldReleaseYear
	FieldTrackNumber        = types.FieldTrackNumber
	FieldDiscNumber         = types.FieldDiscNumber
	FieldRating             = types.FieldRating
	FieldOriginalArtist     = types.FieldOriginalArtist
	FieldOriginalAlbum      = types.FieldOriginalAlbum
	FieldCopyright          = types.FieldCopyright
	FieldPublisher          = types.FieldPublisher
	FieldAlbumArtist        = types.FieldAlbumArtist
	FieldConductor          = types.FieldConductor
)

// TagType is an alias to types.TagType: the unit of Update/Remove and
// the discriminator on AdditionalField.
type TagType = types.TagType

// Re-export every tag type.
const (
	TagTypeUnknown       = types.TagTypeUnknown
	TagTypeVorbisComment = types.TagTypeVorbisComment
	TagTypeID3v1         = types.TagTypeID3v1
	TagTypeID3v2         = types.TagTypeID3v2
	TagTypeAPEv2         = types.TagTypeAPEv2
	TagTypeSPCID666      = types.TagTypeSPCID666
)

// AdditionalField is an alias to types.AdditionalField: a format-
// specific field the supported-field table has no slot for.
type AdditionalField = types.AdditionalField

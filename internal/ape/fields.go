package ape

import (
	"strings"

	"github.com/go-tagkit/tagkit/internal/types"
)

// keyToField maps the conventional APEv2 item keys (case folded) onto
// TagData's supported fields; any key with no entry here becomes an
// additional field instead.
var keyToField = map[string]types.FieldKey{
	"title":         types.FieldTitle,
	"artist":        types.FieldArtist,
	"album":         types.FieldAlbum,
	"album artist":  types.FieldAlbumArtist,
	"composer":      types.FieldComposer,
	"comment":       types.FieldComment,
	"genre":         types.FieldGenre,
	"year":          types.FieldReleaseYear,
	"track":         types.FieldTrackNumber,
	"disc":          types.FieldDiscNumber,
	"copyright":     types.FieldCopyright,
	"publisher":     types.FieldPublisher,
	"label":         types.FieldPublisher,
	"conductor":     types.FieldConductor,
	"original artist": types.FieldOriginalArtist,
	"original album":  types.FieldOriginalAlbum,
}

var fieldToKey = map[types.FieldKey]string{
	types.FieldTitle:          "Title",
	types.FieldArtist:         "Artist",
	types.FieldAlbum:          "Album",
	types.FieldAlbumArtist:    "Album Artist",
	types.FieldComposer:       "Composer",
	types.FieldComment:        "Comment",
	types.FieldGenre:          "Genre",
	types.FieldReleaseYear:    "Year",
	types.FieldTrackNumber:    "Track",
	types.FieldDiscNumber:     "Disc",
	types.FieldCopyright:      "Copyright",
	types.FieldPublisher:      "Publisher",
	types.FieldConductor:      "Conductor",
	types.FieldOriginalArtist: "Original Artist",
	types.FieldOriginalAlbum:  "Original Album",
}

func fieldForKey(key string) (types.FieldKey, bool) {
	f, ok := keyToField[strings.ToLower(key)]
	return f, ok
}

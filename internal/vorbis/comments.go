// Package vorbis implements the Vorbis Comment codec (spec §4.3): the
// KEY=VALUE field vocabulary shared verbatim by the FLAC and Ogg
// container codecs, plus the Auphonic chapter convention layered on
// top of it.
package vorbis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-tagkit/tagkit/internal/types"
)

// NativeCodeVendor is the additional-field native code the wire
// format's vendor string round-trips under (it is not itself a
// KEY=VALUE comment entry).
const NativeCodeVendor = "VENDOR"

// rawNumberKeys are the KEYs whose numeric supported-field value
// discards a "total" component (e.g. "01/01" -> 1); the untouched
// string is kept as an additional field under the same native code so
// a write without an intervening edit reproduces it verbatim.
var rawNumberKeys = map[string]bool{
	"TRACKNUMBER": true,
	"DISCNUMBER":  true,
}

// keyToField is the bidirectional KEY <-> supported-field mapping from
// spec §4.3 ("includes at minimum" TITLE, ARTIST, ALBUM, ALBUMARTIST,
// COMMENT/DESCRIPTION, DATE, TRACKNUMBER, DISCNUMBER, GENRE, COMPOSER,
// COPYRIGHT, CONDUCTOR, PUBLISHER).
var keyToField = map[string]types.FieldKey{
	"TITLE":       types.FieldTitle,
	"ARTIST":      types.FieldArtist,
	"ALBUM":       types.FieldAlbum,
	"ALBUMARTIST": types.FieldAlbumArtist,
	"COMMENT":     types.FieldComment,
	"DESCRIPTION": types.FieldComment,
	"DATE":        types.FieldReleaseDate,
	"TRACKNUMBER": types.FieldTrackNumber,
	"DISCNUMBER":  types.FieldDiscNumber,
	"GENRE":       types.FieldGenre,
	"COMPOSER":    types.FieldComposer,
	"COPYRIGHT":   types.FieldCopyright,
	"CONDUCTOR":   types.FieldConductor,
	"PUBLISHER":   types.FieldPublisher,
}

// fieldToKey is the canonical write-side key for each supported field
// this codec knows how to express. A field with no entry here is left
// to whichever other tag type in the file can carry it.
var fieldToKey = map[types.FieldKey]string{
	types.FieldTitle:       "TITLE",
	types.FieldArtist:      "ARTIST",
	types.FieldAlbum:       "ALBUM",
	types.FieldAlbumArtist: "ALBUMARTIST",
	types.FieldComment:     "COMMENT",
	types.FieldReleaseDate: "DATE",
	types.FieldTrackNumber: "TRACKNUMBER",
	types.FieldDiscNumber:  "DISCNUMBER",
	types.FieldGenre:       "GENRE",
	types.FieldComposer:    "COMPOSER",
	types.FieldCopyright:   "COPYRIGHT",
	types.FieldConductor:   "CONDUCTOR",
	types.FieldPublisher:   "PUBLISHER",
}

// Decode turns a vendor string plus the list of "KEY=VALUE" comment
// entries into a TagData. Chapter comments (CHAPTERxxx/NAME/URL) are
// left out, since DecodeChapters handles them separately.
func Decode(vendor string, comments []string) (*types.TagData, []types.Warning) {
	tag := types.NewTagData()
	var warnings []types.Warning

	tag.UpsertAdditional(types.AdditionalField{
		TagType:    types.TagTypeVorbisComment,
		NativeCode: NativeCodeVendor,
		Value:      vendor,
	})

	for _, comment := range comments {
		eq := strings.IndexByte(comment, '=')
		if eq < 0 {
			warnings = append(warnings, types.Warning{
				Stage:   "vorbis",
				Message: fmt.Sprintf("comment missing '=': %q", comment),
			})
			continue
		}
		key := strings.ToUpper(strings.TrimSpace(comment[:eq]))
		value := comment[eq+1:]

		if isChapterKey(key) {
			continue // handled by DecodeChapters
		}

		if field, ok := keyToField[key]; ok {
			if rawNumberKeys[key] {
				parsed := leadingNumber(value)
				tag.Set(field, parsed)
				if parsed != value {
					tag.UpsertAdditional(types.AdditionalField{
						TagType:    types.TagTypeVorbisComment,
						NativeCode: key,
						Value:      value,
					})
				}
				continue
			}
			tag.Set(field, value)
			continue
		}

		tag.UpsertAdditional(types.AdditionalField{
			TagType:    types.TagTypeVorbisComment,
			NativeCode: key,
			Value:      value,
		})
	}

	return tag, warnings
}

// Encode produces the vendor string and "KEY=VALUE" entries for tag,
// in the form the wire format expects. Unknown additional fields round
// trip under their original native code; VENDOR is pulled back out as
// the wire vendor string rather than re-emitted as a comment entry.
func Encode(tag *types.TagData) (vendor string, comments []string) {
	if f, ok := tag.GetAdditional(types.TagTypeVorbisComment, NativeCodeVendor); ok {
		vendor = f.Value
	}

	for _, field := range types.OrderedFieldKeys {
		value, ok := tag.Get(field)
		if !ok {
			continue
		}
		key, ok := fieldToKey[field]
		if !ok {
			continue
		}
		if rawNumberKeys[key] {
			if raw, ok := tag.GetAdditional(types.TagTypeVorbisComment, key); ok && leadingNumber(raw.Value) == value {
				value = raw.Value
			}
		}
		comments = append(comments, key+"="+value)
	}

	for _, f := range tag.AdditionalFields() {
		if f.TagType != types.TagTypeVorbisComment || f.NativeCode == NativeCodeVendor {
			continue
		}
		if f.BinaryValue != nil {
			continue // opaque block (CUESHEET, APPLICATION, ...), not a comment entry
		}
		if rawNumberKeys[f.NativeCode] {
			continue // already emitted (or superseded) alongside its supported field above
		}
		comments = append(comments, f.NativeCode+"="+f.Value)
	}

	comments = append(comments, EncodeChapters(tag.Chapters)...)

	return vendor, comments
}

// leadingNumber returns the decimal value of s's leading digit run,
// discarding any "/total" suffix, e.g. "01/01" -> "1". Returns s
// unchanged if it has no leading digit.
func leadingNumber(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return s
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return s
	}
	return strconv.Itoa(n)
}

func isChapterKey(key string) bool {
	if !strings.HasPrefix(key, "CHAPTER") {
		return false
	}
	rest := strings.TrimPrefix(key, "CHAPTER")
	rest = strings.TrimSuffix(rest, "NAME")
	rest = strings.TrimSuffix(rest, "URL")
	if rest == "" {
		return false
	}
	_, err := strconv.Atoi(rest)
	return err == nil
}

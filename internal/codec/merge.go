package codec

import "github.com/go-tagkit/tagkit/internal/types"

// Merge combines a caller-supplied delta into a freshly read current
// tag, implementing spec §4.1 field-by-field:
//
//   - Supported fields: delta's value replaces current's when present;
//     an empty string in the delta erases the field.
//   - Additional fields: a delta entry marked for deletion removes the
//     matching (tag-type, native-code) entry from current; otherwise
//     it is upserted.
//   - Pictures: a delta picture marked for deletion removes the
//     matching current picture (by Picture.Key); otherwise it is
//     appended.
//   - Chapters: a non-nil delta chapter list fully replaces current's;
//     a nil delta list leaves current's chapters untouched.
func Merge(current, delta *types.TagData) *types.TagData {
	merged := current.Clone()

	for key, value := range delta.SupportedFields() {
		if value == "" {
			merged.DeleteField(key)
			continue
		}
		merged.Set(key, value)
	}

	for _, f := range delta.AdditionalFields() {
		if f.MarkedForDeletion {
			merged.RemoveAdditional(f.TagType, f.NativeCode)
			continue
		}
		merged.UpsertAdditional(f)
	}

	if len(delta.Pictures) > 0 {
		merged.Pictures = mergePictures(merged.Pictures, delta.Pictures)
	}

	if delta.Chapters != nil {
		merged.Chapters = delta.Chapters
	}

	return merged
}

func mergePictures(current, delta []types.Picture) []types.Picture {
	out := make([]types.Picture, 0, len(current)+len(delta))
	out = append(out, current...)
	for _, p := range delta {
		if p.MarkedForDeletion {
			out = removePictureByKey(out, p.Key())
			continue
		}
		out = append(out, p)
	}
	return out
}

func removePictureByKey(pics []types.Picture, key types.PictureKey) []types.Picture {
	out := pics[:0]
	for _, p := range pics {
		if p.Key() == key {
			continue
		}
		out = append(out, p)
	}
	return out
}

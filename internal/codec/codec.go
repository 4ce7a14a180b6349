// Package codec defines the interface every format codec implements:
// the common read/merge/write lifecycle spec.md's MetaDataIO describes,
// generalized across Vorbis Comment, FLAC, Ogg, ID3v2, ID3v1, APEv2, and
// SPC700/ID666. Composition over inheritance: the root AudioFile holds a
// Codec per TagType it finds in a file and drives them uniformly rather
// than each codec embedding a shared base type.
package codec

import (
	"io"

	"github.com/go-tagkit/tagkit/internal/types"
)

// Target is the random-access file handle codecs read from and, for
// writers, splice into.
type Target interface {
	io.ReaderAt
	io.WriterAt
	Truncate(size int64) error
}

// ReadOutcome is one codec's result for one tag type: whether the tag
// was present, the decoded TagData if so, and any warnings.
type ReadOutcome struct {
	Exists   bool
	Tag      *types.TagData
	Audio    types.AudioInfo
	Warnings []types.Warning
}

// Reader locates and decodes a codec's tag region(s) from a file.
type Reader interface {
	// TagType identifies which tag type this codec reads.
	TagType() types.TagType
	// Read scans target (size bytes long) for this codec's tag and
	// decodes it into a ReadOutcome. Returning Exists=false with a nil
	// error means the file simply carries no tag of this type.
	Read(target Target, size int64, path string) (*ReadOutcome, error)
}

// WriteOptions carries the process-wide Settings knobs a write needs,
// generalized across every codec rather than each one reading the
// root package's Settings directly.
type WriteOptions struct {
	// EnablePadding lets a write reuse (grow or shrink) an existing
	// padding/slack region to absorb a size delta instead of always
	// collapsing it to nothing. Formats with no padding concept ignore
	// this field.
	EnablePadding bool
}

// Writer merges a delta into the current tag and commits the result
// back into the file, splicing as needed.
type Writer interface {
	TagType() types.TagType
	// Write merges delta into current (per spec §4.1's merge rules,
	// typically via Merge in this package) and persists the result,
	// returning the file's new size.
	Write(target Target, size int64, path string, current, delta *types.TagData, opts WriteOptions) (newSize int64, err error)
}

// Remover clears a tag, preserving whatever fields the format considers
// mandatory for playback (SPC700's playback-control ids, for instance).
type Remover interface {
	TagType() types.TagType
	Remove(target Target, size int64, path string) (newSize int64, err error)
}

// Codec groups the three capabilities a format package registers under
// one TagType. Not every format needs a distinct Remover; codecs that
// remove by writing an empty merged tag can implement Remove in terms
// of Write.
type Codec interface {
	Reader
	Writer
	Remover
}

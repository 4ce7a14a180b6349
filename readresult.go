package tagkit

import (
	"github.com/go-tagkit/tagkit/internal/types"
)

// ReadResult is the outcome of one (*AudioFile).Read call: the detected
// container format, incidental technical audio properties, one
// TagSnapshot per tag type the format can carry, and any non-fatal
// warnings accumulated while parsing.
type ReadResult = types.ReadResult

// TagSnapshot is the per-tag-type outcome of a read: whether the tag
// was present, and whether parsing it failed.
type TagSnapshot = types.TagSnapshot

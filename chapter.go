package tagkit

import (
	"github.com/go-tagkit/tagkit/internal/types"
)

// Chapter is an alias to types.Chapter: a format-neutral chapter marker.
type Chapter = types.Chapter

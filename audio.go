package tagkit

import (
	"github.com/go-tagkit/tagkit/internal/types"
)

// AudioInfo is an alias to types.AudioInfo: the incidental technical
// properties a codec derives while already parsing a file for tags.
type AudioInfo = types.AudioInfo

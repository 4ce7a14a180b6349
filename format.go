package tagkit

import (
	"io"

	"github.com/go-tagkit/tagkit/internal/types"
)

// Format is an alias to types.Format: the detected container/stream
// format, which determines which codecs apply.
type Format = types.Format

// Re-export every format constant.
const (
	FormatUnknown = types.FormatUnknown
	FormatFLAC    = types.FormatFLAC
	FormatOgg     = types.FormatOgg
	FormatMP3     = types.FormatMP3
	FormatSPC     = types.FormatSPC
)

// DetectFormat determines an audio file's format from its magic bytes.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	return types.DetectFormat(r, size, path)
}

// Package imageprobe decodes a picture's dimensions for tests. It is
// never imported by core code: the core treats Picture.Data as opaque
// bytes and leaves decoding to whichever caller cares about pixels.
package imageprobe

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Info is a decoded picture's format and pixel dimensions.
type Info struct {
	Format string
	Width  int
	Height int
}

// Probe decodes data's header far enough to report its format and
// dimensions, without decoding the full pixel grid.
func Probe(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("imageprobe: %w", err)
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

package flac

import (
	"github.com/go-tagkit/tagkit/internal/picture"
	"github.com/go-tagkit/tagkit/internal/types"
)

// decodePictureBody and encodePictureBody wrap the PICTURE block body
// codec shared with Ogg's METADATA_BLOCK_PICTURE comment (see
// internal/picture), since both carry byte-identical payloads.
func decodePictureBody(body []byte) (types.Picture, error) {
	return picture.DecodeBody(body)
}

func encodePictureBody(p types.Picture) []byte {
	return picture.EncodeBody(p)
}

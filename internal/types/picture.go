package types

import "fmt"

// PictureType is a format-neutral picture-role enum. Most formats map
// their native type byte onto one of these; when a native value has no
// equivalent here, PictureUnsupported is used and NativeCode preserves
// the original byte/value.
type PictureType int

const (
	PictureOther PictureType = iota
	PictureIcon
	PictureOtherIcon
	PictureFront
	PictureBack
	PictureLeaflet
	PictureMedia
	PictureLeadArtist
	PictureArtist
	PictureConductor
	PictureBand
	PictureComposer
	PictureLyricist
	PictureRecordingLocation
	PictureDuringRecording
	PictureDuringPerformance
	PictureVideoCapture
	PictureBrightFish
	PictureIllustration
	PictureBandLogo
	PicturePublisherLogo
	PictureCD
	PictureUnsupported
)

var pictureTypeNames = [...]string{
	"Other", "Icon", "Other icon", "Front cover", "Back cover",
	"Leaflet page", "Media", "Lead artist", "Artist", "Conductor",
	"Band", "Composer", "Lyricist", "Recording location",
	"During recording", "During performance", "Video capture",
	"Bright colored fish", "Illustration", "Band logotype",
	"Publisher logotype", "CD", "Unsupported",
}

func (p PictureType) String() string {
	if p < 0 || int(p) >= len(pictureTypeNames) {
		return "Unsupported"
	}
	return pictureTypeNames[p]
}

// Picture is a format-neutral embedded picture: type, an optional native
// code (used when Type is PictureUnsupported, to round-trip the
// format-specific type value), a MIME/format hint, and the raw bytes.
// The core never decodes picture bytes; dimension probing is left to an
// external collaborator (see internal/imageprobe, test-only).
type Picture struct {
	Type        PictureType
	NativeCode  string
	MIME        string
	Description string
	Data        []byte
	// Width, Height, ColorDepth, and ColorsUsed are the FLAC/APIC block
	// header fields of the same name. They may be zero if the source
	// format never recorded them; when read from a block that did, they
	// are preserved here so a write that doesn't touch this picture
	// round-trips its header bytes rather than zeroing them.
	Width             uint32
	Height            uint32
	ColorDepth        uint32
	ColorsUsed        uint32
	MarkedForDeletion bool
}

// Key returns the picture's deletion/merge identity: (Type, NativeCode),
// per spec invariant 5. NativeCode is almost always empty outside
// PictureUnsupported, but it is included unconditionally so two
// same-type pictures distinguished only by native code don't collide.
func (p Picture) Key() PictureKey {
	return PictureKey{Type: p.Type, NativeCode: p.NativeCode}
}

// PictureKey is a picture's deletion/merge identity.
type PictureKey struct {
	Type       PictureType
	NativeCode string
}

func (p Picture) String() string {
	return fmt.Sprintf("%s (%s, %d bytes)", p.Type, p.MIME, len(p.Data))
}

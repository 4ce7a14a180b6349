package tagkit

import (
	"github.com/go-tagkit/tagkit/internal/types"
)

// Picture is an alias to types.Picture, a format-neutral embedded
// picture (cover art, icon, etc).
type Picture = types.Picture

// PictureType is an alias to types.PictureType.
type PictureType = types.PictureType

// Re-export every picture type.
const (
	PictureOther             = types.PictureOther
	PictureIcon              = types.PictureIcon
	PictureOtherIcon         = types.PictureOtherIcon
	PictureFront             = types.PictureFront
	PictureBack              = types.PictureBack
	PictureLeaflet           = types.PictureLeaflet
	PictureMedia             = types.PictureMedia
	PictureLeadArtist        = types.PictureLeadArtist
	PictureArtist            = types.PictureArtist
	PictureConductor         = types.PictureConductor
	PictureBand              = types.PictureBand
	PictureComposer          = types.PictureComposer
	PictureLyricist          = types.PictureLyricist
	PictureRecordingLocation = types.PictureRecordingLocation
	PictureDuringRecording   = types.PictureDuringRecording
	PictureDuringPerformance = types.PictureDuringPerformance
	PictureVideoCapture      = types.PictureVideoCapture
	PictureBrightFish        = types.PictureBrightFish
	PictureIllustration      = types.PictureIllustration
	PictureBandLogo          = types.PictureBandLogo
	PicturePublisherLogo     = types.PicturePublisherLogo
	PictureCD                = types.PictureCD
	PictureUnsupported       = types.PictureUnsupported
)

// PictureKey is an alias to types.PictureKey: a picture's
// deletion/merge identity.
type PictureKey = types.PictureKey

// PictureSink receives one decoded picture's raw bytes as Read streams
// them out, without requiring the caller to hold every picture's full
// byte slice on the resulting ReadResult at once. NativeCode mirrors
// Picture.NativeCode: set when pictureType is PictureUnsupported.
type PictureSink func(data []byte, pictureType PictureType, nativeCode string) error

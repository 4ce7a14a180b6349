package types

import (
	"io"

	"github.com/go-tagkit/tagkit/internal/binary"
)

// Format is the detected container/stream format. It determines which
// codecs AudioDataManager will even attempt; within a Format, more than
// one TagType may coexist (an MP3 stream can carry ID3v2, ID3v1, and
// APEv2 simultaneously).
type Format int

const (
	FormatUnknown Format = iota
	FormatFLAC
	FormatOgg
	FormatMP3
	FormatSPC
)

var formatNames = [...]string{"Unknown", "FLAC", "Ogg Vorbis", "MP3", "SPC700"}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "Unknown"
	}
	return formatNames[f]
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatFLAC:
		return []string{".flac"}
	case FormatOgg:
		return []string{".ogg", ".oga"}
	case FormatMP3:
		return []string{".mp3"}
	case FormatSPC:
		return []string{".spc"}
	default:
		return nil
	}
}

// DetectFormat determines the audio file format by examining magic bytes.
// It does not validate the whole file structure, only enough of the
// leading bytes to decide which codec family applies. An MP3 file is
// recognized either by a leading ID3v2 header or by a bare MPEG frame
// sync, since ID3v1/APEv2 trailers carry no leading signature of their
// own.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	if size < 4 {
		return FormatUnknown, &NotRecognizedError{Path: path}
	}

	sr := binary.NewSafeReader(r, size, path)

	magic := make([]byte, 4)
	if err := sr.ReadAt(magic, 0, "file magic bytes"); err != nil {
		return FormatUnknown, &NotRecognizedError{Path: path}
	}

	if string(magic) == "fLaC" {
		return FormatFLAC, nil
	}
	if string(magic) == "OggS" {
		return FormatOgg, nil
	}
	if string(magic[:3]) == "ID3" {
		return FormatMP3, nil
	}
	if magic[0] == 0xFF && (magic[1]&0xE0) == 0xE0 {
		return FormatMP3, nil
	}
	if size >= 33 {
		tag := make([]byte, 27)
		if err := sr.ReadAt(tag, 0, "SPC format tag"); err == nil {
			const spcTag = "SNES-SPC700 Sound File Data"
			if string(tag) == spcTag[:27] {
				return FormatSPC, nil
			}
		}
	}

	return FormatUnknown, &NotRecognizedError{Path: path}
}

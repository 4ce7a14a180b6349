package tagkit

// OpenOption configures behavior when opening audio files.
//
// Example:
//
//	f, err := tagkit.Open("song.flac",
//	    tagkit.WithSettings(tagkit.DefaultSettings()),
//	)
type OpenOption func(*openOptions)

type openOptions struct {
	settings Settings
}

func defaultOpenOptions() *openOptions {
	return &openOptions{settings: DefaultSettings()}
}

// WithSettings attaches process-wide knobs (padding, default text
// encoding, default ID3v2 write version) to the opened file. Later
// Update calls on this *AudioFile pass EnablePadding to the codec; the
// other two fields are not consulted.
func WithSettings(s Settings) OpenOption {
	return func(o *openOptions) {
		o.settings = s
	}
}

// ReadOption configures one (*AudioFile).Read call.
//
// Example:
//
//	result, err := f.Read(tagkit.WithPictureSink(func(data []byte, pt tagkit.PictureType, nativeCode string) error {
//	    return os.WriteFile(fmt.Sprintf("cover-%s.jpg", pt), data, 0o644)
//	}))
type ReadOption func(*readOptions)

type readOptions struct {
	pictureSink    PictureSink
	ignoreWarnings bool
	strict         bool
}

func defaultReadOptions() *readOptions {
	return &readOptions{}
}

// WithPictureSink streams every decoded picture to sink as it is read,
// in addition to the picture staying on its TagSnapshot's TagData.
// Useful for writing pictures straight to disk without holding every
// embedded image's bytes twice.
func WithPictureSink(sink PictureSink) ReadOption {
	return func(o *readOptions) {
		o.pictureSink = sink
	}
}

// WithIgnoreWarnings discards ReadResult.Warnings rather than
// populating them.
func WithIgnoreWarnings() ReadOption {
	return func(o *readOptions) {
		o.ignoreWarnings = true
	}
}

// WithStrictRead treats any warning produced while reading as a fatal
// error, returned in place of a partial ReadResult.
func WithStrictRead() ReadOption {
	return func(o *readOptions) {
		o.strict = true
	}
}

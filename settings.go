package tagkit

// TextEncoding selects the text encoding a write uses when a format
// gives codecs a choice (ID3v2 frame text, primarily).
type TextEncoding int

const (
	// EncodingLatin1 writes ISO-8859-1, the most compact option but
	// lossy outside that character set.
	EncodingLatin1 TextEncoding = iota
	// EncodingUTF8 writes UTF-8, ID3v2.4's native encoding.
	EncodingUTF8
	// EncodingUTF16 writes UTF-16LE with a BOM, for ID3v2.3 writers
	// that need non-Latin-1 text on a tag version without native UTF-8.
	EncodingUTF16
)

// Settings are the process-wide knobs spec.md's MetaDataIO describes,
// threaded explicitly through OpenOption/UpdateOption rather than held
// as global mutable state.
type Settings struct {
	// EnablePadding reserves slack space on write (FLAC padding block,
	// ID3v2 padding) so a later update of similar size can avoid a full
	// file rewrite.
	EnablePadding bool
	// DefaultTextEncoding is kept on the opened file but not passed to
	// any codec: the ID3v2 codec writes each text frame in the smallest
	// encoding that holds its value, whatever this is set to.
	DefaultTextEncoding TextEncoding
	// DefaultID3v2Version (3 or 4) is kept on the opened file but not
	// passed to any codec: the ID3v2 codec always writes version 2.3.
	DefaultID3v2Version int
}

// DefaultSettings returns the zero-value-safe defaults: padding
// enabled, UTF-8 text, ID3v2.3 on write.
func DefaultSettings() Settings {
	return Settings{
		EnablePadding:       true,
		DefaultTextEncoding: EncodingUTF8,
		DefaultID3v2Version: 3,
	}
}

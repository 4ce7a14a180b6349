package types

// Chapter is a format-neutral chapter marker. EndMS and URL are optional;
// zero/empty mean absent. Timestamps are stored as integer milliseconds,
// the Vorbis Auphonic convention's native unit, since several codecs
// persist milliseconds directly rather than a duration type.
type Chapter struct {
	StartMS  int64
	EndMS    int64
	Title    string
	URL      string
	Subtitle string
}

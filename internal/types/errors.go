package types

import "fmt"

// NotRecognizedError is returned when a file's format cannot be
// determined from its magic bytes or extension.
type NotRecognizedError struct {
	Path string
}

func (e *NotRecognizedError) Error() string {
	return fmt.Sprintf("%s: file format not recognized", e.Path)
}

// MalformedError is returned when a recognized format's bytes violate
// its own framing rules badly enough that parsing cannot continue.
type MalformedError struct {
	Path   string
	Where  string
	Why    string
	Offset int64
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: malformed %s at offset %d: %s", e.Path, e.Where, e.Offset, e.Why)
}

// UnsupportedError is returned when a feature or tag type is not
// supported for the file's format (e.g. requesting an APEv2 update on
// a FLAC file).
type UnsupportedError struct {
	Path    string
	Feature string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: unsupported: %s", e.Path, e.Feature)
}

// IOError wraps an underlying I/O failure so callers can still
// errors.Is/As through to the original cause.
type IOError struct {
	Path  string
	Cause error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Cause)
}

func (e *IOError) Unwrap() error {
	return e.Cause
}

// InvalidArgumentError is returned when a caller-supplied argument
// (an update delta, an option) is structurally invalid.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Reason)
}

// Warning is a non-fatal issue encountered while reading: a recoverable
// parse hiccup, an unsupported native code, a field that could not be
// decoded under its declared encoding. Warnings do not prevent a read
// from succeeding unless a strict read is requested; they accumulate on
// ReadResult.
type Warning struct {
	Stage   string // "vorbis", "flac", "ogg", "id3v2", "id3v1", "apev2", "spc"
	Message string
	Offset  int64
}

func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}

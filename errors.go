package tagkit

import (
	"github.com/go-tagkit/tagkit/internal/types"
)

// NotRecognizedError is an alias to types.NotRecognizedError: a file's
// format could not be determined from its magic bytes.
type NotRecognizedError = types.NotRecognizedError

// MalformedError is an alias to types.MalformedError: a recognized
// format's bytes violate its own framing rules badly enough that
// parsing cannot continue.
type MalformedError = types.MalformedError

// UnsupportedError is an alias to types.UnsupportedError: the requested
// feature or tag type is not supported for the file's format.
type UnsupportedError = types.UnsupportedError

// IOError is an alias to types.IOError: it wraps an underlying I/O
// failure so callers can still errors.Is/As through to the cause.
type IOError = types.IOError

// InvalidArgumentError is an alias to types.InvalidArgumentError: a
// caller-supplied argument is structurally invalid.
type InvalidArgumentError = types.InvalidArgumentError

// Warning is an alias to types.Warning: a non-fatal issue encountered
// while reading.
type Warning = types.Warning

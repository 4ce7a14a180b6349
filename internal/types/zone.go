package types

// ZoneFlag marks special handling a StructureHelper applies to a zone
// during commit.
type ZoneFlag int

const (
	ZoneNone ZoneFlag = iota
	// ZoneDeletable means the zone may shrink to zero length; when it
	// does, CoreSignature (if non-empty) is written in its place so the
	// container stays structurally valid.
	ZoneDeletable
)

// Zone is a named, contiguous byte range in the file that a codec owns
// for the duration of one read/write cycle. Registered while reading in
// "prepare-for-writing" mode, consumed by the rewriter, discarded after
// the write completes.
type Zone struct {
	Name           string
	Offset         int64
	Size           int64
	CoreSignature  []byte
	Flag           ZoneFlag
}

// Anchor is a location whose encoded bytes depend on the size or offset
// of one or more zones: a block-length prefix, a tag size field, a
// checksum. Encode is called after all zone resizes in a commit have
// been applied, with the zones' post-resize state, and must return the
// bytes to write at Offset.
type Anchor struct {
	Name   string
	Offset int64
	Length int64
	// DependsOn lists the zone names whose post-resize size/offset this
	// anchor's encoded value depends on.
	DependsOn []string
	Encode    func(zones map[string]Zone) []byte
}

// Package structure implements the StructureHelper zone/anchor commit
// contract: a codec registers the byte ranges it owns while reading in
// "prepare-for-writing" mode, then hands the helper new content for
// whichever zones changed; the helper splices the file to match and
// fixes up any anchors (size fields, length prefixes) that reference a
// resized zone.
package structure

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-tagkit/tagkit/internal/binary"
	"github.com/go-tagkit/tagkit/internal/types"
)

// Target is the random-access file a Helper commits against.
type Target interface {
	io.ReaderAt
	io.WriterAt
	Truncate(size int64) error
}

// Helper tracks zones and anchors registered by a codec during a read in
// prepare-for-writing mode, and applies a single write-commit against
// them.
type Helper struct {
	zones   map[string]types.Zone
	order   []string // zone names, registration order (need not be offset order)
	anchors []types.Anchor
}

// New returns an empty Helper.
func New() *Helper {
	return &Helper{zones: make(map[string]types.Zone)}
}

// RegisterZone records a byte range a codec owns. Registering a zone
// with a name already present replaces it (a codec re-reading in
// prepare-for-writing mode starts from a clean helper in practice, but
// this keeps re-registration cheap and safe).
func (h *Helper) RegisterZone(z types.Zone) {
	if _, exists := h.zones[z.Name]; !exists {
		h.order = append(h.order, z.Name)
	}
	h.zones[z.Name] = z
}

// RegisterAnchor records a size/offset-dependent location to be
// rewritten after zone resizes are applied.
func (h *Helper) RegisterAnchor(a types.Anchor) {
	h.anchors = append(h.anchors, a)
}

// Zone returns the zone registered under name.
func (h *Helper) Zone(name string) (types.Zone, bool) {
	z, ok := h.zones[name]
	return z, ok
}

// Commit resizes every zone named in content to hold the given bytes,
// splicing the file as needed, then rewrites every registered anchor.
// Zones registered but absent from content are left untouched other
// than having their offset shifted by any earlier zone's resize.
//
// A content value of nil/empty for a ZoneDeletable zone that carries a
// CoreSignature writes the signature in the zone's place rather than
// truly collapsing it to nothing, so the container stays structurally
// valid (spec's zone-lifecycle rule).
//
// size is the file's length before the commit; Commit returns the
// file's length after.
func (h *Helper) Commit(target Target, size int64, content map[string][]byte) (int64, error) {
	names := make([]string, len(h.order))
	copy(names, h.order)
	sort.Slice(names, func(i, j int) bool {
		return h.zones[names[i]].Offset < h.zones[names[j]].Offset
	})

	resolved := make(map[string][]byte, len(content))
	for name, b := range content {
		z, ok := h.zones[name]
		if !ok {
			return size, fmt.Errorf("structure: commit: unregistered zone %q", name)
		}
		if len(b) == 0 && z.Flag == types.ZoneDeletable && len(z.CoreSignature) > 0 {
			b = z.CoreSignature
		}
		resolved[name] = b
	}

	finalZones := make(map[string]types.Zone, len(names))
	var cumulative int64
	for _, name := range names {
		z := h.zones[name]
		newSize := z.Size
		if b, touched := resolved[name]; touched {
			newSize = int64(len(b))
		}
		fz := z
		fz.Offset = z.Offset + cumulative
		fz.Size = newSize
		finalZones[name] = fz
		cumulative += newSize - z.Size
	}

	curSize := size
	for _, name := range names {
		b, touched := resolved[name]
		if !touched {
			continue
		}
		z := h.zones[name]
		fz := finalZones[name]
		delta := fz.Size - z.Size

		switch {
		case delta > 0:
			if err := binary.Lengthen(target, target, curSize, fz.Offset+z.Size, delta); err != nil {
				return curSize, fmt.Errorf("structure: commit: lengthen zone %q: %w", name, err)
			}
		case delta < 0:
			if err := binary.Shorten(target, target, curSize, fz.Offset+fz.Size, -delta); err != nil {
				return curSize, fmt.Errorf("structure: commit: shorten zone %q: %w", name, err)
			}
		}
		curSize += delta

		if len(b) > 0 {
			if _, err := target.WriteAt(b, fz.Offset); err != nil {
				return curSize, fmt.Errorf("structure: commit: write zone %q: %w", name, err)
			}
		}
	}

	for _, a := range h.anchors {
		shifted := a.Offset + prefixDelta(names, h.zones, finalZones, a.Offset)
		b := a.Encode(finalZones)
		if int64(len(b)) != a.Length && a.Length != 0 {
			return curSize, fmt.Errorf("structure: commit: anchor %q encoded %d bytes, want %d", a.Name, len(b), a.Length)
		}
		if _, err := target.WriteAt(b, shifted); err != nil {
			return curSize, fmt.Errorf("structure: commit: write anchor %q: %w", a.Name, err)
		}
	}

	return curSize, nil
}

// prefixDelta sums the size delta of every zone whose original offset
// is strictly less than offset, i.e. the shift that offset itself
// inherits from earlier resizes.
func prefixDelta(names []string, orig, final map[string]types.Zone, offset int64) int64 {
	var sum int64
	for _, name := range names {
		z := orig[name]
		if z.Offset >= offset {
			break
		}
		sum += final[name].Size - z.Size
	}
	return sum
}


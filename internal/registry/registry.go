// Package registry maps a detected Format to the set of Codecs capable
// of reading/writing/removing tags within it. Format packages
// self-register from init() so the root package never imports codec
// packages by name.
package registry

import (
	"sort"
	"sync"

	"github.com/go-tagkit/tagkit/internal/codec"
	"github.com/go-tagkit/tagkit/internal/types"
)

type key struct {
	format  types.Format
	tagType types.TagType
}

var (
	mu     sync.RWMutex
	codecs = make(map[key]codec.Codec)
)

// tagTypePriority fixes the order For() reports a format's tag types
// in, independent of package init() order (which Go leaves unspecified
// across packages with no dependency relation). Lower sorts first. An
// MP3 reads ID3v2's leading header before either of the two trailing
// tag types, and APEv2 before ID3v1 since APEv2 sits just ahead of any
// ID3v1 trailer on disk.
var tagTypePriority = map[types.TagType]int{
	types.TagTypeID3v2:         0,
	types.TagTypeVorbisComment: 0,
	types.TagTypeSPCID666:      0,
	types.TagTypeAPEv2:         1,
	types.TagTypeID3v1:         2,
}

// Register associates a codec with the formats it applies to. A format
// package calls this once per (format, tag type) pairing it supports,
// typically from init().
func Register(format types.Format, c codec.Codec) {
	mu.Lock()
	defer mu.Unlock()

	codecs[key{format, c.TagType()}] = c
}

// For returns every codec registered for format, ordered by
// tagTypePriority so callers get a stable, meaningful read/write
// sequence regardless of package initialization order.
func For(format types.Format) []codec.Codec {
	mu.RLock()
	defer mu.RUnlock()

	var out []codec.Codec
	for k, c := range codecs {
		if k.format == format {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return tagTypePriority[out[i].TagType()] < tagTypePriority[out[j].TagType()]
	})
	return out
}

// Lookup returns the codec registered for (format, tagType), if any.
func Lookup(format types.Format, tagType types.TagType) (codec.Codec, bool) {
	mu.RLock()
	defer mu.RUnlock()

	c, ok := codecs[key{format, tagType}]
	return c, ok
}

// TagTypesFor returns the tag types a format can carry, in the same
// order For would return their codecs.
func TagTypesFor(format types.Format) []types.TagType {
	codecsForFormat := For(format)
	out := make([]types.TagType, len(codecsForFormat))
	for i, c := range codecsForFormat {
		out[i] = c.TagType()
	}
	return out
}

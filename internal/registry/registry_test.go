package registry_test

import (
	"testing"

	_ "github.com/go-tagkit/tagkit/internal/ape"
	_ "github.com/go-tagkit/tagkit/internal/flac"
	_ "github.com/go-tagkit/tagkit/internal/id3v1"
	_ "github.com/go-tagkit/tagkit/internal/id3v2"
	_ "github.com/go-tagkit/tagkit/internal/ogg"
	"github.com/go-tagkit/tagkit/internal/registry"
	_ "github.com/go-tagkit/tagkit/internal/spc"
	"github.com/go-tagkit/tagkit/internal/types"
)

func TestFormatsRegisterTheirCodecs(t *testing.T) {
	cases := []struct {
		format   types.Format
		tagTypes []types.TagType
	}{
		{types.FormatFLAC, []types.TagType{types.TagTypeVorbisComment}},
		{types.FormatOgg, []types.TagType{types.TagTypeVorbisComment}},
		{types.FormatSPC, []types.TagType{types.TagTypeSPCID666}},
	}
	for _, c := range cases {
		codecs := registry.For(c.format)
		if len(codecs) != len(c.tagTypes) {
			t.Fatalf("%v: got %d codecs, want %d", c.format, len(codecs), len(c.tagTypes))
		}
		for i, tt := range c.tagTypes {
			if codecs[i].TagType() != tt {
				t.Errorf("%v codec[%d].TagType() = %v, want %v", c.format, i, codecs[i].TagType(), tt)
			}
		}
	}
}

func TestMP3CarriesThreeTagTypesInReadOrder(t *testing.T) {
	codecs := registry.For(types.FormatMP3)
	if len(codecs) != 3 {
		t.Fatalf("got %d codecs for MP3, want 3", len(codecs))
	}
	// ID3v2 (leading header) before APEv2 before ID3v1 (both trailing,
	// APEv2 sits just ahead of any ID3v1 block on disk).
	want := []types.TagType{types.TagTypeID3v2, types.TagTypeAPEv2, types.TagTypeID3v1}
	for i, tt := range want {
		if codecs[i].TagType() != tt {
			t.Errorf("codecs[%d].TagType() = %v, want %v", i, codecs[i].TagType(), tt)
		}
	}
}

func TestLookupMissingReturnsFalse(t *testing.T) {
	if _, ok := registry.Lookup(types.FormatFLAC, types.TagTypeID3v2); ok {
		t.Error("expected no ID3v2 codec registered for FLAC")
	}
}

func TestUnknownFormatHasNoCodecs(t *testing.T) {
	if codecs := registry.For(types.FormatUnknown); len(codecs) != 0 {
		t.Errorf("got %d codecs for FormatUnknown, want 0", len(codecs))
	}
}

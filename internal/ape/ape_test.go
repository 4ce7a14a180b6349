package ape

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

// buildTag assembles a minimal APEv2 tag (header + items + footer).
func buildTag(items []item) []byte {
	var itemsBytes []byte
	for _, it := range items {
		itemsBytes = append(itemsBytes, encodeItem(it)...)
	}
	footer := block{Version: version, TagSize: uint32(len(itemsBytes) + blockSize), ItemCount: uint32(len(items)), Flags: flagHasHeader}
	header := footer
	header.Flags = flagHasHeader | flagIsHeader

	var out []byte
	out = append(out, encodeBlock(header)...)
	out = append(out, itemsBytes...)
	out = append(out, encodeBlock(footer)...)
	return out
}

func TestReadTextItems(t *testing.T) {
	items := []item{
		{Key: "Title", ValueType: valueText, Value: []byte("Test Song")},
		{Key: "Artist", ValueType: valueText, Value: []byte("Test Artist")},
		{Key: "MusicBrainz Album Id", ValueType: valueText, Value: []byte("abc-123")},
	}
	data := append([]byte("audio data here"), buildTag(items)...)
	target := &memTarget{data: data}

	out, err := (Codec{}).Read(target, int64(len(data)), "test.ape")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !out.Exists {
		t.Fatal("expected tag to exist")
	}
	if got, _ := out.Tag.Get(types.FieldTitle); got != "Test Song" {
		t.Errorf("Title = %q", got)
	}
	if got, _ := out.Tag.Get(types.FieldArtist); got != "Test Artist" {
		t.Errorf("Artist = %q", got)
	}
	if f, ok := out.Tag.GetAdditional(types.TagTypeAPEv2, "MusicBrainz Album Id"); !ok || f.Value != "abc-123" {
		t.Errorf("additional field = %+v, ok=%v", f, ok)
	}
}

func TestReadMultiValueAndBinary(t *testing.T) {
	items := []item{
		{Key: "Genre", ValueType: valueText, Value: joinMultiValue([]string{"Rock", "Pop"})},
		{Key: "Cover Art (Front)", ValueType: valueBinary, Value: []byte("binarydata")},
	}
	data := append([]byte("audio"), buildTag(items)...)
	target := &memTarget{data: data}

	out, err := (Codec{}).Read(target, int64(len(data)), "test.ape")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got, _ := out.Tag.Get(types.FieldGenre); got != "Rock; Pop" {
		t.Errorf("Genre = %q", got)
	}
	if f, ok := out.Tag.GetAdditional(types.TagTypeAPEv2, "Cover Art (Front)"); !ok || string(f.BinaryValue) != "binarydata" {
		t.Errorf("binary field = %+v, ok=%v", f, ok)
	}
}

func TestNoTagPresent(t *testing.T) {
	data := []byte("just plain audio bytes, nothing tagged")
	target := &memTarget{data: data}

	out, err := (Codec{}).Read(target, int64(len(data)), "test.ape")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if out.Exists {
		t.Fatal("expected no tag")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	audio := []byte("the audio payload")
	target := &memTarget{data: append([]byte{}, audio...)}
	size := int64(len(target.data))

	c := Codec{}
	out, err := c.Read(target, size, "test.ape")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	delta := types.NewTagData()
	delta.Set(types.FieldTitle, "New Title")
	delta.Set(types.FieldArtist, "New Artist")

	current := out.Tag
	if current == nil {
		current = types.NewTagData()
	}
	newSize, err := c.Write(target, size, "test.ape", current, delta, codec.WriteOptions{})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	target.data = target.data[:newSize]

	reread, err := c.Read(target, newSize, "test.ape")
	if err != nil {
		t.Fatalf("re-Read: %v", err)
	}
	if got, _ := reread.Tag.Get(types.FieldTitle); got != "New Title" {
		t.Errorf("Title = %q", got)
	}
	if string(target.data[:len(audio)]) != string(audio) {
		t.Error("audio payload was disturbed by writing the tag")
	}
}

func TestWriteBeforeID3v1(t *testing.T) {
	audio := []byte("audio bytes")
	id3v1 := make([]byte, id3v1Size)
	copy(id3v1[0:3], "TAG")
	data := append(append([]byte{}, audio...), id3v1...)
	target := &memTarget{data: data}
	size := int64(len(data))

	c := Codec{}
	delta := types.NewTagData()
	delta.Set(types.FieldTitle, "Title Before ID3v1")

	newSize, err := c.Write(target, size, "test.ape", types.NewTagData(), delta, codec.WriteOptions{})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	target.data = target.data[:newSize]

	if string(target.data[newSize-int64(id3v1Size):newSize-int64(id3v1Size)+3]) != "TAG" {
		t.Error("ID3v1 trailer was not preserved after the new APEv2 tag")
	}

	reread, err := c.Read(target, newSize, "test.ape")
	if err != nil {
		t.Fatalf("re-Read: %v", err)
	}
	if got, _ := reread.Tag.Get(types.FieldTitle); got != "Title Before ID3v1" {
		t.Errorf("Title = %q", got)
	}
}

func TestRemoveClearsTag(t *testing.T) {
	items := []item{{Key: "Title", ValueType: valueText, Value: []byte("Gone")}}
	audio := []byte("audio bytes")
	data := append(append([]byte{}, audio...), buildTag(items)...)
	target := &memTarget{data: data}
	size := int64(len(data))

	c := Codec{}
	newSize, err := c.Remove(target, size, "test.ape")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	target.data = target.data[:newSize]

	if newSize != int64(len(audio)) {
		t.Fatalf("newSize = %d, want %d", newSize, len(audio))
	}

	out, err := c.Read(target, newSize, "test.ape")
	if err != nil {
		t.Fatalf("Read after remove: %v", err)
	}
	if out.Exists {
		t.Error("expected no tag after remove")
	}
}

var _ codec.Codec = Codec{}

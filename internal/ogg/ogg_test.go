package ogg

import (
	"testing"

	"github.com/go-tagkit/tagkit/internal/codec"
	"github.com/go-tagkit/tagkit/internal/types"
)

// memTarget is an in-memory codec.Target, standing in for an *os.File
// the way the teacher's tests stand a temp file in for production I/O.
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

func buildIdentification(sampleRate, channels uint32) []byte {
	data := make([]byte, 30)
	data[0] = 0x01
	copy(data[1:7], "vorbis")
	// data[7:11] is vorbis_version, left zero.
	data[11] = byte(channels)
	putLE32(data[12:16], sampleRate)
	return data
}

func buildCommentPacket(vendor string, comments []string) []byte {
	wire := encodeWireForTest(vendor, comments)
	out := make([]byte, 0, 7+len(wire)+1)
	out = append(out, 0x03)
	out = append(out, "vorbis"...)
	out = append(out, wire...)
	out = append(out, 0x01)
	return out
}

// encodeWireForTest avoids importing internal/vorbis from a test file
// that otherwise only exercises this package's own wire handling.
func encodeWireForTest(vendor string, comments []string) []byte {
	buf := appendWireUint32Test(nil, uint32(len(vendor)))
	buf = append(buf, vendor...)
	buf = appendWireUint32Test(buf, uint32(len(comments)))
	for _, c := range comments {
		buf = appendWireUint32Test(buf, uint32(len(c)))
		buf = append(buf, c...)
	}
	return buf
}

func appendWireUint32Test(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// buildTestStream assembles a minimal 4-page Ogg Vorbis stream:
// identification (BOS), comment, setup, one audio page (EOS).
func buildTestStream(vendor string, comments []string) []byte {
	const serial = uint32(7)

	var out []byte
	seq := uint32(0)

	idPacket := buildIdentification(44100, 2)
	out = append(out, EncodePage(PageHeader{Flags: FlagBOS, Serial: serial, Sequence: seq}, []byte{byte(len(idPacket))}, idPacket)...)
	seq++

	commentPacket := buildCommentPacket(vendor, comments)
	for _, ch := range lacePages(commentPacket) {
		flags := byte(0)
		out = append(out, EncodePage(PageHeader{Flags: flags, Serial: serial, Sequence: seq}, ch.Lacing, ch.Payload)...)
		seq++
	}

	setupPacket := []byte{0x05, 'v', 'o', 'r', 'b', 'i', 's', 0}
	out = append(out, EncodePage(PageHeader{Flags: 0, Serial: serial, Sequence: seq}, []byte{byte(len(setupPacket))}, setupPacket)...)
	seq++

	audioPacket := []byte{0xAA, 0xBB, 0xCC}
	out = append(out, EncodePage(PageHeader{Flags: FlagEOS, Granule: 44100, Serial: serial, Sequence: seq}, []byte{byte(len(audioPacket))}, audioPacket)...)

	return out
}

func TestReadIdentificationAndComments(t *testing.T) {
	data := buildTestStream("libVorbis 1.3.7", []string{"TITLE=Test Song", "ARTIST=Test Artist"})
	target := &memTarget{data: data}

	out, err := (Codec{}).Read(target, int64(len(data)), "test.ogg")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !out.Exists {
		t.Fatal("expected tag to exist")
	}
	if got, _ := out.Tag.Get(types.FieldTitle); got != "Test Song" {
		t.Errorf("Title = %q", got)
	}
	if out.Audio.SampleRate != 44100 || out.Audio.Channels != 2 {
		t.Errorf("audio info = %+v", out.Audio)
	}
	if out.Audio.Duration == 0 {
		t.Errorf("expected nonzero duration from granule position")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	data := buildTestStream("libVorbis 1.3.7", []string{"TITLE=Old Title"})
	target := &memTarget{data: data}
	size := int64(len(data))

	c := Codec{}
	out, err := c.Read(target, size, "test.ogg")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	delta := types.NewTagData()
	delta.Set(types.FieldTitle, "New Title")
	delta.Pictures = []types.Picture{{Type: types.PictureFront, MIME: "image/jpeg", Data: []byte("jpegbytes")}}

	newSize, err := c.Write(target, size, "test.ogg", out.Tag, delta, codec.WriteOptions{})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	target.data = target.data[:newSize]

	reread, err := c.Read(target, newSize, "test.ogg")
	if err != nil {
		t.Fatalf("re-Read: %v", err)
	}
	if got, _ := reread.Tag.Get(types.FieldTitle); got != "New Title" {
		t.Errorf("Title after write = %q, want New Title", got)
	}
	if len(reread.Tag.Pictures) != 1 || string(reread.Tag.Pictures[0].Data) != "jpegbytes" {
		t.Errorf("pictures after write = %+v", reread.Tag.Pictures)
	}
	if reread.Audio.SampleRate != 44100 {
		t.Errorf("audio info lost after write: %+v", reread.Audio)
	}
}

func TestWriteGrowsAcrossMultiplePages(t *testing.T) {
	data := buildTestStream("libVorbis 1.3.7", nil)
	target := &memTarget{data: data}
	size := int64(len(data))

	c := Codec{}
	out, err := c.Read(target, size, "test.ogg")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	delta := types.NewTagData()
	big := make([]byte, 200000)
	for i := range big {
		big[i] = byte('a' + i%26)
	}
	delta.Pictures = []types.Picture{{Type: types.PictureFront, MIME: "image/jpeg", Data: big}}

	newSize, err := c.Write(target, size, "test.ogg", out.Tag, delta, codec.WriteOptions{})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	target.data = target.data[:newSize]

	reread, err := c.Read(target, newSize, "test.ogg")
	if err != nil {
		t.Fatalf("re-Read: %v", err)
	}
	if len(reread.Tag.Pictures) != 1 || len(reread.Tag.Pictures[0].Data) != len(big) {
		t.Errorf("picture round-trip failed across multi-page comment packet")
	}
	if reread.Audio.SampleRate != 44100 {
		t.Errorf("trailing setup/audio pages corrupted: %+v", reread.Audio)
	}
}

func TestRemoveEmptiesCommentPacket(t *testing.T) {
	data := buildTestStream("libVorbis 1.3.7", []string{"TITLE=Gone Soon"})
	target := &memTarget{data: data}
	size := int64(len(data))

	c := Codec{}
	newSize, err := c.Remove(target, size, "test.ogg")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	target.data = target.data[:newSize]

	out, err := c.Read(target, newSize, "test.ogg")
	if err != nil {
		t.Fatalf("Read after remove: %v", err)
	}
	if got, _ := out.Tag.Get(types.FieldTitle); got != "" {
		t.Errorf("Title after remove = %q, want empty", got)
	}
	if out.Audio.SampleRate != 44100 {
		t.Errorf("identification header corrupted by remove: %+v", out.Audio)
	}
}

var _ codec.Codec = Codec{}

package id3v2

import (
	"testing"

	"github.com/go-tagkit/tagkit/internal/binary"
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

// mpegFrame is one minimal, valid 144-byte MPEG1 Layer III frame at
// 128kbps/44100Hz/stereo, enough for probeAudio to recognize.
func mpegFrame() []byte {
	frame := make([]byte, 144)
	frame[0] = 0xFF
	frame[1] = 0xFB // MPEG1, layer III, no CRC
	frame[2] = 0x90 // bitrate index 9 (128kbps), sample rate index 0 (44100), no padding
	frame[3] = 0x00 // stereo
	return frame
}

// buildV23Tag assembles a minimal ID3v2.3 tag: header plus the given
// already-encoded frame bytes plus paddingLen zero bytes.
func buildV23Tag(frames [][]byte, paddingLen int) []byte {
	var body []byte
	for _, f := range frames {
		body = append(body, f...)
	}
	body = append(body, make([]byte, paddingLen)...)
	return append(encodeHeader(uint32(len(body))), body...)
}

func buildTestFile(frames [][]byte, paddingLen int) []byte {
	tag := buildV23Tag(frames, paddingLen)
	return append(tag, mpegFrame()...)
}

func TestReadTextAndCommentFrames(t *testing.T) {
	frames := [][]byte{
		encodeFrame("TIT2", encodeTextFrame("Test Song")),
		encodeFrame("TPE1", encodeTextFrame("Test Artist")),
		encodeFrame("COMM", encodeCommentFrame("eng", "", "a comment")),
		encodeFrame("TXXX", encodeTXXXFrame("MOOD", "Happy")),
	}
	data := buildTestFile(frames, 10)
	target := &memTarget{data: data}

	out, err := (Codec{}).Read(target, int64(len(data)), "test.mp3")
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
	if got, _ := out.Tag.Get(types.FieldComment); got != "a comment" {
		t.Errorf("Comment = %q", got)
	}
	if f, ok := out.Tag.GetAdditional(types.TagTypeID3v2, "TXXX:MOOD"); !ok || f.Value != "Happy" {
		t.Errorf("TXXX:MOOD = %+v, ok=%v", f, ok)
	}
	if out.Audio.SampleRate != 44100 || out.Audio.Channels != 2 || out.Audio.Bitrate != 128000 {
		t.Errorf("audio info = %+v", out.Audio)
	}
}

func TestReadUnicodeTitle(t *testing.T) {
	frames := [][]byte{
		encodeFrame("TIT2", encodeTextFrame("日本語タイトル")),
	}
	data := buildTestFile(frames, 0)
	target := &memTarget{data: data}

	out, err := (Codec{}).Read(target, int64(len(data)), "test.mp3")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got, _ := out.Tag.Get(types.FieldTitle); got != "日本語タイトル" {
		t.Errorf("Title = %q", got)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	frames := [][]byte{
		encodeFrame("TIT2", encodeTextFrame("Old Title")),
	}
	data := buildTestFile(frames, 20)
	target := &memTarget{data: data}
	size := int64(len(data))

	c := Codec{}
	out, err := c.Read(target, size, "test.mp3")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	delta := types.NewTagData()
	delta.Set(types.FieldTitle, "New Title")
	delta.Pictures = []types.Picture{{Type: types.PictureFront, MIME: "image/jpeg", Data: []byte("jpegbytes")}}

	newSize, err := c.Write(target, size, "test.mp3", out.Tag, delta, codec.WriteOptions{EnablePadding: true})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	target.data = target.data[:newSize]

	reread, err := c.Read(target, newSize, "test.mp3")
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
		t.Errorf("audio frame corrupted by write: %+v", reread.Audio)
	}
}

func TestWriteGrowsPastPadding(t *testing.T) {
	frames := [][]byte{
		encodeFrame("TIT2", encodeTextFrame("short")),
	}
	data := buildTestFile(frames, 4)
	target := &memTarget{data: data}
	size := int64(len(data))

	c := Codec{}
	out, err := c.Read(target, size, "test.mp3")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	delta := types.NewTagData()
	delta.Set(types.FieldTitle, "a considerably longer title than before, past the padding budget")

	newSize, err := c.Write(target, size, "test.mp3", out.Tag, delta, codec.WriteOptions{EnablePadding: true})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	target.data = target.data[:newSize]

	reread, err := c.Read(target, newSize, "test.mp3")
	if err != nil {
		t.Fatalf("re-Read: %v", err)
	}
	if got, _ := reread.Tag.Get(types.FieldTitle); got != "a considerably longer title than before, past the padding budget" {
		t.Errorf("Title after write = %q", got)
	}
	if reread.Audio.SampleRate != 44100 {
		t.Errorf("audio frame corrupted by write: %+v", reread.Audio)
	}
}

func TestWriteNoExistingTag(t *testing.T) {
	data := mpegFrame()
	target := &memTarget{data: data}
	size := int64(len(data))

	c := Codec{}
	out, err := c.Read(target, size, "test.mp3")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if out.Exists {
		t.Fatal("expected no tag on a bare MPEG stream")
	}

	delta := types.NewTagData()
	delta.Set(types.FieldTitle, "Inserted Title")

	current := out.Tag
	if current == nil {
		current = types.NewTagData() // no tag read: Write's caller supplies an empty current, same as AudioDataManager's update path
	}
	newSize, err := c.Write(target, size, "test.mp3", current, delta, codec.WriteOptions{EnablePadding: true})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	target.data = target.data[:newSize]

	reread, err := c.Read(target, newSize, "test.mp3")
	if err != nil {
		t.Fatalf("re-Read: %v", err)
	}
	if got, _ := reread.Tag.Get(types.FieldTitle); got != "Inserted Title" {
		t.Errorf("Title = %q, want Inserted Title", got)
	}
}

func TestRemoveClearsFrames(t *testing.T) {
	frames := [][]byte{
		encodeFrame("TIT2", encodeTextFrame("Gone Soon")),
		encodeFrame("COMM", encodeCommentFrame("eng", "", "bye")),
	}
	data := buildTestFile(frames, 0)
	target := &memTarget{data: data}
	size := int64(len(data))

	c := Codec{}
	newSize, err := c.Remove(target, size, "test.mp3")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	target.data = target.data[:newSize]

	out, err := c.Read(target, newSize, "test.mp3")
	if err != nil {
		t.Fatalf("Read after remove: %v", err)
	}
	if got, _ := out.Tag.Get(types.FieldTitle); got != "" {
		t.Errorf("Title after remove = %q, want empty", got)
	}
	if out.Audio.SampleRate != 44100 {
		t.Errorf("audio frame corrupted by remove: %+v", out.Audio)
	}
}

func TestChapterRoundTrip(t *testing.T) {
	data := buildTestFile(nil, 0)
	target := &memTarget{data: data}
	size := int64(len(data))

	c := Codec{}
	out, err := c.Read(target, size, "test.mp3")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	delta := types.NewTagData()
	delta.Chapters = []types.Chapter{
		{StartMS: 0, EndMS: 15000, Title: "Intro"},
		{StartMS: 15000, EndMS: 30000, Title: "Chapter 1"},
	}

	newSize, err := c.Write(target, size, "test.mp3", out.Tag, delta, codec.WriteOptions{EnablePadding: true})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	target.data = target.data[:newSize]

	reread, err := c.Read(target, newSize, "test.mp3")
	if err != nil {
		t.Fatalf("re-Read: %v", err)
	}
	if len(reread.Tag.Chapters) != 2 {
		t.Fatalf("chapters = %+v, want 2", reread.Tag.Chapters)
	}
	if reread.Tag.Chapters[0].Title != "Intro" || reread.Tag.Chapters[1].Title != "Chapter 1" {
		t.Errorf("chapters = %+v", reread.Tag.Chapters)
	}
}

func TestLegacyV22Frame(t *testing.T) {
	// A minimal v2.2 tag: header version 2, one TT2 frame (6-byte
	// frame header: 3-byte id + 3-byte size, no flags).
	frameBody := encodeTextFrame("V22 Title")
	frameHeader := []byte{'T', 'T', '2', byte(len(frameBody) >> 16), byte(len(frameBody) >> 8), byte(len(frameBody))}
	body := append(frameHeader, frameBody...)

	header := make([]byte, 10)
	copy(header[0:3], "ID3")
	header[3] = 2 // version 2.2
	sz := binary.EncodeSyncSafe32(uint32(len(body)))
	copy(header[6:10], sz[:])

	data := append(header, body...)
	data = append(data, mpegFrame()...)
	target := &memTarget{data: data}

	out, err := (Codec{}).Read(target, int64(len(data)), "test.mp3")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got, _ := out.Tag.Get(types.FieldTitle); got != "V22 Title" {
		t.Errorf("Title = %q, want V22 Title", got)
	}
}

var _ codec.Codec = Codec{}

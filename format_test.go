package tagkit

import (
	"bytes"
	"testing"
)

func TestDetectFormat_TooSmall(t *testing.T) {
	data := []byte{0x00, 0x00}

	_, err := DetectFormat(bytes.NewReader(data), int64(len(data)), "tiny.bin")
	if err == nil {
		t.Fatal("expected error for file too small")
	}

	if _, ok := err.(*NotRecognizedError); !ok {
		t.Errorf("expected NotRecognizedError, got %T", err)
	}
}

func TestDetectFormat_Unrecognized(t *testing.T) {
	data := []byte("not an audio file at all, just text")

	_, err := DetectFormat(bytes.NewReader(data), int64(len(data)), "unknown.bin")
	if err == nil {
		t.Fatal("expected error for unrecognized format")
	}

	if _, ok := err.(*NotRecognizedError); !ok {
		t.Errorf("expected NotRecognizedError, got %T", err)
	}
}

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format   Format
		expected string
	}{
		{FormatFLAC, "FLAC"},
		{FormatOgg, "Ogg Vorbis"},
		{FormatMP3, "MP3"},
		{FormatSPC, "SPC700"},
		{FormatUnknown, "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.expected {
			t.Errorf("Format(%d).String() = %s, want %s", tt.format, got, tt.expected)
		}
	}
}

func TestFormat_Extensions(t *testing.T) {
	tests := []struct {
		format Format
		want   []string
	}{
		{FormatFLAC, []string{".flac"}},
		{FormatOgg, []string{".ogg", ".oga"}},
		{FormatMP3, []string{".mp3"}},
		{FormatSPC, []string{".spc"}},
		{FormatUnknown, nil},
	}

	for _, tt := range tests {
		got := tt.format.Extensions()
		if len(got) != len(tt.want) {
			t.Errorf("Format(%s).Extensions() = %v, want %v", tt.format, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Format(%s).Extensions()[%d] = %q, want %q", tt.format, i, got[i], tt.want[i])
			}
		}
	}
}

func TestDetectFormat_FLAC(t *testing.T) {
	data := append([]byte("fLaC"), make([]byte, 100)...)

	format, err := DetectFormat(bytes.NewReader(data), int64(len(data)), "test.flac")
	if err != nil {
		t.Fatalf("DetectFormat failed: %v", err)
	}

	if format != FormatFLAC {
		t.Errorf("DetectFormat() = %v, want %v", format, FormatFLAC)
	}
}

func TestDetectFormat_MP3_WithID3(t *testing.T) {
	data := append([]byte("ID3"), make([]byte, 100)...)

	format, err := DetectFormat(bytes.NewReader(data), int64(len(data)), "test.mp3")
	if err != nil {
		t.Fatalf("DetectFormat failed: %v", err)
	}

	if format != FormatMP3 {
		t.Errorf("DetectFormat() = %v, want %v", format, FormatMP3)
	}
}

func TestDetectFormat_MP3_WithoutID3(t *testing.T) {
	data := append([]byte{0xFF, 0xFB, 0x00, 0x00}, make([]byte, 100)...)

	format, err := DetectFormat(bytes.NewReader(data), int64(len(data)), "test.mp3")
	if err != nil {
		t.Fatalf("DetectFormat failed: %v", err)
	}

	if format != FormatMP3 {
		t.Errorf("DetectFormat() = %v, want %v", format, FormatMP3)
	}
}

func TestDetectFormat_Ogg(t *testing.T) {
	data := append([]byte("OggS"), make([]byte, 100)...)

	format, err := DetectFormat(bytes.NewReader(data), int64(len(data)), "test.ogg")
	if err != nil {
		t.Fatalf("DetectFormat failed: %v", err)
	}

	if format != FormatOgg {
		t.Errorf("DetectFormat() = %v, want %v", format, FormatOgg)
	}
}

func TestDetectFormat_SPC(t *testing.T) {
	buf := &bytes.Buffer{}
	buf.WriteString("SNES-SPC700 Sound File Data v0.30")
	buf.Write(make([]byte, 200))

	data := buf.Bytes()
	format, err := DetectFormat(bytes.NewReader(data), int64(len(data)), "test.spc")
	if err != nil {
		t.Fatalf("DetectFormat failed: %v", err)
	}

	if format != FormatSPC {
		t.Errorf("DetectFormat() = %v, want %v", format, FormatSPC)
	}
}

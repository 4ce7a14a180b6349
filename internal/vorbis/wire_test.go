package vorbis

import "testing"

func TestWireRoundTrip(t *testing.T) {
	data := EncodeWire("my encoder 1.0", []string{"TITLE=Hello", "ARTIST=World"})

	vendor, comments, err := DecodeWire(data)
	if err != nil {
		t.Fatalf("DecodeWire: %v", err)
	}
	if vendor != "my encoder 1.0" {
		t.Errorf("vendor = %q", vendor)
	}
	if len(comments) != 2 || comments[0] != "TITLE=Hello" || comments[1] != "ARTIST=World" {
		t.Errorf("comments = %v", comments)
	}
}

func TestWireTruncated(t *testing.T) {
	_, _, err := DecodeWire([]byte{0x05, 0x00, 0x00, 0x00})
	if err == nil {
		t.Fatal("expected error for truncated payload")
	}
}

package tagkit

import (
	"errors"
	"strings"
	"testing"
)

func TestNotRecognizedError_Error(t *testing.T) {
	err := &NotRecognizedError{Path: "test.bin"}
	msg := err.Error()
	if !strings.Contains(msg, "test.bin") || !strings.Contains(msg, "not recognized") {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestMalformedError_Error(t *testing.T) {
	err := &MalformedError{Path: "broken.flac", Where: "STREAMINFO block", Why: "short read", Offset: 42}
	msg := err.Error()
	for _, want := range []string{"broken.flac", "STREAMINFO block", "short read", "42"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q should contain %q", msg, want)
		}
	}
}

func TestUnsupportedError_Error(t *testing.T) {
	err := &UnsupportedError{Path: "song.spc", Feature: "APEv2 on SPC"}
	msg := err.Error()
	if !strings.Contains(msg, "song.spc") || !strings.Contains(msg, "APEv2 on SPC") {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestIOError_Unwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := &IOError{Path: "out.mp3", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
	if !strings.Contains(err.Error(), "out.mp3") {
		t.Errorf("message should contain path: %q", err.Error())
	}
}

func TestInvalidArgumentError_Error(t *testing.T) {
	err := &InvalidArgumentError{Reason: "delta tag type does not match this codec"}
	if !strings.Contains(err.Error(), "delta tag type does not match this codec") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

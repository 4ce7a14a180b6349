package tagkit_test

import (
	"errors"
	"os"
	"testing"

	"github.com/go-tagkit/tagkit"
	_ "github.com/go-tagkit/tagkit/internal/flac"
)

func TestAudioFile_Update_UnsupportedTagType(t *testing.T) {
	path := createTestFLACFile(t)
	defer os.Remove(path)

	f, err := tagkit.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	delta := tagkit.NewTagData()
	delta.Set(tagkit.FieldTitle, "New Title")

	err = f.Update(delta, tagkit.TagTypeID3v2)
	if err == nil {
		t.Fatal("expected error updating an ID3v2 tag on a FLAC file")
	}

	var unsupportedErr *tagkit.UnsupportedError
	if !errors.As(err, &unsupportedErr) {
		t.Fatalf("expected *UnsupportedError, got %T: %v", err, err)
	}
}

func TestAudioFile_Remove_UnsupportedTagType(t *testing.T) {
	path := createTestFLACFile(t)
	defer os.Remove(path)

	f, err := tagkit.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	err = f.Remove(tagkit.TagTypeAPEv2)
	if err == nil {
		t.Fatal("expected error removing an APEv2 tag from a FLAC file")
	}

	var unsupportedErr *tagkit.UnsupportedError
	if !errors.As(err, &unsupportedErr) {
		t.Fatalf("expected *UnsupportedError, got %T: %v", err, err)
	}
}

func TestAudioFile_Update_UnsupportedTagType_LeavesFileUntouched(t *testing.T) {
	path := createTestFLACFile(t)
	defer os.Remove(path)

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	f, err := tagkit.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	delta := tagkit.NewTagData()
	delta.Set(tagkit.FieldTitle, "New Title")
	_ = f.Update(delta, tagkit.TagTypeID3v1)

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("file contents changed despite the write being rejected as unsupported")
	}
}

func TestAudioFile_Update_UnsupportedTagType_SkipsBackup(t *testing.T) {
	path := createTestFLACFile(t)
	defer os.Remove(path)
	defer os.Remove(path + ".bak")

	f, err := tagkit.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	delta := tagkit.NewTagData()
	delta.Set(tagkit.FieldTitle, "New Title")
	_ = f.Update(delta, tagkit.TagTypeID3v2, tagkit.WithBackup(".bak"))

	if _, err := os.Stat(path + ".bak"); err == nil {
		t.Error("expected no backup file for a rejected unsupported-tag-type update")
	}
}

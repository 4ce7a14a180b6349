package tagkit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-tagkit/tagkit/internal/codec"
	"github.com/go-tagkit/tagkit/internal/registry"
)

// Update merges delta into the file's current tag of tagType and
// persists the result. delta's empty-string field values and
// MarkedForDeletion additional fields are treated as removal requests
// (per the codec.Merge rules every codec shares).
//
// Returns UnsupportedError if the file's Format carries no codec for
// tagType (e.g. requesting an APEv2 update on a FLAC file).
func (f *AudioFile) Update(delta *TagData, tagType TagType, opts ...UpdateOption) error {
	return f.write(tagType, opts, func(c codec.Codec, target codec.Target, size int64) (int64, error) {
		outcome, err := c.Read(target, size, f.Path)
		if err != nil {
			return size, err
		}
		current := outcome.Tag
		if current == nil {
			current = NewTagData()
		}
		return c.Write(target, size, f.Path, current, delta, codec.WriteOptions{EnablePadding: f.settings.EnablePadding})
	})
}

// Remove clears the file's tag of tagType, preserving whatever fields
// the format considers mandatory for playback (e.g. SPC700's
// playback-control ids).
func (f *AudioFile) Remove(tagType TagType, opts ...UpdateOption) error {
	return f.write(tagType, opts, func(c codec.Codec, target codec.Target, size int64) (int64, error) {
		return c.Remove(target, size, f.Path)
	})
}

// write is the shared atomic-update machinery behind Update and
// Remove: it builds a temp copy of the file, lets fn splice tagType's
// region via the codec's zone-based writer, then renames the temp file
// over the original so a failure partway through never corrupts it.
func (f *AudioFile) write(tagType TagType, opts []UpdateOption, fn func(c codec.Codec, target codec.Target, size int64) (int64, error)) error {
	options := defaultUpdateOptions()
	for _, opt := range opts {
		opt(options)
	}

	c, ok := registry.Lookup(f.Format, tagType)
	if !ok {
		return &UnsupportedError{Path: f.Path, Feature: fmt.Sprintf("%s on %s", tagType, f.Format)}
	}

	var origModTime os.FileInfo
	if options.preserveModTime {
		if info, err := os.Stat(f.Path); err == nil {
			origModTime = info
		}
	}

	if options.backupSuffix != "" {
		if err := copyFile(f.Path, f.Path+options.backupSuffix); err != nil {
			return &IOError{Path: f.Path, Cause: fmt.Errorf("create backup: %w", err)}
		}
	}

	dir := filepath.Dir(f.Path)
	temp, err := os.CreateTemp(dir, ".tagkit-*.tmp")
	if err != nil {
		return &IOError{Path: f.Path, Cause: err}
	}
	tempPath := temp.Name()
	success := false
	defer func() {
		if !success {
			temp.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := f.reader.Seek(0, io.SeekStart); err != nil {
		return &IOError{Path: f.Path, Cause: err}
	}
	if _, err := io.Copy(temp, f.reader); err != nil {
		return &IOError{Path: f.Path, Cause: fmt.Errorf("copy to temp: %w", err)}
	}

	newSize, err := fn(c, temp, f.Size)
	if err != nil {
		return fmt.Errorf("write %s: %w", tagType, err)
	}

	if err := temp.Sync(); err != nil {
		return &IOError{Path: f.Path, Cause: err}
	}
	if err := temp.Close(); err != nil {
		return &IOError{Path: f.Path, Cause: err}
	}

	if err := f.reader.Close(); err != nil {
		return &IOError{Path: f.Path, Cause: err}
	}
	if err := os.Rename(tempPath, f.Path); err != nil {
		return &IOError{Path: f.Path, Cause: fmt.Errorf("rename temp to original: %w", err)}
	}
	success = true

	reopened, err := os.Open(f.Path)
	if err != nil {
		return &IOError{Path: f.Path, Cause: err}
	}
	f.reader = reopened
	f.Size = newSize

	if options.preserveModTime && origModTime != nil {
		os.Chtimes(f.Path, origModTime.ModTime(), origModTime.ModTime()) //nolint:errcheck // best-effort
	}

	if options.validate {
		if _, err := f.Read(); err != nil {
			return fmt.Errorf("validate after write: %w", err)
		}
	}

	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

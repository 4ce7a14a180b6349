package tagkit

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/go-tagkit/tagkit/internal/registry"
	"github.com/go-tagkit/tagkit/internal/types"
)

// AudioFile is an opened audio file, ready for Read, Update, or Remove.
//
// Opening is cheap: only the format magic bytes are inspected. Read
// does the actual tag decoding, and may be called more than once (it
// re-reads from the underlying file each time, picking up any changes
// Update/Remove made).
//
// Always call Close when done:
//
//	f, err := tagkit.Open("song.flac")
//	if err != nil {
//		return err
//	}
//	defer f.Close()
type AudioFile struct {
	Path     string
	Format   Format
	Size     int64
	settings Settings

	reader *os.File
}

// Open opens path and detects its format. It does not yet parse any
// tag; call Read for that.
func Open(path string, opts ...OpenOption) (*AudioFile, error) {
	options := defaultOpenOptions()
	for _, opt := range opts {
		opt(options)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Cause: err}
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &IOError{Path: path, Cause: err}
	}
	size := stat.Size()

	format, err := DetectFormat(f, size, path)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &AudioFile{
		Path:     path,
		Format:   format,
		Size:     size,
		settings: options.settings,
		reader:   f,
	}, nil
}

// OpenContext is Open with an upfront context.Context cancellation
// check, for callers that open files as part of a larger cancellable
// operation.
func OpenContext(ctx context.Context, path string, opts ...OpenOption) (*AudioFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// Close releases the file handle. After Close, the AudioFile must not
// be used.
func (f *AudioFile) Close() error {
	if f.reader == nil {
		return nil
	}
	return f.reader.Close()
}

// Read scans the file for every tag type its Format can carry and
// decodes each one present. A TagType the file simply doesn't carry is
// reported as TagSnapshot{Exists: false}, not an error.
func (f *AudioFile) Read(opts ...ReadOption) (*ReadResult, error) {
	options := defaultReadOptions()
	for _, opt := range opts {
		opt(options)
	}

	result := &ReadResult{
		Format: f.Format,
		Tags:   make(map[types.TagType]*TagSnapshot),
	}

	for _, c := range registry.For(f.Format) {
		outcome, err := c.Read(f.reader, f.Size, f.Path)
		snapshot := &TagSnapshot{}
		if err != nil {
			snapshot.ParseError = err
			result.Tags[c.TagType()] = snapshot
			if options.strict {
				return nil, err
			}
			continue
		}

		snapshot.Exists = outcome.Exists
		snapshot.Tag = outcome.Tag
		result.Tags[c.TagType()] = snapshot

		hasAudioInfo := outcome.Audio.Duration > 0 || outcome.Audio.SampleRate > 0 || outcome.Audio.Bitrate > 0
		if hasAudioInfo && result.Audio.Duration == 0 && result.Audio.SampleRate == 0 {
			result.Audio = outcome.Audio
		}
		if !options.ignoreWarnings {
			result.Warnings = append(result.Warnings, outcome.Warnings...)
		}

		if options.pictureSink != nil && outcome.Tag != nil {
			for _, pic := range outcome.Tag.Pictures {
				if err := options.pictureSink(pic.Data, pic.Type, pic.NativeCode); err != nil {
					return nil, &IOError{Path: f.Path, Cause: err}
				}
			}
		}
	}

	if options.strict && len(result.Warnings) > 0 {
		return nil, &InvalidArgumentError{Reason: fmt.Sprintf("strict read: %s", result.Warnings[0].Message)}
	}

	return result, nil
}

// OpenMany opens multiple audio files concurrently, capped at
// runtime.NumCPU() goroutines. Results are returned in input order. If
// any file fails to open, every file that did open is closed before
// returning the error.
func OpenMany(ctx context.Context, paths []string, opts ...OpenOption) ([]*AudioFile, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*AudioFile, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := Open(path, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, f := range results {
			if f != nil {
				f.Close()
			}
		}
		return nil, err
	}
	return results, nil
}

// ReadMany opens and reads multiple audio files concurrently, closing
// each one after its Read completes. Results are returned in input
// order; a per-file error does not abort the others, it is recorded at
// that index's slot in errs.
func ReadMany(ctx context.Context, paths []string, opts ...ReadOption) ([]*ReadResult, []error) {
	results := make([]*ReadResult, len(paths))
	errs := make([]error, len(paths))
	if len(paths) == 0 {
		return results, errs
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			f, err := OpenContext(ctx, path)
			if err != nil {
				errs[i] = err
				return nil
			}
			defer f.Close()

			r, err := f.Read(opts...)
			if err != nil {
				errs[i] = err
				return nil
			}
			results[i] = r
			return nil
		})
	}
	g.Wait() //nolint:errcheck // per-file errors are collected in errs, not the group error

	return results, errs
}

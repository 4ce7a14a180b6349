// Package tagkit reads and writes audio metadata across FLAC, Ogg
// Vorbis, MP3 (ID3v2, ID3v1, APEv2), and SPC700 files through one
// format-agnostic API.
//
// # Quick Start
//
//	f, err := tagkit.Open("song.flac")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer f.Close()
//
//	result, err := f.Read()
//	if err != nil {
//		log.Fatal(err)
//	}
//	snap := result.Snapshot(tagkit.TagTypeVorbisComment)
//	if snap != nil && snap.Exists {
//		title, _ := snap.Tag.Get(tagkit.FieldTitle)
//		fmt.Println(title)
//	}
//
// # Supported formats
//
//   - FLAC: STREAMINFO-derived audio properties, Vorbis Comment tag, PICTURE blocks
//   - Ogg Vorbis: Vorbis Comment carried in the comment packet
//   - MP3: ID3v2.2/2.3/2.4 (read), written as ID3v2.3; ID3v1/ID3v1.1; APEv2
//   - SPC700: the ID666 header plus an optional xid6 extended footer
//
// # Philosophy
//
// 1. Graceful degradation: a malformed tag is recorded in its
// TagSnapshot's ParseError and Read still returns a partial ReadResult,
// not a fatal error, unless WithStrictRead is given.
//
// 2. Zero surprises: every write is a merge against the tag currently on
// disk, never a silent full overwrite; deleting a field means setting it
// to the empty string in the delta, not omitting it.
//
// 3. One tag type at a time: Update and Remove operate on a single
// TagType, since a format like MP3 can carry ID3v2, ID3v1, and APEv2
// simultaneously and each has to be addressed independently.
//
// # Writing
//
//	delta := tagkit.NewTagData()
//	delta.Set(tagkit.FieldTitle, "New Title")
//	err := f.Update(delta, tagkit.TagTypeID3v2, tagkit.WithBackup(".bak"))
//
// # Batch reads
//
//	results, errs := tagkit.ReadMany(context.Background(), paths)
package tagkit

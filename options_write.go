package tagkit

// UpdateOption configures one (*AudioFile).Update or Remove call.
//
// Example:
//
//	err := f.Update(delta, tagkit.TagTypeID3v2, tagkit.WithBackup(".bak"))
type UpdateOption func(*updateOptions)

type updateOptions struct {
	backupSuffix    string
	validate        bool
	preserveModTime bool
}

func defaultUpdateOptions() *updateOptions {
	return &updateOptions{}
}

// WithBackup creates a backup of the original file, named by appending
// suffix, before the update is written. If the backup path already
// exists, it is overwritten.
func WithBackup(suffix string) UpdateOption {
	return func(o *updateOptions) {
		o.backupSuffix = suffix
	}
}

// WithValidation re-opens and re-reads the file after writing, to catch
// a codec bug that would otherwise only surface on the next read.
func WithValidation() UpdateOption {
	return func(o *updateOptions) {
		o.validate = true
	}
}

// WithPreserveModTime restores the file's original modification time
// after the update, rather than leaving it at the write time.
func WithPreserveModTime() UpdateOption {
	return func(o *updateOptions) {
		o.preserveModTime = true
	}
}

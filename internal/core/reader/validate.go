package reader

import (
	"os"

	"golang.org/x/sys/unix"
)

// ValidateFile checks that path names a readable regular file with a
// supported extension.
func (r *Reader) ValidateFile(path string) error {
	_, err := r.validate(path)
	return err
}

// validate confirms read access before stat and returns the stat result.
// Access is checked without opening the path, so a FIFO or device cannot
// block the caller.
func (r *Reader) validate(path string) (os.FileInfo, error) {
	if err := unix.Access(path, unix.R_OK); err != nil {
		return nil, classify(&os.PathError{Op: "access", Path: path, Err: err}, CodeValidation, "File validation failed")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, classify(err, CodeValidation, "File validation failed")
	}
	if !info.Mode().IsRegular() {
		return nil, newError(CodeInvalidFilePath, "Invalid file path: %s", path)
	}
	if !IsFormatSupported(path) {
		return nil, newError(CodeUnsupportedFormat, "Unsupported file format: %q", ExtensionOf(path))
	}
	return info, nil
}

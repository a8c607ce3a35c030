package persist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File stores a single snapshot at Path.
type File struct {
	Path  string
	Codec Codec
}

// NewFile returns a file store. A nil codec means JSON.
func NewFile(path string, codec Codec) *File {
	if codec == nil {
		codec = JSON
	}
	return &File{Path: path, Codec: codec}
}

// Save writes the snapshot, replacing any previous save atomically.
func (f *File) Save(s Snapshot) error {
	data, err := f.Codec.Encode(s)
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.Codec.Name(), err)
	}

	dir := filepath.Dir(f.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	defer os.Remove(tmp.Name()) // No-op once renamed.

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close save: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("replace save: %w", err)
	}
	return nil
}

// Load reads the snapshot. It returns ErrNotFound when the file does not
// exist and ErrMalformed when it cannot be decoded.
func (f *File) Load() (Snapshot, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read save: %w", err)
	}
	return f.Codec.Decode(data)
}

// Package filereplay adapts a captured byte dump (a file containing one
// or more concatenated frames, saved from a live session) to
// transport.Reader, for offline decoding without a device attached.
package filereplay

import (
	"io"
	"os"
)

// File wraps an *os.File opened for replay.
type File struct {
	f *os.File
}

// Open opens path for sequential replay.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &File{f: f}, nil
}

// Read fills p from the dump, returning io.EOF once exhausted like any
// other file-backed reader.
func (r *File) Read(p []byte) (int, error) {
	n, err := r.f.Read(p)
	if err != nil && err != io.EOF {
		return n, err
	}
	return n, err
}

// Close releases the underlying file handle.
func (r *File) Close() error { return r.f.Close() }

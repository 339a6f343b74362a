package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ErrCorrupt indicates that the uploaded bytes are not a well-formed
// zip archive. Distinct from a structurally valid archive that is
// missing engine-required files.
var ErrCorrupt = errors.New("corrupt zip archive")

// Entry is one file or directory record inside a zip payload. Paths are
// posix-style as stored in the archive. Content is read on demand so an
// archive can be scanned for validation without decompressing anything.
type Entry struct {
	Path string
	Dir  bool
	Size uint64

	open func() (io.ReadCloser, error)
}

// Content decompresses the entry and returns its full content.
func (e Entry) Content() ([]byte, error) {
	if e.Dir {
		return nil, errors.Errorf("'%s' is a directory", e.Path)
	}
	r, err := e.open()
	if err != nil {
		return nil, errors.Wrapf(err, "could not open '%s'", e.Path)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read '%s'", e.Path)
	}
	return data, nil
}

// Open parses data as a zip archive held fully in memory. Nothing is
// written to disk. The returned slice may be iterated any number of
// times; entries keep a reference to data for lazy reads.
func Open(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(ErrCorrupt, "no data")
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrapf(ErrCorrupt, "failed to read data as .zip archive: %v", err)
	}

	entries := make([]Entry, 0, len(zr.File))
	for _, meta := range zr.File {
		entries = append(entries, Entry{
			Path: meta.Name,
			Dir:  meta.FileInfo().IsDir(),
			Size: meta.UncompressedSize64,
			open: meta.Open,
		})
	}
	return entries, nil
}

// Paths returns the lower-cased path of every entry, directories
// included. Validation operates on this set only.
func Paths(entries []Entry) []string {
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, strings.ToLower(e.Path))
	}
	return paths
}

package op2

import (
	"fmt"
	"io"
	"os"
)

// MappedFile is the buffer provider spec.md §5 describes: a borrowed byte
// slice paired with the open file handle backing it, so Close has
// something real to release. No retrieved example in the corpus exercises
// an actual mmap(2)+flock call site — the only golang.org/x/sys hits are
// unused manifest-only go.mod stubs — so this reads the file fully into an
// owned buffer instead of mapping it; see DESIGN.md.
type MappedFile struct {
	f   *os.File
	buf []byte
}

// OpenMapped opens path and reads it fully into an owned buffer, keeping
// the file handle alive for the MappedFile's lifetime.
func OpenMapped(path string) (*MappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("op2: open %s: %w", path, err)
	}
	buf, err := io.ReadAll(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("op2: read %s: %w", path, err)
	}
	return &MappedFile{f: f, buf: buf}, nil
}

// Bytes returns the file's full contents, borrowed for the MappedFile's
// lifetime.
func (m *MappedFile) Bytes() []byte { return m.buf }

// Close releases the underlying file handle.
func (m *MappedFile) Close() error { return m.f.Close() }

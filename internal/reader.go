package internal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mholt/archives"
)

// BufferSource fills one reusable buffer per input, so a run over many
// files does not reallocate per file. The buffer only ever grows.
type BufferSource struct {
	stdin io.Reader
	buf   []byte
}

func NewBufferSource(stdin io.Reader) *BufferSource {
	return &BufferSource{stdin: stdin}
}

// Load reads the input's whole content into the shared buffer and returns
// it along with the input's display name. When trimNewline is set, a
// single trailing '\n' is dropped. The returned slice is only valid until
// the next Load call.
func (s *BufferSource) Load(ctx context.Context, in Input, trimNewline bool) ([]byte, string, error) {
	s.buf = s.buf[:0]
	name := in.DisplayName()

	var err error
	switch {
	case in.Path == StdinPath:
		s.buf, err = readAppend(s.buf, s.stdin)
	case in.Inner != "":
		err = s.loadArchiveEntry(ctx, in)
	default:
		err = s.loadFile(in.Path)
	}
	if err != nil {
		return nil, name, fmt.Errorf("read %s: %w", name, err)
	}

	if trimNewline && len(s.buf) > 0 && s.buf[len(s.buf)-1] == '\n' {
		s.buf = s.buf[:len(s.buf)-1]
	}
	return s.buf, name, nil
}

func (s *BufferSource) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	// Grow up front to the file size; we never shrink between inputs.
	if fi, err := f.Stat(); err == nil {
		if need := int(fi.Size()); need > cap(s.buf) {
			s.buf = append(s.buf, make([]byte, need-len(s.buf))...)[:0]
		}
	}

	s.buf, err = readAppend(s.buf, f)
	return err
}

func (s *BufferSource) loadArchiveEntry(ctx context.Context, in Input) error {
	fsys, err := archives.FileSystem(ctx, in.Path, nil)
	if err != nil {
		return err
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer closer.Close()
	}
	f, err := fsys.Open(in.Inner)
	if err != nil {
		return err
	}
	defer f.Close()

	s.buf, err = readAppend(s.buf, f)
	return err
}

// readAppend reads r to EOF appending to dst. Unlike io.ReadAll it keeps
// the caller's allocation, which is the whole point of the shared buffer.
func readAppend(dst []byte, r io.Reader) ([]byte, error) {
	for {
		if len(dst) == cap(dst) {
			dst = append(dst, 0)[:len(dst)]
		}
		n, err := r.Read(dst[len(dst):cap(dst)])
		dst = dst[:len(dst)+n]
		if err == io.EOF {
			return dst, nil
		}
		if err != nil {
			return dst, err
		}
	}
}

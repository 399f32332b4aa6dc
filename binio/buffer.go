package binio

import "github.com/pkg/errors"

var (
	errOutOfRange = errors.New("binio: offset out of range")
	errShortRead  = errors.New("binio: short read")
)

// Buffer is an in-memory ReaderAt/WriterAt, the Go analogue of the
// original's MemoryFile: a growable byte slice addressable by absolute
// offset, so encoders can build a tile payload without touching the
// filesystem.
type Buffer struct {
	data []byte
}

// NewBuffer wraps an existing byte slice for reading and appending.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Bytes returns the buffer's current contents.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the number of bytes currently stored.
func (b *Buffer) Len() int { return len(b.data) }

func (b *Buffer) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(b.data)) {
		return 0, errOutOfRange
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, errShortRead
	}
	return n, nil
}

func (b *Buffer) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errOutOfRange
	}
	end := off + int64(len(p))
	if end > int64(len(b.data)) {
		grown := make([]byte, end)
		copy(grown, b.data)
		b.data = grown
	}
	n := copy(b.data[off:end], p)
	return n, nil
}

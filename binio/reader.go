package binio

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// Reader decodes fixed-width binary values from an io.ReaderAt at a
// fully explicit byte order, tracking a monotonically advancing read
// cursor the way the original BinaryIO tracked m_read_pos. Short reads
// are recorded on the supplied ErrorTracker rather than returned as Go
// errors, so a caller can decode a whole quantized-mesh tile best-effort
// and inspect err.HasError() once at the end, matching the original's
// "keep going, remember what broke" posture.
type Reader struct {
	src   io.ReaderAt
	order binary.ByteOrder
	pos   int64
}

// NewReader wraps src for decoding using the given byte order.
func NewReader(src io.ReaderAt, order binary.ByteOrder) (*Reader, error) {
	if src == nil {
		return nil, errors.New("binio: nil source")
	}
	if order == nil {
		order = binary.LittleEndian
	}
	return &Reader{src: src, order: order}, nil
}

// Pos returns the current read offset.
func (r *Reader) Pos() int64 { return r.pos }

// Seek repositions the read cursor to an absolute offset.
func (r *Reader) Seek(pos int64) { r.pos = pos }

// Skip advances the read cursor without reading.
func (r *Reader) Skip(n int64) { r.pos += n }

// readImpl fills buf from src at the current position, records a
// Failure on a short read, and always advances pos by the number of
// bytes actually read (mirroring read_impl's unconditional m_read_pos
// += bytes_read, even on partial reads).
func (r *Reader) readImpl(buf []byte, typeName string, e *ErrorTracker) int {
	n, err := r.src.ReadAt(buf, r.pos)
	if n != len(buf) || (err != nil && err != io.EOF) {
		if e != nil {
			e.record(Failure{
				TypeName: typeName,
				Where:    r.pos,
				Dir:      Read,
				Expected: len(buf),
				Actual:   n,
			})
		}
	}
	r.pos += int64(n)
	return n
}

func (r *Reader) ReadByte(e *ErrorTracker) uint8 {
	var buf [1]byte
	r.readImpl(buf[:], "uint8", e)
	return buf[0]
}

func (r *Reader) ReadUint16(e *ErrorTracker) uint16 {
	var buf [2]byte
	r.readImpl(buf[:], "uint16", e)
	return r.order.Uint16(buf[:])
}

func (r *Reader) ReadInt16(e *ErrorTracker) int16 {
	return int16(r.ReadUint16(e))
}

func (r *Reader) ReadUint32(e *ErrorTracker) uint32 {
	var buf [4]byte
	r.readImpl(buf[:], "uint32", e)
	return r.order.Uint32(buf[:])
}

func (r *Reader) ReadInt32(e *ErrorTracker) int32 {
	return int32(r.ReadUint32(e))
}

func (r *Reader) ReadFloat32(e *ErrorTracker) float32 {
	return math.Float32frombits(r.ReadUint32(e))
}

func (r *Reader) ReadFloat64(e *ErrorTracker) float64 {
	var buf [8]byte
	r.readImpl(buf[:], "float64", e)
	return math.Float64frombits(r.order.Uint64(buf[:]))
}

func (r *Reader) ReadUint16Array(count int, e *ErrorTracker) []uint16 {
	out := make([]uint16, count)
	for i := range out {
		out[i] = r.ReadUint16(e)
	}
	return out
}

func (r *Reader) ReadInt16Array(count int, e *ErrorTracker) []int16 {
	out := make([]int16, count)
	for i := range out {
		out[i] = r.ReadInt16(e)
	}
	return out
}

func (r *Reader) ReadUint32Array(count int, e *ErrorTracker) []uint32 {
	out := make([]uint32, count)
	for i := range out {
		out[i] = r.ReadUint32(e)
	}
	return out
}

func (r *Reader) ReadInt32Array(count int, e *ErrorTracker) []int32 {
	out := make([]int32, count)
	for i := range out {
		out[i] = r.ReadInt32(e)
	}
	return out
}

func (r *Reader) ReadBytes(count int, e *ErrorTracker) []byte {
	buf := make([]byte, count)
	r.readImpl(buf, "bytes", e)
	return buf
}

package binio

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// Writer encodes fixed-width binary values to an io.WriterAt at a fully
// explicit byte order, tracking a monotonically advancing write cursor.
// As in BinaryIO::write_impl, a failed write halts that one call's
// cursor advance but does not panic; the failure is recorded on the
// supplied ErrorTracker and subsequent calls keep trying at the last
// good position.
type Writer struct {
	src   io.WriterAt
	order binary.ByteOrder
	pos   int64
}

// NewWriter wraps dst for encoding using the given byte order.
func NewWriter(dst io.WriterAt, order binary.ByteOrder) (*Writer, error) {
	if dst == nil {
		return nil, errors.New("binio: nil destination")
	}
	if order == nil {
		order = binary.LittleEndian
	}
	return &Writer{src: dst, order: order}, nil
}

// Pos returns the current write offset.
func (w *Writer) Pos() int64 { return w.pos }

// Seek repositions the write cursor to an absolute offset.
func (w *Writer) Seek(pos int64) { w.pos = pos }

func (w *Writer) writeImpl(buf []byte, typeName string, e *ErrorTracker) {
	n, err := w.src.WriteAt(buf, w.pos)
	if err != nil || n != len(buf) {
		if e != nil {
			e.record(Failure{
				TypeName: typeName,
				Where:    w.pos,
				Dir:      Write,
				Expected: len(buf),
				Actual:   n,
			})
		}
		return
	}
	w.pos += int64(n)
}

func (w *Writer) WriteByte(v uint8, e *ErrorTracker) {
	w.writeImpl([]byte{v}, "uint8", e)
}

func (w *Writer) WriteUint16(v uint16, e *ErrorTracker) {
	var buf [2]byte
	w.order.PutUint16(buf[:], v)
	w.writeImpl(buf[:], "uint16", e)
}

func (w *Writer) WriteInt16(v int16, e *ErrorTracker) {
	w.WriteUint16(uint16(v), e)
}

func (w *Writer) WriteUint32(v uint32, e *ErrorTracker) {
	var buf [4]byte
	w.order.PutUint32(buf[:], v)
	w.writeImpl(buf[:], "uint32", e)
}

func (w *Writer) WriteInt32(v int32, e *ErrorTracker) {
	w.WriteUint32(uint32(v), e)
}

func (w *Writer) WriteFloat32(v float32, e *ErrorTracker) {
	w.WriteUint32(math.Float32bits(v), e)
}

func (w *Writer) WriteFloat64(v float64, e *ErrorTracker) {
	var buf [8]byte
	w.order.PutUint64(buf[:], math.Float64bits(v))
	w.writeImpl(buf[:], "float64", e)
}

func (w *Writer) WriteUint16Array(v []uint16, e *ErrorTracker) {
	for _, x := range v {
		w.WriteUint16(x, e)
	}
}

func (w *Writer) WriteInt16Array(v []int16, e *ErrorTracker) {
	for _, x := range v {
		w.WriteInt16(x, e)
	}
}

func (w *Writer) WriteUint32Array(v []uint32, e *ErrorTracker) {
	for _, x := range v {
		w.WriteUint32(x, e)
	}
}

func (w *Writer) WriteInt32Array(v []int32, e *ErrorTracker) {
	for _, x := range v {
		w.WriteInt32(x, e)
	}
}

func (w *Writer) WriteBytes(v []byte, e *ErrorTracker) {
	w.writeImpl(v, "bytes", e)
}

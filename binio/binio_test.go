package binio

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenReadRoundTrip(t *testing.T) {
	buf := NewBuffer(nil)
	w, err := NewWriter(buf, binary.LittleEndian)
	require.NoError(t, err)

	var writeErr ErrorTracker
	w.WriteUint32(42, &writeErr)
	w.WriteInt16(-7, &writeErr)
	w.WriteFloat64(3.25, &writeErr)
	require.False(t, writeErr.HasError())

	r, err := NewReader(buf, binary.LittleEndian)
	require.NoError(t, err)
	var readErr ErrorTracker
	assert.Equal(t, uint32(42), r.ReadUint32(&readErr))
	assert.Equal(t, int16(-7), r.ReadInt16(&readErr))
	assert.InDelta(t, 3.25, r.ReadFloat64(&readErr), 1e-12)
	assert.False(t, readErr.HasError())
}

func TestReadPastEndRecordsFailure(t *testing.T) {
	buf := NewBuffer([]byte{1, 2})
	r, err := NewReader(buf, binary.LittleEndian)
	require.NoError(t, err)

	var e ErrorTracker
	r.ReadUint32(&e)
	require.True(t, e.HasError())
	assert.Equal(t, Read, e.FirstErr().Dir)
	assert.Equal(t, int64(0), e.FirstErr().Where)
}

func TestErrorTrackerKeepsFirstAndLast(t *testing.T) {
	buf := NewBuffer([]byte{1})
	r, err := NewReader(buf, binary.LittleEndian)
	require.NoError(t, err)

	var e ErrorTracker
	r.ReadUint32(&e)
	r.ReadUint32(&e)
	assert.NotEqual(t, e.FirstErr(), e.LastErr())
	assert.Contains(t, e.String(), "first error")
}

func TestReverseBytes(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	ReverseBytes(b)
	assert.Equal(t, []byte{4, 3, 2, 1}, b)
}

func TestNewReaderRejectsNilSource(t *testing.T) {
	_, err := NewReader(nil, binary.LittleEndian)
	assert.Error(t, err)
}

func TestBufferGrowsOnWrite(t *testing.T) {
	buf := NewBuffer(nil)
	w, _ := NewWriter(buf, binary.LittleEndian)
	var e ErrorTracker
	w.Seek(4)
	w.WriteByte(9, &e)
	require.False(t, e.HasError())
	assert.Equal(t, 5, buf.Len())
	assert.Equal(t, byte(9), buf.Bytes()[4])
}

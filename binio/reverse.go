package binio

// ReverseBytes reverses b in place, the explicit byte-swap original
// BinaryIO fell back to whenever the target endianness didn't match the
// platform's native one (BinaryIO.cpp's std::reverse loop over each
// decoded element). encoding/binary's ByteOrder already makes this
// unnecessary for Reader/Writer, and qmesh does not call it; it is kept
// as a standalone helper for callers handling raw bytes.
func ReverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

package chunk

// ChunkView describes one chunk as it sits in a source buffer. Payload is a
// sub-slice of that buffer: the view owns nothing and is valid only while the
// buffer is alive and unmodified.
type ChunkView struct {
	Type      ChunkType
	Payload   []byte
	StoredCRC uint32 // checksum read from the file
	Offset    int64  // byte offset of the chunk's length field in the file
	Index     int    // zero-based position in the chunk sequence
}

// Length returns the payload byte count.
func (v ChunkView) Length() int {
	return len(v.Payload)
}

// ComputeCRC calculates the checksum over the chunk type followed by the
// payload.
func (v ChunkView) ComputeCRC() uint32 {
	return Checksum(v.Type[:], v.Payload)
}

// VerifyCRC reports whether the checksum stored in the file matches the one
// computed from the chunk's bytes.
func (v ChunkView) VerifyCRC() bool {
	return v.StoredCRC == v.ComputeCRC()
}

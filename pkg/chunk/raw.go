package chunk

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Framing sizes for one chunk record: [Length(4)][Type(4)][Payload][CRC(4)].
const (
	LengthSize = 4
	TypeSize   = 4
	CRCSize    = 4
	HeaderSize = LengthSize + TypeSize

	// MaxChunkLength is the largest payload a chunk may declare. PNG keeps
	// lengths within 31 bits so they stay representable as signed 32-bit
	// integers.
	MaxChunkLength = 1<<31 - 1
)

// ErrChunkTooLarge reports a payload length above MaxChunkLength.
var ErrChunkTooLarge = errors.New("chunk length exceeds maximum")

// Raw is a fully owned chunk: a validated type code plus payload bytes held
// by the Raw itself, independent of any source buffer.
type Raw struct {
	Type    ChunkType
	Payload []byte
}

// NewRaw validates the type code and payload length, and copies the payload
// into the returned chunk so later mutation of the caller's slice cannot
// change it.
func NewRaw(typeTag string, payload []byte) (Raw, error) {
	t, err := ParseChunkType(typeTag)
	if err != nil {
		return Raw{}, err
	}
	if len(payload) > MaxChunkLength {
		return Raw{}, fmt.Errorf("%w: %d bytes", ErrChunkTooLarge, len(payload))
	}
	owned := make([]byte, len(payload))
	copy(owned, payload)
	return Raw{Type: t, Payload: owned}, nil
}

// EncodedSize returns the on-disk size of the chunk record.
func (r Raw) EncodedSize() int {
	return HeaderSize + len(r.Payload) + CRCSize
}

// Encode serializes the chunk record: big-endian length, type code, payload,
// and a big-endian CRC computed over type and payload.
func (r Raw) Encode() []byte {
	return r.AppendTo(make([]byte, 0, r.EncodedSize()))
}

// AppendTo appends the encoded chunk record to buf and returns the extended
// slice.
func (r Raw) AppendTo(buf []byte) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(r.Payload)))
	buf = append(buf, r.Type[:]...)
	buf = append(buf, r.Payload...)
	return binary.BigEndian.AppendUint32(buf, Checksum(r.Type[:], r.Payload))
}

package chunk

import (
	"errors"
	"fmt"
)

// ErrInvalidChunkType reports a chunk type code that is not exactly four
// ASCII letters.
var ErrInvalidChunkType = errors.New("invalid chunk type")

// propertyBit is bit 5 of a type code byte. PNG encodes chunk properties in
// the case of each letter: bit 5 clear is uppercase, bit 5 set is lowercase.
const propertyBit byte = 1 << 5

// ChunkType is a 4-byte chunk type code such as "IHDR" or "tEXt". Type codes
// are restricted to uppercase and lowercase ASCII letters, but decoders must
// treat them as fixed binary values: BLOB and bLOb are unrelated types, never
// case-folded into one.
type ChunkType [4]byte

// NewChunkType builds a ChunkType from raw bytes, rejecting anything that is
// not exactly four ASCII letters.
func NewChunkType(b []byte) (ChunkType, error) {
	var t ChunkType
	if len(b) != 4 {
		return t, fmt.Errorf("%w: type code must be 4 bytes, got %d", ErrInvalidChunkType, len(b))
	}
	for _, c := range b {
		if !isASCIILetter(c) {
			return t, fmt.Errorf("%w: byte 0x%02X is not an ASCII letter", ErrInvalidChunkType, c)
		}
	}
	copy(t[:], b)
	return t, nil
}

// ParseChunkType is NewChunkType for string type codes.
func ParseChunkType(s string) (ChunkType, error) {
	return NewChunkType([]byte(s))
}

func (t ChunkType) String() string {
	return string(t[:])
}

// Ancillary reports whether a decoder that does not recognize the chunk may
// skip it safely (bit 5 of the first byte).
func (t ChunkType) Ancillary() bool {
	return t[0]&propertyBit != 0
}

// Critical reports the complement of Ancillary: the chunk is required to
// meaningfully interpret the file.
func (t ChunkType) Critical() bool {
	return !t.Ancillary()
}

// Private reports whether the type code is privately assigned rather than
// registered in the public chunk list (bit 5 of the second byte).
func (t ChunkType) Private() bool {
	return t[1]&propertyBit != 0
}

// Reserved reports bit 5 of the third byte, which must be clear in files
// conforming to PNG 1.2.
func (t ChunkType) Reserved() bool {
	return t[2]&propertyBit != 0
}

// SafeToCopy reports whether an editor may carry the chunk into a modified
// file without recognizing its type (bit 5 of the fourth byte).
func (t ChunkType) SafeToCopy() bool {
	return t[3]&propertyBit != 0
}

func isASCIILetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

package png

import (
	"errors"
	"fmt"

	"github.com/Nordgaren/png-util/pkg/chunk"
)

// Error kinds surfaced by the Reader and Builder. Callers branch on kind with
// errors.Is; the length and type-code kinds come from the chunk package since
// both the scanner and the builder enforce them.
var (
	// ErrBadSignature reports a buffer that is shorter than the PNG signature
	// or does not start with it.
	ErrBadSignature = errors.New("bad PNG signature")

	// ErrTruncatedChunk reports fewer remaining bytes than a chunk's framing
	// declares.
	ErrTruncatedChunk = errors.New("truncated chunk")

	// ErrChecksumMismatch reports a stored checksum that does not match the
	// one computed from the chunk's bytes. The concrete error is always a
	// *ChecksumError carrying the chunk type and index.
	ErrChecksumMismatch = errors.New("chunk checksum mismatch")

	// ErrMissingHeader reports a chunk sequence that does not start with IHDR.
	ErrMissingHeader = errors.New("first chunk is not IHDR")

	// ErrMissingTerminator reports a buffer exhausted before an empty IEND
	// chunk was seen.
	ErrMissingTerminator = errors.New("missing IEND chunk")

	// ErrTrailingData reports bytes remaining after the IEND chunk's checksum.
	ErrTrailingData = errors.New("trailing data after IEND chunk")

	// ErrIndexOutOfRange reports a Builder call addressing a chunk index
	// outside the current live range.
	ErrIndexOutOfRange = errors.New("chunk index out of range")

	// ErrInvalidPermutation reports a Reorder argument that is not a
	// bijection over the current live indices.
	ErrInvalidPermutation = errors.New("invalid permutation")

	// ErrEmptyOutput reports a Finalize call on a Builder with no live
	// entries; a valid file always needs at least IHDR and IEND.
	ErrEmptyOutput = errors.New("builder has no chunks")
)

// ChecksumError identifies the chunk whose integrity check failed. It unwraps
// to ErrChecksumMismatch.
type ChecksumError struct {
	Type     chunk.ChunkType
	Index    int
	Stored   uint32
	Computed uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("chunk %d (%s): checksum mismatch: stored 0x%08X, computed 0x%08X",
		e.Index, e.Type, e.Stored, e.Computed)
}

func (e *ChecksumError) Unwrap() error {
	return ErrChecksumMismatch
}

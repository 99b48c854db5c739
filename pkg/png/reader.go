package png

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Nordgaren/png-util/pkg/chunk"
)

// Signature is the fixed 8-byte sequence every PNG file starts with.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

// Structural bookends of a valid file: the first chunk must be IHDR, the
// last an IEND with an empty payload.
var (
	HeaderType     = chunk.ChunkType{'I', 'H', 'D', 'R'}
	TerminatorType = chunk.ChunkType{'I', 'E', 'N', 'D'}
)

// Reader scans a buffer front to back, yielding borrowed views of each
// chunk. It holds only a cursor into the caller's buffer and performs no
// I/O. The buffer must not be mutated while the Reader or any yielded
// ChunkView is in use.
//
// A Reader is single-pass: once Next has returned io.EOF or an error, the
// only way to iterate again is a new Reader over the same buffer. Chunks
// materializes the remaining sequence for callers that need to revisit it.
type Reader struct {
	buf    []byte
	pos    int
	index  int
	done   bool
	err    error
	verify bool
}

// NewReader validates the signature and positions the cursor at the first
// chunk. No chunk is parsed yet; each chunk's framing and checksum are
// verified as Next yields it.
func NewReader(buf []byte) (*Reader, error) {
	return newReader(buf, true)
}

// NewLenientReader behaves like NewReader but skips per-chunk checksum
// verification. Tools that repair corrupted checksums use it to re-frame a
// file whose structure is intact; structural validation is unchanged.
func NewLenientReader(buf []byte) (*Reader, error) {
	return newReader(buf, false)
}

func newReader(buf []byte, verify bool) (*Reader, error) {
	if len(buf) < len(Signature) {
		return nil, fmt.Errorf("%w: buffer is %d bytes, signature needs %d",
			ErrBadSignature, len(buf), len(Signature))
	}
	if !bytes.Equal(buf[:len(Signature)], Signature[:]) {
		return nil, fmt.Errorf("%w: first %d bytes are not the PNG magic sequence",
			ErrBadSignature, len(Signature))
	}
	return &Reader{buf: buf, pos: len(Signature), verify: verify}, nil
}

// Next returns the next chunk in the file. After the IEND chunk has been
// yielded, Next checks exactly once that the buffer ends there and then
// returns io.EOF. Any other error is terminal: the scan stops at the first
// structural or integrity violation and subsequent calls return the same
// error.
func (r *Reader) Next() (chunk.ChunkView, error) {
	if r.err != nil {
		return chunk.ChunkView{}, r.err
	}
	if r.done {
		if r.pos != len(r.buf) {
			r.err = fmt.Errorf("%w: %d bytes remain", ErrTrailingData, len(r.buf)-r.pos)
			return chunk.ChunkView{}, r.err
		}
		r.err = io.EOF
		return chunk.ChunkView{}, r.err
	}

	view, err := r.scan()
	if err != nil {
		r.err = err
		return chunk.ChunkView{}, err
	}
	if view.Type == TerminatorType {
		r.done = true
	}
	return view, nil
}

// scan carves one chunk out of the buffer at the cursor, enforcing framing,
// length, type-code, ordering, and checksum invariants.
func (r *Reader) scan() (chunk.ChunkView, error) {
	remaining := len(r.buf) - r.pos
	if remaining == 0 {
		return chunk.ChunkView{}, fmt.Errorf("%w: buffer exhausted after %d chunks",
			ErrMissingTerminator, r.index)
	}
	if remaining < chunk.HeaderSize {
		return chunk.ChunkView{}, fmt.Errorf("%w: %d bytes remain, chunk header needs %d",
			ErrTruncatedChunk, remaining, chunk.HeaderSize)
	}

	// The length gate comes before any payload access so a corrupt declared
	// length can never cause an over-read.
	length := binary.BigEndian.Uint32(r.buf[r.pos:])
	if length > chunk.MaxChunkLength {
		return chunk.ChunkView{}, fmt.Errorf("%w: chunk %d declares %d bytes",
			chunk.ErrChunkTooLarge, r.index, length)
	}

	typ, err := chunk.NewChunkType(r.buf[r.pos+chunk.LengthSize : r.pos+chunk.HeaderSize])
	if err != nil {
		return chunk.ChunkView{}, fmt.Errorf("chunk %d: %w", r.index, err)
	}
	if r.index == 0 && typ != HeaderType {
		return chunk.ChunkView{}, fmt.Errorf("%w: got %s", ErrMissingHeader, typ)
	}
	if typ == TerminatorType && length != 0 {
		return chunk.ChunkView{}, fmt.Errorf("%w: IEND payload must be empty, got %d bytes",
			ErrMissingTerminator, length)
	}

	recordSize := chunk.HeaderSize + int(length) + chunk.CRCSize
	if remaining < recordSize {
		return chunk.ChunkView{}, fmt.Errorf("%w: chunk %d (%s) needs %d bytes, %d remain",
			ErrTruncatedChunk, r.index, typ, recordSize, remaining)
	}

	payloadStart := r.pos + chunk.HeaderSize
	view := chunk.ChunkView{
		Type:      typ,
		Payload:   r.buf[payloadStart : payloadStart+int(length)],
		StoredCRC: binary.BigEndian.Uint32(r.buf[payloadStart+int(length):]),
		Offset:    int64(r.pos),
		Index:     r.index,
	}
	if r.verify {
		if computed := view.ComputeCRC(); computed != view.StoredCRC {
			return chunk.ChunkView{}, &ChecksumError{
				Type:     typ,
				Index:    r.index,
				Stored:   view.StoredCRC,
				Computed: computed,
			}
		}
	}

	r.pos += recordSize
	r.index++
	return view, nil
}

// Chunks consumes the rest of the scan and returns every remaining chunk in
// order. The returned slice is independently iterable, but the views still
// borrow from the source buffer.
func (r *Reader) Chunks() ([]chunk.ChunkView, error) {
	var views []chunk.ChunkView
	for {
		view, err := r.Next()
		if err == io.EOF {
			return views, nil
		}
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
}

// Parse scans and validates a whole buffer in one call, returning the
// ordered chunk sequence.
func Parse(buf []byte) ([]chunk.ChunkView, error) {
	r, err := NewReader(buf)
	if err != nil {
		return nil, err
	}
	return r.Chunks()
}

// ChunksOfType filters a chunk sequence down to the chunks with the given
// type code.
func ChunksOfType(views []chunk.ChunkView, typ chunk.ChunkType) []chunk.ChunkView {
	var matched []chunk.ChunkView
	for _, v := range views {
		if v.Type == typ {
			matched = append(matched, v)
		}
	}
	return matched
}

package png

import (
	"encoding/binary"
	"fmt"

	"github.com/Nordgaren/png-util/pkg/chunk"
)

type entryKind uint8

const (
	entryBorrowed entryKind = iota
	entryOwned
	entryRemoved
)

// entry is one slot in the builder's edit log. Borrowed entries reference
// the source buffer through a ChunkView and cost nothing until Finalize;
// owned entries hold payload bytes supplied by the caller; removed entries
// are tombstones that keep the log's relative order but contribute nothing
// to the output.
type entry struct {
	kind  entryKind
	view  chunk.ChunkView // kind == entryBorrowed
	owned chunk.Raw       // kind == entryOwned
}

func (e *entry) typeAndPayload() (chunk.ChunkType, []byte) {
	if e.kind == entryOwned {
		return e.owned.Type, e.owned.Payload
	}
	return e.view.Type, e.view.Payload
}

// Builder accumulates chunk-level edits and serializes them in a single
// pass. Until Finalize, no payload bytes are copied beyond those the caller
// supplies for inserted or replacement chunks; chunks carried through from a
// Reader stay borrowed.
//
// Index-based calls address live (non-removed) entries: Remove immediately
// shifts the logical numbering of every subsequent live entry down by one.
//
// A failed call leaves the edit log unchanged.
type Builder struct {
	log []entry
}

// NewBuilder returns an empty Builder for constructing a file from scratch.
func NewBuilder() *Builder {
	return &Builder{}
}

// BuilderFromChunks seeds the edit log with one borrowed entry per input
// chunk, in order. The views keep borrowing from their source buffer until
// Finalize, so the buffer must stay alive and unmodified until then.
func BuilderFromChunks(views []chunk.ChunkView) *Builder {
	log := make([]entry, 0, len(views))
	for _, v := range views {
		log = append(log, entry{kind: entryBorrowed, view: v})
	}
	return &Builder{log: log}
}

// Len returns the number of live entries.
func (b *Builder) Len() int {
	n := 0
	for i := range b.log {
		if b.log[i].kind != entryRemoved {
			n++
		}
	}
	return n
}

// slot maps a live index to its position in the log.
func (b *Builder) slot(index int) (int, error) {
	if index < 0 {
		return 0, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	live := 0
	for i := range b.log {
		if b.log[i].kind == entryRemoved {
			continue
		}
		if live == index {
			return i, nil
		}
		live++
	}
	return 0, fmt.Errorf("%w: %d with %d live chunks", ErrIndexOutOfRange, index, live)
}

// InsertBefore adds an owned chunk immediately before the live entry at
// index. The payload is copied; the type code and length are validated
// before the log is touched.
func (b *Builder) InsertBefore(index int, typeTag string, payload []byte) error {
	pos, err := b.slot(index)
	if err != nil {
		return err
	}
	return b.insertAt(pos, typeTag, payload)
}

// InsertAfter adds an owned chunk immediately after the live entry at index.
func (b *Builder) InsertAfter(index int, typeTag string, payload []byte) error {
	pos, err := b.slot(index)
	if err != nil {
		return err
	}
	return b.insertAt(pos+1, typeTag, payload)
}

// Append adds an owned chunk after every existing entry.
func (b *Builder) Append(typeTag string, payload []byte) error {
	return b.insertAt(len(b.log), typeTag, payload)
}

func (b *Builder) insertAt(pos int, typeTag string, payload []byte) error {
	raw, err := chunk.NewRaw(typeTag, payload)
	if err != nil {
		return err
	}
	b.log = append(b.log, entry{})
	copy(b.log[pos+1:], b.log[pos:])
	b.log[pos] = entry{kind: entryOwned, owned: raw}
	return nil
}

// Remove tombstones the live entry at index. Later live entries renumber
// down by one immediately.
func (b *Builder) Remove(index int) error {
	pos, err := b.slot(index)
	if err != nil {
		return err
	}
	b.log[pos] = entry{kind: entryRemoved}
	return nil
}

// Replace overwrites the live entry at index with an owned chunk, without a
// transient tombstone: the logical numbering of other entries is unaffected.
func (b *Builder) Replace(index int, typeTag string, payload []byte) error {
	pos, err := b.slot(index)
	if err != nil {
		return err
	}
	raw, err := chunk.NewRaw(typeTag, payload)
	if err != nil {
		return err
	}
	b.log[pos] = entry{kind: entryOwned, owned: raw}
	return nil
}

// Reorder rewrites the log so that the live entry currently at index
// perm[i] lands at position i. perm must be a bijection over the current
// live indices; tombstones are dropped as a side effect.
func (b *Builder) Reorder(perm []int) error {
	liveSlots := make([]int, 0, len(b.log))
	for i := range b.log {
		if b.log[i].kind != entryRemoved {
			liveSlots = append(liveSlots, i)
		}
	}
	if len(perm) != len(liveSlots) {
		return fmt.Errorf("%w: got %d indices, have %d live chunks",
			ErrInvalidPermutation, len(perm), len(liveSlots))
	}
	seen := make([]bool, len(liveSlots))
	for _, p := range perm {
		if p < 0 || p >= len(liveSlots) {
			return fmt.Errorf("%w: index %d out of range", ErrInvalidPermutation, p)
		}
		if seen[p] {
			return fmt.Errorf("%w: index %d appears twice", ErrInvalidPermutation, p)
		}
		seen[p] = true
	}

	reordered := make([]entry, 0, len(liveSlots))
	for _, p := range perm {
		reordered = append(reordered, b.log[liveSlots[p]])
	}
	b.log = reordered
	return nil
}

// Finalize walks the edit log once and serializes the signature followed by
// every live entry. Checksums are always recomputed over type and payload,
// including for borrowed chunks, so the output can never carry a stale
// stored value. Borrowed payloads are copied here for the first and only
// time; afterwards the output is independent of the source buffer.
//
// Structural bookends are enforced before any byte is produced: at least one
// live entry, IHDR first, an empty IEND last. On error no partial output is
// returned. Finalize does not mutate the log, so calling it again without
// intervening edits yields byte-identical output.
func (b *Builder) Finalize() ([]byte, error) {
	live := make([]*entry, 0, len(b.log))
	size := len(Signature)
	for i := range b.log {
		e := &b.log[i]
		if e.kind == entryRemoved {
			continue
		}
		_, payload := e.typeAndPayload()
		size += chunk.HeaderSize + len(payload) + chunk.CRCSize
		live = append(live, e)
	}

	if len(live) == 0 {
		return nil, ErrEmptyOutput
	}
	if typ, _ := live[0].typeAndPayload(); typ != HeaderType {
		return nil, fmt.Errorf("%w: output would start with %s", ErrMissingHeader, typ)
	}
	if typ, payload := live[len(live)-1].typeAndPayload(); typ != TerminatorType || len(payload) != 0 {
		return nil, fmt.Errorf("%w: output would end with %s (%d payload bytes)",
			ErrMissingTerminator, typ, len(payload))
	}

	out := make([]byte, 0, size)
	out = append(out, Signature[:]...)
	for _, e := range live {
		typ, payload := e.typeAndPayload()
		out = binary.BigEndian.AppendUint32(out, uint32(len(payload)))
		out = append(out, typ[:]...)
		out = append(out, payload...)
		out = binary.BigEndian.AppendUint32(out, chunk.Checksum(typ[:], payload))
	}
	return out, nil
}

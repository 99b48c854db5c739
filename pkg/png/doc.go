// Package png reads and rebuilds PNG-style chunk containers without copying
// payload bytes it does not have to.
//
// Reading is a single linear scan: NewReader checks the 8-byte signature,
// then Next carves one borrowed ChunkView per chunk out of the caller's
// buffer, verifying framing, type codes, the declared-length ceiling, the
// per-chunk CRC, and the IHDR-first / IEND-last structure as a byproduct.
// Nothing is allocated for payloads; views alias the source buffer.
//
// Editing is an edit log: Builder records keep/insert/remove/replace/reorder
// operations against borrowed views and caller-supplied owned chunks, and
// defers every byte copy to Finalize. A file read into a Builder and
// finalized untouched is byte-identical to the input, while chunks carried
// through unmodified are copied exactly once, at serialization time.
//
// The package does no I/O and interprets no payloads; pixel data and chunk
// semantics are the caller's concern.
package png

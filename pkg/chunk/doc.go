// Package chunk provides the chunk-level primitives for PNG-style container
// files: the CRC-32 checksum engine, validated 4-byte type codes, borrowed
// views of chunks inside a source buffer, and owned chunks for building new
// files.
//
// # Chunk Record Format
//
// Every chunk is serialized in a binary format with the following structure:
//
//	[Length(4)][Type(4)][Payload(Length)][CRC(4)]
//
// Fields:
//   - Length: 32-bit unsigned payload byte count (big-endian), at most
//     MaxChunkLength
//   - Type: 4-byte chunk type code; every byte must be an ASCII letter
//   - Payload: opaque payload bytes
//   - CRC: 32-bit CRC checksum over Type followed by Payload (big-endian)
//
// # CRC Calculation
//
// The checksum is the standard CRC-32 used by PNG: the reflected polynomial
// 0xEDB88320 with an initial value of all ones and a final complement. The
// length field is not covered; the type code and payload are.
//
// # Zero-Copy Views
//
// ChunkView never copies payload bytes: its Payload field is a sub-slice of
// the buffer the chunk was read from. A view is valid only as long as that
// buffer is alive and unmodified. Raw is the owned counterpart used when a
// caller supplies new chunk data.
package chunk

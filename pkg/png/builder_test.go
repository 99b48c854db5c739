package png

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nordgaren/png-util/pkg/chunk"
)

// chunkTypes parses a finalized file and returns its chunk type codes in
// order.
func chunkTypes(t *testing.T, buf []byte) []string {
	t.Helper()
	views, err := Parse(buf)
	require.NoError(t, err)
	types := make([]string, 0, len(views))
	for _, v := range views {
		types = append(types, v.Type.String())
	}
	return types
}

func TestBuilder_RoundTrip(t *testing.T) {
	original := minimalFile(t)

	views, err := Parse(original)
	require.NoError(t, err)

	out, err := BuilderFromChunks(views).Finalize()
	require.NoError(t, err)
	assert.Equal(t, original, out, "untouched builder output must be byte-identical to the input")
}

func TestBuilder_FinalizeIdempotent(t *testing.T) {
	views, err := Parse(minimalFile(t))
	require.NoError(t, err)

	b := BuilderFromChunks(views)
	first, err := b.Finalize()
	require.NoError(t, err)
	second, err := b.Finalize()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuilder_OutputIndependentOfSource(t *testing.T) {
	source := minimalFile(t)

	views, err := Parse(source)
	require.NoError(t, err)

	out, err := BuilderFromChunks(views).Finalize()
	require.NoError(t, err)
	snapshot := append([]byte{}, out...)

	// Scribbling over the source after Finalize must not reach the output.
	for i := range source {
		source[i] = 0xEE
	}
	assert.Equal(t, snapshot, out)
}

func TestBuilder_RemoveDataChunk(t *testing.T) {
	views, err := Parse(minimalFile(t))
	require.NoError(t, err)

	b := BuilderFromChunks(views)
	require.NoError(t, b.Remove(1))

	out, err := b.Finalize()
	require.NoError(t, err)

	want := buildFile(t,
		mustRaw(t, "IHDR", ihdrPayload()),
		mustRaw(t, "IEND", nil),
	)
	assert.Equal(t, want, out, "removing the data chunk must yield a minimal two-chunk file")
}

func TestBuilder_InsertAfterHeader(t *testing.T) {
	views, err := Parse(minimalFile(t))
	require.NoError(t, err)

	b := BuilderFromChunks(views)
	require.NoError(t, b.InsertAfter(0, "tEXt", []byte("hello")))

	out, err := b.Finalize()
	require.NoError(t, err)

	outViews, err := Parse(out)
	require.NoError(t, err)
	require.Len(t, outViews, 4)
	assert.Equal(t, []string{"IHDR", "tEXt", "IDAT", "IEND"}, chunkTypes(t, out))
	assert.Equal(t, []byte("hello"), outViews[1].Payload)
	assert.Equal(t, chunk.Checksum([]byte("tEXt"), []byte("hello")), outViews[1].StoredCRC)
}

func TestBuilder_InsertCopiesPayload(t *testing.T) {
	views, err := Parse(minimalFile(t))
	require.NoError(t, err)

	b := BuilderFromChunks(views)
	payload := []byte("hello")
	require.NoError(t, b.InsertAfter(0, "tEXt", payload))

	payload[0] = 'X'
	out, err := b.Finalize()
	require.NoError(t, err)

	outViews, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), outViews[1].Payload)
}

func TestBuilder_IndexSemanticsUnderInterleavedEdits(t *testing.T) {
	buf := buildFile(t,
		mustRaw(t, "IHDR", ihdrPayload()),
		mustRaw(t, "aaAA", []byte("a")),
		mustRaw(t, "bbBB", []byte("b")),
		mustRaw(t, "ccBB", []byte("c")),
		mustRaw(t, "IEND", nil),
	)
	views, err := Parse(buf)
	require.NoError(t, err)

	b := BuilderFromChunks(views)

	// Remove renumbers immediately: after dropping aaAA, live index 1 is
	// bbBB, so the insert lands between IHDR and bbBB.
	require.NoError(t, b.Remove(1))
	assert.Equal(t, 4, b.Len())
	require.NoError(t, b.InsertBefore(1, "ddBB", []byte("d")))

	out, err := b.Finalize()
	require.NoError(t, err)
	assert.Equal(t, []string{"IHDR", "ddBB", "bbBB", "ccBB", "IEND"}, chunkTypes(t, out))

	// A second remove addresses the renumbered sequence.
	require.NoError(t, b.Remove(2))
	out, err = b.Finalize()
	require.NoError(t, err)
	assert.Equal(t, []string{"IHDR", "ddBB", "ccBB", "IEND"}, chunkTypes(t, out))
}

func TestBuilder_Replace(t *testing.T) {
	views, err := Parse(minimalFile(t))
	require.NoError(t, err)

	b := BuilderFromChunks(views)
	require.NoError(t, b.Replace(1, "teXt", []byte("swapped")))
	assert.Equal(t, 3, b.Len(), "replace must not change the live count")

	out, err := b.Finalize()
	require.NoError(t, err)
	assert.Equal(t, []string{"IHDR", "teXt", "IEND"}, chunkTypes(t, out))
}

func TestBuilder_Reorder(t *testing.T) {
	buf := buildFile(t,
		mustRaw(t, "IHDR", ihdrPayload()),
		mustRaw(t, "aaAA", []byte("a")),
		mustRaw(t, "bbBB", []byte("b")),
		mustRaw(t, "IEND", nil),
	)
	views, err := Parse(buf)
	require.NoError(t, err)

	b := BuilderFromChunks(views)
	require.NoError(t, b.Reorder([]int{0, 2, 1, 3}))

	out, err := b.Finalize()
	require.NoError(t, err)
	assert.Equal(t, []string{"IHDR", "bbBB", "aaAA", "IEND"}, chunkTypes(t, out))
}

func TestBuilder_ReorderInvalidPermutations(t *testing.T) {
	views, err := Parse(minimalFile(t))
	require.NoError(t, err)

	testCases := []struct {
		name string
		perm []int
	}{
		{name: "too short", perm: []int{0, 1}},
		{name: "too long", perm: []int{0, 1, 2, 3}},
		{name: "duplicate index", perm: []int{0, 1, 1}},
		{name: "out of range", perm: []int{0, 1, 5}},
		{name: "negative index", perm: []int{0, -1, 2}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := BuilderFromChunks(views)
			err := b.Reorder(tc.perm)
			assert.ErrorIs(t, err, ErrInvalidPermutation)

			// The log is untouched: output still matches the input file.
			out, err := b.Finalize()
			require.NoError(t, err)
			assert.Equal(t, minimalFile(t), out)
		})
	}
}

func TestBuilder_FailedCallsLeaveLogUnchanged(t *testing.T) {
	views, err := Parse(minimalFile(t))
	require.NoError(t, err)

	b := BuilderFromChunks(views)
	before, err := b.Finalize()
	require.NoError(t, err)

	assert.ErrorIs(t, b.InsertAfter(0, "bad1", []byte("x")), chunk.ErrInvalidChunkType)
	assert.ErrorIs(t, b.InsertBefore(9, "tEXt", []byte("x")), ErrIndexOutOfRange)
	assert.ErrorIs(t, b.Remove(3), ErrIndexOutOfRange)
	assert.ErrorIs(t, b.Remove(-1), ErrIndexOutOfRange)
	assert.ErrorIs(t, b.Replace(7, "tEXt", nil), ErrIndexOutOfRange)

	after, err := b.Finalize()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestBuilder_EmptyOutput(t *testing.T) {
	_, err := NewBuilder().Finalize()
	assert.ErrorIs(t, err, ErrEmptyOutput)

	views, err := Parse(minimalFile(t))
	require.NoError(t, err)

	b := BuilderFromChunks(views)
	for b.Len() > 0 {
		require.NoError(t, b.Remove(0))
	}
	_, err = b.Finalize()
	assert.ErrorIs(t, err, ErrEmptyOutput)
}

func TestBuilder_FinalizeEnforcesBookends(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		b := NewBuilder()
		require.NoError(t, b.Append("tEXt", []byte("no header")))
		require.NoError(t, b.Append("IEND", nil))

		_, err := b.Finalize()
		assert.ErrorIs(t, err, ErrMissingHeader)
	})

	t.Run("missing terminator", func(t *testing.T) {
		b := NewBuilder()
		require.NoError(t, b.Append("IHDR", ihdrPayload()))

		_, err := b.Finalize()
		assert.ErrorIs(t, err, ErrMissingTerminator)
	})

	t.Run("terminator with payload", func(t *testing.T) {
		b := NewBuilder()
		require.NoError(t, b.Append("IHDR", ihdrPayload()))
		require.NoError(t, b.Append("IEND", []byte("junk")))

		_, err := b.Finalize()
		assert.ErrorIs(t, err, ErrMissingTerminator)
	})
}

func TestBuilder_FromScratch(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Append("IHDR", ihdrPayload()))
	require.NoError(t, b.Append("IDAT", []byte("abcd")))
	require.NoError(t, b.Append("IEND", nil))

	out, err := b.Finalize()
	require.NoError(t, err)
	assert.Equal(t, minimalFile(t), out)
}

func TestBuilder_ChecksumsRecomputedForBorrowedChunks(t *testing.T) {
	// A lenient scan of a file with a corrupted stored CRC feeds the builder
	// a borrowed chunk whose StoredCRC is wrong. Finalize must emit the
	// recomputed value, repairing the file.
	buf := minimalFile(t)
	idatCRCStart := 8 + 25 + 8 + 4
	buf[idatCRCStart] ^= 0xFF

	r, err := NewLenientReader(buf)
	require.NoError(t, err)
	views, err := r.Chunks()
	require.NoError(t, err)

	out, err := BuilderFromChunks(views).Finalize()
	require.NoError(t, err)

	repaired, err := Parse(out)
	require.NoError(t, err)
	assert.True(t, repaired[1].VerifyCRC())
}

package catalog

import (
	"path/filepath"
	"testing"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nordgaren/png-util/pkg/chunk"
)

func testViews(t *testing.T) []chunk.ChunkView {
	t.Helper()
	ihdr, err := chunk.ParseChunkType("IHDR")
	require.NoError(t, err)
	iend, err := chunk.ParseChunkType("IEND")
	require.NoError(t, err)
	return []chunk.ChunkView{
		{Type: ihdr, Payload: make([]byte, chunk.IHDRLength), StoredCRC: 0x1234, Offset: 8, Index: 0},
		{Type: iend, StoredCRC: 0xAE426082, Offset: 33, Index: 1},
	}
}

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "catalog"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCatalog_AddAndGet(t *testing.T) {
	c := openTestCatalog(t)

	id, err := c.Add("/images/a.png", 61, testViews(t))
	require.NoError(t, err)

	entry, err := c.Get(id)
	require.NoError(t, err)

	assert.Equal(t, id.String(), entry.ID)
	assert.Equal(t, "/images/a.png", entry.Path)
	assert.Equal(t, int64(61), entry.FileSize)
	require.Len(t, entry.Chunks, 2)
	assert.Equal(t, "IHDR", entry.Chunks[0].Type)
	assert.Equal(t, chunk.IHDRLength, entry.Chunks[0].Length)
	assert.Equal(t, "IEND", entry.Chunks[1].Type)
	assert.Equal(t, uint32(0xAE426082), entry.Chunks[1].CRC)
	assert.False(t, entry.ScannedAt.IsZero())
}

func TestCatalog_List(t *testing.T) {
	c := openTestCatalog(t)

	first, err := c.Add("/images/a.png", 61, testViews(t))
	require.NoError(t, err)
	second, err := c.Add("/images/b.png", 61, testViews(t))
	require.NoError(t, err)

	entries, err := c.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	ids := []string{entries[0].ID, entries[1].ID}
	assert.ElementsMatch(t, []string{first.String(), second.String()}, ids)
}

func TestCatalog_Delete(t *testing.T) {
	c := openTestCatalog(t)

	id, err := c.Add("/images/a.png", 61, testViews(t))
	require.NoError(t, err)

	require.NoError(t, c.Delete(id))

	_, err = c.Get(id)
	assert.Error(t, err)

	entries, err := c.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCatalog_GetUnknownID(t *testing.T) {
	c := openTestCatalog(t)

	_, err := c.Get(ksuid.New())
	assert.Error(t, err)
}

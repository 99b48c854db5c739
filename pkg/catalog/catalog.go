// Package catalog keeps a persistent inventory of scanned files: one entry
// per scan, holding the file's chunk listing. Entries are stored in a pebble
// database keyed by ksuid, so listing comes back in rough scan order (ksuid
// timestamps have one-second resolution).
package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/Nordgaren/png-util/pkg/chunk"
)

// ChunkRecord is the stored shape of one chunk in an inventory entry.
type ChunkRecord struct {
	Index  int    `json:"index"`
	Type   string `json:"type"`
	Length int    `json:"length"`
	CRC    uint32 `json:"crc"`
	Offset int64  `json:"offset"`
}

// Entry is one cataloged scan.
type Entry struct {
	ID        string        `json:"id"`
	Path      string        `json:"path"`
	ScannedAt time.Time     `json:"scanned_at"`
	FileSize  int64         `json:"file_size"`
	Chunks    []ChunkRecord `json:"chunks"`
}

// Catalog wraps a pebble database holding inventory entries.
type Catalog struct {
	db *pebble.DB
}

// Open opens (or creates) a catalog at the given directory.
func Open(path string) (*Catalog, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Add stores an inventory entry for a scanned file and returns its ID.
func (c *Catalog) Add(path string, fileSize int64, views []chunk.ChunkView) (ksuid.KSUID, error) {
	id := ksuid.New()

	entry := Entry{
		ID:        id.String(),
		Path:      path,
		ScannedAt: time.Now().UTC(),
		FileSize:  fileSize,
		Chunks:    make([]ChunkRecord, 0, len(views)),
	}
	for _, v := range views {
		entry.Chunks = append(entry.Chunks, ChunkRecord{
			Index:  v.Index,
			Type:   v.Type.String(),
			Length: v.Length(),
			CRC:    v.StoredCRC,
			Offset: v.Offset,
		})
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("failed to marshal entry: %w", err)
	}
	if err := c.db.Set(id.Bytes(), data, pebble.Sync); err != nil {
		return ksuid.Nil, fmt.Errorf("failed to store entry: %w", err)
	}
	return id, nil
}

// Get returns the entry with the given ID.
func (c *Catalog) Get(id ksuid.KSUID) (*Entry, error) {
	data, closer, err := c.db.Get(id.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to read entry %s: %w", id, err)
	}
	defer closer.Close()

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode entry %s: %w", id, err)
	}
	return &entry, nil
}

// List returns every entry in key order.
func (c *Catalog) List() ([]Entry, error) {
	iter, err := c.db.NewIter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate catalog: %w", err)
	}
	defer iter.Close()

	var entries []Entry
	for iter.First(); iter.Valid(); iter.Next() {
		var entry Entry
		if err := json.Unmarshal(iter.Value(), &entry); err != nil {
			return nil, fmt.Errorf("failed to decode entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("catalog iteration failed: %w", err)
	}
	return entries, nil
}

// Delete removes the entry with the given ID.
func (c *Catalog) Delete(id ksuid.KSUID) error {
	return c.db.Delete(id.Bytes(), pebble.Sync)
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

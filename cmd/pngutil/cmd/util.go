package cmd

import (
	"fmt"
	"os"

	"github.com/Nordgaren/png-util/pkg/chunk"
	"github.com/Nordgaren/png-util/pkg/png"
)

// readChunks loads a file and scans it into a chunk sequence. The returned
// buffer backs the views and must outlive them.
func readChunks(path string) ([]byte, []chunk.ChunkView, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	views, err := png.Parse(buf)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return buf, views, nil
}

// writeOutput writes a rebuilt file to outPath, or back over inPath when no
// output path was given.
func writeOutput(inPath, outPath string, data []byte) error {
	target := outPath
	if target == "" {
		target = inPath
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	fmt.Printf("Wrote %d bytes to %s\n", len(data), target)
	return nil
}

// typeFlags renders the property bits of a type code the way inspect prints
// them.
func typeFlags(t chunk.ChunkType) string {
	flags := ""
	if t.Ancillary() {
		flags += "a"
	} else {
		flags += "-"
	}
	if t.Private() {
		flags += "p"
	} else {
		flags += "-"
	}
	if t.SafeToCopy() {
		flags += "s"
	} else {
		flags += "-"
	}
	return flags
}

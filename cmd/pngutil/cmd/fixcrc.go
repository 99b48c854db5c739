package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Nordgaren/png-util/pkg/chunk"
	"github.com/Nordgaren/png-util/pkg/png"
)

var fixCRCOutput string

var fixCRCCmd = &cobra.Command{
	Use:   "fix-crc <file>",
	Short: "Rewrite a PNG file with recomputed checksums",
	Long: `Fix-crc scans a file without CRC verification, reports how many stored
checksums disagree with their payloads, and rebuilds the file with every
checksum recomputed. Framing and structural errors are still fatal.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		reader, err := png.NewLenientReader(buf)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		var views []chunk.ChunkView
		bad := 0
		for {
			view, err := reader.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if !view.VerifyCRC() {
				bad++
			}
			views = append(views, view)
		}

		out, err := png.BuilderFromChunks(views).Finalize()
		if err != nil {
			return err
		}

		fmt.Printf("Recomputed checksums for %d chunks (%d were wrong)\n", len(views), bad)
		return writeOutput(args[0], fixCRCOutput, out)
	},
}

func init() {
	fixCRCCmd.Flags().StringVarP(&fixCRCOutput, "output", "o", "", "output path (default: overwrite input)")
	rootCmd.AddCommand(fixCRCCmd)
}

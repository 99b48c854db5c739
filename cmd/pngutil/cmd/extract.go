package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Nordgaren/png-util/pkg/chunk"
)

var (
	extractType   string
	extractIndex  int
	extractOutput string
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Write one chunk's payload to a file",
	Long: `Extract scans a PNG file and writes the payload of a single chunk to
--output. The chunk is selected by --type (first match) or by --index.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if extractOutput == "" {
			return fmt.Errorf("--output is required")
		}
		if extractType == "" && extractIndex < 0 {
			return fmt.Errorf("one of --type or --index is required")
		}
		if extractType != "" && extractIndex >= 0 {
			return fmt.Errorf("--type and --index are mutually exclusive")
		}

		_, views, err := readChunks(args[0])
		if err != nil {
			return err
		}

		var payload []byte
		found := false
		if extractType != "" {
			want, err := chunk.ParseChunkType(extractType)
			if err != nil {
				return fmt.Errorf("invalid chunk type %q: %w", extractType, err)
			}
			for _, v := range views {
				if v.Type == want {
					payload = v.Payload
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("no %s chunk in %s", want, args[0])
			}
		} else {
			if extractIndex >= len(views) {
				return fmt.Errorf("chunk index %d out of range (file has %d chunks)", extractIndex, len(views))
			}
			payload = views[extractIndex].Payload
			found = true
		}

		if err := os.WriteFile(extractOutput, payload, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", extractOutput, err)
		}
		fmt.Printf("Wrote %d bytes to %s\n", len(payload), extractOutput)
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractType, "type", "", "chunk type to extract (first match)")
	extractCmd.Flags().IntVar(&extractIndex, "index", -1, "chunk index to extract")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output path for the payload")
	rootCmd.AddCommand(extractCmd)
}

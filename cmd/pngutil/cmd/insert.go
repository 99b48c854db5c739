package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Nordgaren/png-util/pkg/png"
)

var (
	insertType     string
	insertData     string
	insertDataFile string
	insertAfter    int
	insertOutput   string
)

var insertCmd = &cobra.Command{
	Use:   "insert <file>",
	Short: "Insert a new chunk into a PNG file",
	Long: `Insert rebuilds a PNG file with one additional chunk. The payload comes
from --data or --data-file, and the chunk is placed after the live index
given by --after (default 0, directly after the header).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if insertType == "" {
			return fmt.Errorf("--type is required")
		}
		if insertData != "" && insertDataFile != "" {
			return fmt.Errorf("--data and --data-file are mutually exclusive")
		}

		payload := []byte(insertData)
		if insertDataFile != "" {
			var err error
			payload, err = os.ReadFile(insertDataFile)
			if err != nil {
				return fmt.Errorf("failed to read payload file: %w", err)
			}
		}

		_, views, err := readChunks(args[0])
		if err != nil {
			return err
		}

		builder := png.BuilderFromChunks(views)
		if err := builder.InsertAfter(insertAfter, insertType, payload); err != nil {
			return err
		}

		out, err := builder.Finalize()
		if err != nil {
			return err
		}

		fmt.Printf("Inserted %s chunk (%d byte payload)\n", insertType, len(payload))
		return writeOutput(args[0], insertOutput, out)
	},
}

func init() {
	insertCmd.Flags().StringVar(&insertType, "type", "", "chunk type to insert (e.g. tEXt)")
	insertCmd.Flags().StringVar(&insertData, "data", "", "payload as a literal string")
	insertCmd.Flags().StringVar(&insertDataFile, "data-file", "", "payload read from a file")
	insertCmd.Flags().IntVar(&insertAfter, "after", 0, "live index to insert after")
	insertCmd.Flags().StringVarP(&insertOutput, "output", "o", "", "output path (default: overwrite input)")
	rootCmd.AddCommand(insertCmd)
}

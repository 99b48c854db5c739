package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Nordgaren/png-util/pkg/png"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a PNG file's structure and checksums",
	Long: `Validate scans the whole file, verifying the signature, chunk framing,
header and terminator placement, and every chunk's CRC. The exit code is
non-zero when any check fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		views, err := png.Parse(buf)
		if err != nil {
			return fmt.Errorf("%s: invalid: %w", args[0], err)
		}

		fmt.Printf("%s: valid, %d chunks\n", args[0], len(views))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nordgaren/png-util/pkg/chunk"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "List the chunks of a PNG file",
	Long: `Inspect scans a PNG file and prints one line per chunk: index, type,
payload length, stored CRC, byte offset, and the type's property flags
(ancillary, private, safe-to-copy). When the header chunk parses, its
image fields are printed as a summary.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, views, err := readChunks(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%-5s %-6s %10s %10s %10s %s\n", "INDEX", "TYPE", "LENGTH", "CRC", "OFFSET", "FLAGS")
		for _, v := range views {
			fmt.Printf("%-5d %-6s %10d %10s %10d %s\n",
				v.Index, v.Type, v.Length(), fmt.Sprintf("%08x", v.StoredCRC), v.Offset, typeFlags(v.Type))
		}

		hdr, err := chunk.ParseIHDR(views[0].Payload)
		if err == nil {
			fmt.Printf("\n%s\n", hdr)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

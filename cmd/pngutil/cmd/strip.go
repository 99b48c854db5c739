package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Nordgaren/png-util/pkg/chunk"
	"github.com/Nordgaren/png-util/pkg/png"
)

var (
	stripTypes  []string
	stripOutput string
)

var stripCmd = &cobra.Command{
	Use:   "strip <file>",
	Short: "Remove chunks of the given types",
	Long: `Strip rebuilds a PNG file without the chunks whose type matches --types.
Only ancillary types may be stripped; removing critical chunks such as
IHDR or IDAT would corrupt the image.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(stripTypes) == 0 {
			return fmt.Errorf("at least one --types value is required")
		}

		targets := make(map[chunk.ChunkType]bool, len(stripTypes))
		for _, tag := range stripTypes {
			t, err := chunk.ParseChunkType(strings.TrimSpace(tag))
			if err != nil {
				return fmt.Errorf("invalid chunk type %q: %w", tag, err)
			}
			if t.Critical() {
				return fmt.Errorf("refusing to strip critical chunk type %s", t)
			}
			targets[t] = true
		}

		_, views, err := readChunks(args[0])
		if err != nil {
			return err
		}

		builder := png.BuilderFromChunks(views)
		removed := 0
		for i := builder.Len() - 1; i >= 0; i-- {
			if targets[views[i].Type] {
				if err := builder.Remove(i); err != nil {
					return err
				}
				removed++
			}
		}

		out, err := builder.Finalize()
		if err != nil {
			return err
		}

		fmt.Printf("Removed %d chunks\n", removed)
		return writeOutput(args[0], stripOutput, out)
	},
}

func init() {
	stripCmd.Flags().StringSliceVarP(&stripTypes, "types", "t", nil, "chunk types to remove (e.g. tEXt,tIME)")
	stripCmd.Flags().StringVarP(&stripOutput, "output", "o", "", "output path (default: overwrite input)")
	rootCmd.AddCommand(stripCmd)
}

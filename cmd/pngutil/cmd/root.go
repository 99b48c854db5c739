package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pngutil",
	Short: "pngutil - PNG chunk inspection and editing",
	Long: `pngutil reads, validates, and rebuilds PNG files at the chunk level:
list chunks, strip ancillary data, insert or extract chunks, repair
checksums, keep a catalog of scans, or serve the toolbox over HTTP.

Pixel data is never decoded; every payload is treated as opaque bytes.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

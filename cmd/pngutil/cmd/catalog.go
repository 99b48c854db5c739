package cmd

import (
	"fmt"
	"os"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/Nordgaren/png-util/pkg/catalog"
)

var catalogDB string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the scan catalog",
	Long: `Catalog keeps a persistent inventory of scanned files. Each add stores
the file's chunk listing under a new ID; list, show, and rm operate on
those entries.`,
}

var catalogAddCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Scan a file and store its chunk listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, views, err := readChunks(args[0])
		if err != nil {
			return err
		}

		c, err := catalog.Open(catalogDB)
		if err != nil {
			return err
		}
		defer c.Close()

		id, err := c.Add(args[0], int64(len(buf)), views)
		if err != nil {
			return err
		}
		fmt.Printf("Cataloged %s as %s (%d chunks)\n", args[0], id, len(views))
		return nil
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cataloged scans",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Open(catalogDB)
		if err != nil {
			return err
		}
		defer c.Close()

		entries, err := c.List()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("Catalog is empty")
			return nil
		}

		fmt.Printf("%-29s %-20s %10s %7s  %s\n", "ID", "SCANNED", "SIZE", "CHUNKS", "PATH")
		for _, e := range entries {
			fmt.Printf("%-29s %-20s %10d %7d  %s\n",
				e.ID, e.ScannedAt.Format("2006-01-02 15:04:05"), e.FileSize, len(e.Chunks), e.Path)
		}
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one cataloged scan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid catalog ID %q: %w", args[0], err)
		}

		c, err := catalog.Open(catalogDB)
		if err != nil {
			return err
		}
		defer c.Close()

		entry, err := c.Get(id)
		if err != nil {
			return err
		}

		fmt.Printf("ID:      %s\n", entry.ID)
		fmt.Printf("Path:    %s\n", entry.Path)
		fmt.Printf("Scanned: %s\n", entry.ScannedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Size:    %d bytes\n\n", entry.FileSize)
		fmt.Printf("%-5s %-6s %10s %10s %10s\n", "INDEX", "TYPE", "LENGTH", "CRC", "OFFSET")
		for _, rec := range entry.Chunks {
			fmt.Printf("%-5d %-6s %10d %10s %10d\n",
				rec.Index, rec.Type, rec.Length, fmt.Sprintf("%08x", rec.CRC), rec.Offset)
		}
		return nil
	},
}

var catalogRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a cataloged scan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid catalog ID %q: %w", args[0], err)
		}

		c, err := catalog.Open(catalogDB)
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.Delete(id); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", id)
		return nil
	},
}

func defaultCatalogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pngutil-catalog"
	}
	return home + "/.local/share/pngutil/catalog"
}

func init() {
	catalogCmd.PersistentFlags().StringVar(&catalogDB, "db", defaultCatalogDir(), "catalog database directory")
	catalogCmd.AddCommand(catalogAddCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogRmCmd)
	rootCmd.AddCommand(catalogCmd)
}

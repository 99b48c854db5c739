package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nordgaren/png-util/pkg/api"
	"github.com/Nordgaren/png-util/pkg/config"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pngutil HTTP API",
	Long: `Serve starts the HTTP API: clients POST raw file bytes to inspect,
validate, or strip endpoints under /api/v1, authenticated with the API
key from the config file. A config with a generated key is written on
first run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadOrBootstrapConfig(serveConfigPath)
		if err != nil {
			return err
		}

		return api.StartServer(api.ServerConfig{
			Bind:        cfg.Bind,
			Port:        cfg.Port,
			APIKey:      cfg.APIKey,
			MaxFileSize: cfg.MaxFileSize,
		})
	},
}

func loadOrBootstrapConfig(path string) (*config.Config, error) {
	if config.ConfigExists(path) {
		return config.LoadConfig(path)
	}

	cfg, err := config.BootstrapConfig(path)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Generated new config at %s\n", path)
	fmt.Printf("API key: %s\n", cfg.APIKey)
	return cfg, nil
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", config.GetDefaultConfigPath(), "config file path")
	rootCmd.AddCommand(serveCmd)
}

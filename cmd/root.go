package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pergazuz/thai-map/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "thai-map",
	Short: "Hub coverage planning for Thailand",
	Long:  "Places hub zones, bulk-imports candidate points from text or shapefiles, classifies coverage, resolves provinces, and exports CSV/XLSX/GeoJSON reports.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional and never overrides existing environment.
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

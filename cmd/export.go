package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pergazuz/thai-map/internal/model"
	"github.com/pergazuz/thai-map/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export coverage reports",
}

var (
	exportPointsOut  string
	exportZonesOut   string
	exportXLSXOut    string
	exportGeoJSONOut string
)

var exportPointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Write the per-point detail report as CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runExport(cmd, exportPointsOut, report.ExportDetailCSV)
	},
}

var exportZonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "Write the per-hub summary report as CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runExport(cmd, exportZonesOut, report.ExportSummaryCSV)
	},
}

var exportXLSXCmd = &cobra.Command{
	Use:   "xlsx",
	Short: "Write both reports as one XLSX workbook",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runExport(cmd, exportXLSXOut, report.ExportXLSX)
	},
}

var exportGeoJSONCmd = &cobra.Command{
	Use:   "geojson",
	Short: "Write hubs and points as a GeoJSON FeatureCollection",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runExport(cmd, exportGeoJSONOut, report.ExportGeoJSON)
	},
}

// runExport loads the state and hands it to one of the report writers.
func runExport(cmd *cobra.Command, out string, write func(model.State, string) error) error {
	ctx := cmd.Context()

	env, err := initApp(ctx, "cli")
	if err != nil {
		return err
	}
	defer env.Close()

	st, err := env.Service.State(ctx)
	if err != nil {
		return err
	}

	if err := write(st, out); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", out)
	return nil
}

func init() {
	exportPointsCmd.Flags().StringVar(&exportPointsOut, "out", "points.csv", "output path")
	exportZonesCmd.Flags().StringVar(&exportZonesOut, "out", "zones.csv", "output path")
	exportXLSXCmd.Flags().StringVar(&exportXLSXOut, "out", "report.xlsx", "output path")
	exportGeoJSONCmd.Flags().StringVar(&exportGeoJSONOut, "out", "coverage.geojson", "output path")

	exportCmd.AddCommand(exportPointsCmd)
	exportCmd.AddCommand(exportZonesCmd)
	exportCmd.AddCommand(exportXLSXCmd)
	exportCmd.AddCommand(exportGeoJSONCmd)
	rootCmd.AddCommand(exportCmd)
}

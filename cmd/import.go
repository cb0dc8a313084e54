package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pergazuz/thai-map/internal/ingest"
	"github.com/pergazuz/thai-map/internal/model"
	"github.com/pergazuz/thai-map/internal/state"
)

var (
	importText      string
	importCategory  string
	importNoResolve bool
	importNameField string
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Bulk-import points from free text",
	Long: `Parses one candidate point per line: a shared-map link
(".../@13.75,100.50,15z") or a bare "lat, lng" pair, optionally preceded by a
name. Unnamed points get a province label once resolution succeeds.

Examples:
  # Import from a file
  thai-map import locations.txt

  # Import a pasted block
  thai-map import --text "Depot 13.7563, 100.5018"

  # Offline import, resolve provinces later
  thai-map import locations.txt --no-resolve`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		text := importText
		switch {
		case len(args) == 1 && text != "":
			return eris.New("import: provide a file or --text, not both")
		case len(args) == 1:
			data, err := os.ReadFile(args[0])
			if err != nil {
				return eris.Wrap(err, "import: read file")
			}
			text = string(data)
		case text == "":
			return eris.New("import: provide a file or --text")
		}

		category, err := model.ParseCategory(importCategory)
		if err != nil {
			return err
		}

		env, err := initApp(ctx, importMode())
		if err != nil {
			return err
		}
		defer env.Close()

		rep, err := env.Service.ImportText(ctx, text, category, !importNoResolve)
		if err != nil {
			return err
		}

		printImportReport(rep)
		return nil
	},
}

var importShpCmd = &cobra.Command{
	Use:   "shp <file.shp>",
	Short: "Bulk-import points from an ESRI shapefile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cands, err := ingest.ReadShapefile(args[0], importNameField)
		if err != nil {
			return err
		}

		category, err := model.ParseCategory(importCategory)
		if err != nil {
			return err
		}

		env, err := initApp(ctx, importMode())
		if err != nil {
			return err
		}
		defer env.Close()

		rep, err := env.Service.ImportCandidates(ctx, cands, category, !importNoResolve)
		if err != nil {
			return err
		}

		printImportReport(rep)
		return nil
	},
}

func importMode() string {
	if importNoResolve {
		return "cli"
	}
	return "resolve"
}

func printImportReport(rep *state.ImportReport) {
	fmt.Printf("Imported %d point(s), skipped %d line(s)\n", rep.Added, rep.Skipped)
	if rep.Fallback {
		fmt.Println("Province resolution fell back; run 'thai-map resolve' to retry later.")
	}
	for _, pt := range rep.Points {
		fmt.Printf("  %s  %s  %.6f, %.6f\n", pt.ID[:8], pt.Label, pt.Lat, pt.Lng)
	}
}

func init() {
	importCmd.Flags().StringVar(&importText, "text", "", "inline text block instead of a file")
	importCmd.PersistentFlags().StringVar(&importCategory, "category", "request", "point category (existing|request|pending|outzone)")
	importCmd.PersistentFlags().BoolVar(&importNoResolve, "no-resolve", false, "skip province resolution")
	importShpCmd.Flags().StringVar(&importNameField, "name-field", "NAME", "attribute field holding the point name")

	importCmd.AddCommand(importShpCmd)
	rootCmd.AddCommand(importCmd)
}

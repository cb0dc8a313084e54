package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pergazuz/thai-map/internal/model"
	"github.com/pergazuz/thai-map/internal/report"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show collection sizes and coverage tallies",
	RunE: func(cmd *cobra.Command, _ []string) error {
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

		formatStatus(os.Stdout, report.TallyState(st))
		return nil
	},
}

// formatStatus writes the tally summary to w.
func formatStatus(out io.Writer, t report.Tally) {
	_, _ = fmt.Fprintln(out, "=== Coverage Status ===")
	_, _ = fmt.Fprintf(out, "Hubs:    %d\n", t.Hubs)
	_, _ = fmt.Fprintf(out, "Points:  %d\n", t.Points)
	_, _ = fmt.Fprintln(out)

	_, _ = fmt.Fprintln(out, "By status:")
	for _, s := range report.StatusOrder {
		_, _ = fmt.Fprintf(out, "  %-10s %d\n", string(s), t.ByStatus[s])
	}
	_, _ = fmt.Fprintln(out)

	_, _ = fmt.Fprintln(out, "By category:")
	for _, c := range model.CategoryOrder {
		_, _ = fmt.Fprintf(out, "  %-10s %d\n", c.Display(), t.ByCategory[c])
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

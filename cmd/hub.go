package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pergazuz/thai-map/internal/model"
)

var hubCmd = &cobra.Command{
	Use:   "hub",
	Short: "Manage hub zones",
}

var (
	hubAddLat  float64
	hubAddLng  float64
	hubAddName string
)

var hubAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Place a hub zone at the given coordinates",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initApp(ctx, "cli")
		if err != nil {
			return err
		}
		defer env.Close()

		hub, err := env.Service.AddHub(ctx, hubAddLat, hubAddLng, hubAddName)
		if err != nil {
			return err
		}

		fmt.Printf("Added hub %q (%s) at %.6f, %.6f\n", hub.Label, hub.ID[:8], hub.Lat, hub.Lng)
		return nil
	},
}

var hubListCmd = &cobra.Command{
	Use:   "list",
	Short: "List hub zones",
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

		if len(st.Hubs) == 0 {
			fmt.Println("No hubs. Add one with 'thai-map hub add --lat <f> --lng <f>'.")
			return nil
		}

		formatHubs(os.Stdout, st.Hubs)
		return nil
	},
}

var hubRenameCmd = &cobra.Command{
	Use:   "rename <id|label> <new-name>",
	Short: "Rename a hub zone",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initApp(ctx, "cli")
		if err != nil {
			return err
		}
		defer env.Close()

		hub, err := env.Service.RenameHub(ctx, args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Printf("Renamed hub %s to %q\n", hub.ID[:8], hub.Label)
		return nil
	},
}

var hubRmCmd = &cobra.Command{
	Use:   "rm <id|label>",
	Short: "Remove a hub zone",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initApp(ctx, "cli")
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.Service.RemoveHub(ctx, args[0]); err != nil {
			return err
		}

		fmt.Printf("Removed hub %s\n", args[0])
		return nil
	},
}

// formatHubs writes a tabular view of the hub collection to w.
func formatHubs(out io.Writer, hubs []model.Hub) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tLABEL\tLAT\tLNG\tPRIMARY KM\tEXTENDED KM\tCREATED")
	_, _ = fmt.Fprintln(w, "--\t-----\t---\t---\t----------\t-----------\t-------")

	for _, h := range hubs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%.6f\t%.6f\t%.0f\t%.0f\t%s\n",
			h.ID[:8],
			h.Label,
			h.Lat,
			h.Lng,
			h.PrimaryRadiusM/1000,
			h.ExtendedRadiusM/1000,
			h.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}

func init() {
	hubAddCmd.Flags().Float64Var(&hubAddLat, "lat", 0, "hub latitude (required)")
	hubAddCmd.Flags().Float64Var(&hubAddLng, "lng", 0, "hub longitude (required)")
	hubAddCmd.Flags().StringVar(&hubAddName, "name", "", "hub label (default auto-generated)")
	_ = hubAddCmd.MarkFlagRequired("lat")
	_ = hubAddCmd.MarkFlagRequired("lng")

	hubCmd.AddCommand(hubAddCmd)
	hubCmd.AddCommand(hubListCmd)
	hubCmd.AddCommand(hubRenameCmd)
	hubCmd.AddCommand(hubRmCmd)
	rootCmd.AddCommand(hubCmd)
}

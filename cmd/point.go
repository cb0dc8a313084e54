package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pointCmd = &cobra.Command{
	Use:   "point",
	Short: "Manage imported points",
}

var pointRenameCmd = &cobra.Command{
	Use:   "rename <id|label> <new-name>",
	Short: "Rename a point and shield it from relabeling",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initApp(ctx, "cli")
		if err != nil {
			return err
		}
		defer env.Close()

		pt, err := env.Service.RenamePoint(ctx, args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Printf("Renamed point %s to %q\n", pt.ID[:8], pt.Label)
		return nil
	},
}

var pointRmCmd = &cobra.Command{
	Use:   "rm <id|label>",
	Short: "Remove a point",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initApp(ctx, "cli")
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.Service.RemovePoint(ctx, args[0]); err != nil {
			return err
		}

		fmt.Printf("Removed point %s\n", args[0])
		return nil
	},
}

func init() {
	pointCmd.AddCommand(pointRenameCmd)
	pointCmd.AddCommand(pointRmCmd)
	rootCmd.AddCommand(pointCmd)
}

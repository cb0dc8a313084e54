package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Re-run province resolution for unresolved points",
	Long:  "Retries province resolution for points still carrying the coordinate fallback label, e.g. after an offline import or a provider outage.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initApp(ctx, "resolve")
		if err != nil {
			return err
		}
		defer env.Close()

		updated, err := env.Service.Resolve(ctx)
		if err != nil {
			return err
		}

		if updated == 0 {
			fmt.Println("No points needed resolution.")
			return nil
		}
		fmt.Printf("Resolved %d point(s)\n", updated)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

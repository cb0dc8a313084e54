package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pergazuz/thai-map/internal/config"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config.yaml with the built-in defaults",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := writeDefaultConfig("config.yaml", configInitForce); err != nil {
			return err
		}
		fmt.Println("Wrote config.yaml")
		return nil
	},
}

// writeDefaultConfig renders the built-in defaults as YAML at path. An
// existing file is only replaced with force.
func writeDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return eris.Errorf("config: %s already exists (use --force to overwrite)", path)
		}
	}

	defaults, err := config.Default()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(defaults)
	if err != nil {
		return eris.Wrap(err, "config: marshal defaults")
	}

	return eris.Wrap(os.WriteFile(path, data, 0644), "config: write file")
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config.yaml")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

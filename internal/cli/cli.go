// Package cli wires mameset's app-layer runners into cobra commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mameset",
	Short: "Ingest a MAME catalog and query its ROM-set views",
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String(ConfigFlag, "", "path to configuration file")
	for _, name := range runnerNames() {
		rootCmd.AddCommand(newRunnerCommand(name))
	}
}

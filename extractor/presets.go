package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	multievent "github.com/next-exp/multievent_go/pkg"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the extent presets valid for a run",
	RunE: func(cmd *cobra.Command, args []string) error {
		configuration, err := loadConfiguration()
		if err != nil {
			return fmt.Errorf("Error reading configuration file: %w", err)
		}
		run := configuration.RunNumber
		if runNumber >= 0 {
			run = runNumber
		}

		dbConn, err := multievent.ConnectToDatabase(configuration.DBDriver, configuration.User,
			configuration.Passwd, configuration.Host, configuration.DBName)
		if err != nil {
			return fmt.Errorf("Error connection to database: %w", err)
		}
		defer dbConn.Close()

		presets, err := multievent.ListExtentPresets(dbConn, run)
		if err != nil {
			return err
		}
		return printPresets(cmd.OutOrStdout(), run, presets)
	},
}

func printPresets(out io.Writer, run int, presets []multievent.ExtentPreset) error {
	fmt.Fprintf(out, "Extent presets for run %d: %d\n", run, len(presets))
	for _, p := range presets {
		extent, err := p.Extent()
		if err != nil {
			fmt.Fprintf(out, "%-20s invalid: %v\n", p.Name, err)
			continue
		}
		fmt.Fprintf(out, "%-20s %s (runs %d-%d)\n", p.Name, extent, p.MinRun, p.MaxRun)
	}
	return nil
}

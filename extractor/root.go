package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	multievent "github.com/next-exp/multievent_go/pkg"
)

var (
	logger         multievent.SlogLogger
	configFilename string
	runNumber      int
)

func init() {
	logger = multievent.NewSlogLogger(os.Stdout, os.Stderr, slog.LevelDebug)
	multievent.SetLogger(logger)

	rootCmd.PersistentFlags().StringVar(&configFilename, "config", "", "Configuration file path (JSON or YAML)")
	presetsCmd.Flags().IntVar(&runNumber, "run", -1, "Run number (defaults to run_number from the configuration)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(presetsCmd)
}

var rootCmd = &cobra.Command{
	Use:           "extractor",
	Short:         "Multi-event pair extraction for multiplicity groups",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func loadConfiguration() (multievent.Configuration, error) {
	configuration, err := multievent.LoadConfiguration(configFilename)
	if err != nil {
		return configuration, err
	}
	multievent.SetConfiguration(configuration)
	if configuration.Verbosity > 0 {
		logger.Info("Reading configuration file: "+configFilename, "main")
		multievent.PrintConfiguration(configuration, logger)
	}
	return configuration, nil
}

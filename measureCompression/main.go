package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	multievent "github.com/next-exp/multievent_go/pkg"
)

var (
	logger         multievent.SlogLogger
	configFilename string
	repetitions    int
	outDir         string
)

func init() {
	logger = multievent.NewSlogLogger(os.Stdout, os.Stderr, slog.LevelDebug)
	multievent.SetLogger(logger)

	rootCmd.Flags().StringVar(&configFilename, "config", "", "Configuration file path")
	rootCmd.Flags().IntVar(&repetitions, "repetitions", 3, "Writes per compression level")
	rootCmd.Flags().StringVar(&outDir, "out", os.TempDir(), "Directory for the scratch outputs")
}

var rootCmd = &cobra.Command{
	Use:          "measureCompression",
	Short:        "Time and size of the pair output at every deflate level",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return measure()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func measure() error {
	configuration, err := multievent.LoadConfiguration(configFilename)
	if err != nil {
		return fmt.Errorf("Error reading configuration file: %w", err)
	}
	configuration.Format = multievent.FormatHDF5
	multievent.SetConfiguration(configuration)
	if configuration.Verbosity > 0 {
		multievent.PrintConfiguration(configuration, logger)
	}
	if repetitions < 1 {
		return fmt.Errorf("repetitions must be >= 1, got %d", repetitions)
	}

	pipeline, err := measurementPipeline(configuration)
	if err != nil {
		return err
	}
	// only the first input is measured
	input := configuration.FilesIn[0]
	ex, err := pipeline.Extract(input)
	if err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("%s: %d pairs", input, ex.NPairs()), "main")

	output := filepath.Join(outDir, "measureCompression.h5")
	defer os.Remove(output)

	start := time.Now()
	for level := 0; level < 10; level++ {
		pipeline.Config.CompressionLevel = level
		for i := 0; i < repetitions; i++ {
			t0 := time.Now()
			if err := pipeline.Write(ex, output); err != nil {
				return err
			}
			duration := time.Since(t0)
			fileInfo, err := os.Stat(output)
			if err != nil {
				logger.Error(fmt.Sprintf("Error getting file info: %v", err))
				continue
			}
			fmt.Printf("(hdf5, comp %d) Time: %d ms, size %d bytes\n", level, duration.Milliseconds(), fileInfo.Size())
		}
	}
	fmt.Printf("Total time: %d ms\n", time.Since(start).Milliseconds())
	return nil
}

// measurementPipeline builds the pipeline for the measured input, reading the
// extent preset from the database when one is configured.
func measurementPipeline(configuration multievent.Configuration) (*multievent.Pipeline, error) {
	if configuration.NoDB || configuration.ExtentPreset == "" {
		return multievent.NewPipeline(configuration, nil)
	}
	dbConn, err := multievent.ConnectToDatabase(configuration.DBDriver, configuration.User,
		configuration.Passwd, configuration.Host, configuration.DBName)
	if err != nil {
		return nil, fmt.Errorf("Error connection to database: %w", err)
	}
	defer dbConn.Close()
	logger.Info(fmt.Sprintf("Using extent preset %q for run %d", configuration.ExtentPreset, configuration.RunNumber), "main")
	return multievent.NewPipeline(configuration, dbConn)
}

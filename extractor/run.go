package main

import (
	"context"
	"fmt"
	"os"
	"time"

	sqlx "github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	multievent "github.com/next-exp/multievent_go/pkg"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract pairs from every configured ROI file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtraction(cmd.Context())
	},
}

func runExtraction(ctx context.Context) error {
	configuration, err := loadConfiguration()
	if err != nil {
		return fmt.Errorf("Error reading configuration file: %w", err)
	}

	var dbConn *sqlx.DB
	if !configuration.NoDB {
		dbConn, err = multievent.ConnectToDatabase(configuration.DBDriver, configuration.User,
			configuration.Passwd, configuration.Host, configuration.DBName)
		if err != nil {
			return fmt.Errorf("Error connection to database: %w", err)
		}
		defer dbConn.Close()
	}

	pipeline, err := multievent.NewPipeline(configuration, dbConn)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configuration.DirOut, 0o755); err != nil {
		return fmt.Errorf("Error creating output directory: %w", err)
	}

	start := time.Now()
	summaries, err := multievent.ProcessFiles(ctx, configuration.FilesIn, configuration.NumWorkers, pipeline.Process)
	if err != nil {
		return err
	}

	totalPairs := 0
	for _, summary := range summaries {
		if configuration.Verbosity > 0 {
			multievent.LogSummary(summary)
		}
		totalPairs += summary.NPairs
	}
	message := fmt.Sprintf("Files processed: %d, pairs: %d, total time: %d ms",
		len(summaries), totalPairs, time.Since(start).Milliseconds())
	logger.Info(message, "main")
	return nil
}

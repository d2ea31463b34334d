package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	multievent "github.com/next-exp/multievent_go/pkg"
)

func TestMeasurementPipeline_Preset(t *testing.T) {
	dbName := filepath.Join(t.TempDir(), "presets.db")
	db, err := multievent.ConnectToDatabase("sqlite", "", "", "", dbName)
	require.NoError(t, err)
	db.MustExec(`CREATE TABLE ExtentPresets (Name TEXT, Min1 REAL, Max1 REAL,
		Min2 REAL, Max2 REAL, MinRun INTEGER, MaxRun INTEGER)`)
	db.MustExec(`INSERT INTO ExtentPresets VALUES ('fe', 27, 29, 0, 1000, 0, 100)`)
	require.NoError(t, db.Close())

	config := multievent.DefaultConfiguration()
	config.FilesIn = []string{"run_5.h5"}
	config.ExtentPreset = "fe"
	config.RunNumber = 5
	config.NoDB = false
	config.DBDriver = "sqlite"
	config.DBName = dbName

	pipeline, err := measurementPipeline(config)
	require.NoError(t, err)
	require.NotNil(t, pipeline.Extent)
	assert.Equal(t, multievent.Interval{Min: 27, Max: 29}, pipeline.Extent.First)
}

func TestMeasurementPipeline_PresetWithoutDatabase(t *testing.T) {
	config := multievent.DefaultConfiguration()
	config.FilesIn = []string{"run_5.h5"}
	config.ExtentPreset = "fe"

	_, err := measurementPipeline(config)
	assert.ErrorIs(t, err, multievent.ErrInvalidArgument)
}

func TestMeasurementPipeline_InlineExtent(t *testing.T) {
	config := multievent.DefaultConfiguration()
	config.FilesIn = []string{"run_5.h5"}
	config.Extent = [][]float64{{1, 2}, {3, 4}}

	pipeline, err := measurementPipeline(config)
	require.NoError(t, err)
	assert.Equal(t, multievent.Interval{Min: 3, Max: 4}, pipeline.Extent.Second)
}

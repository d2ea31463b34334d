package multievent

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestROI(t *testing.T, dir, name string) (string, *ROI) {
	t.Helper()
	roi := mixedROI(t)
	path := filepath.Join(dir, name)
	require.NoError(t, WriteROI(path, roi))
	return path, roi
}

func TestReadROI_RoundTrip(t *testing.T) {
	path, roi := writeTestROI(t, t.TempDir(), "roi.h5")

	read, err := ReadROI(path)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(roi.Events(), read.Events()))
	assert.Empty(t, cmp.Diff(roi.Groups(), read.Groups()))
}

func TestReadROI_Missing(t *testing.T) {
	_, err := ReadROI(filepath.Join(t.TempDir(), "missing.h5"))
	var openErr *ErrOpenFile
	assert.ErrorAs(t, err, &openErr)
}

func TestPipeline_HDF5(t *testing.T) {
	dir := t.TempDir()
	input, roi := writeTestROI(t, dir, "run_3.h5")

	config := validConfiguration()
	config.FilesIn = []string{input}
	config.DirOut = dir
	config.RunNumber = 3
	config.Multiplicity = mustExact(t, 4)
	config.Histogram = true
	config.HistogramRange = []float64{0, 13}
	config.BinWidth = 1

	p, err := NewPipeline(config, nil)
	require.NoError(t, err)
	summary, err := p.Process(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "run_3.pairs.h5"), summary.Output)
	assert.Equal(t, 6, summary.NPairs)
	assert.Equal(t, roi.Len(), summary.NEvents)

	pairs, indices, err := ReadPairs(summary.Output)
	require.NoError(t, err)
	want := []PairIndex{{8, 9}, {8, 10}, {8, 11}, {9, 10}, {9, 11}, {10, 11}}
	assert.Empty(t, cmp.Diff(want, indices))
	require.Len(t, pairs, len(want))
	assert.Equal(t, Pair{A: roi.Event(8), B: roi.Event(9)}, pairs[0])
}

func TestPipeline_CSV(t *testing.T) {
	dir := t.TempDir()
	input, _ := writeTestROI(t, dir, "run_4.h5")

	for _, format := range []OutputFormat{FormatCSV, FormatCSVZstd} {
		config := validConfiguration()
		config.FilesIn = []string{input}
		config.DirOut = dir
		config.Format = format
		config.Extent = [][]float64{{4, 10}, {0, 1000}}

		p, err := NewPipeline(config, nil)
		require.NoError(t, err)
		summaries, err := ProcessFiles(context.Background(), config.FilesIn, 1, p.Process)
		require.NoError(t, err)
		require.Len(t, summaries, 1)

		f, err := os.Open(summaries[0].Output)
		require.NoError(t, err)
		_, indices, err := ReadPairsCSV(f, format == FormatCSVZstd)
		require.NoError(t, f.Close())
		require.NoError(t, err)
		assert.Equal(t, []PairIndex{{4, 5}, {6, 7}, {8, 9}, {8, 10}, {9, 10}}, indices, format.String())
	}
}

func TestNewPipeline_Invalid(t *testing.T) {
	config := validConfiguration()
	config.Extent = [][]float64{{1, 0}, {0, 1}}
	_, err := NewPipeline(config, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewPipeline_HistogramFromExtentTooWide(t *testing.T) {
	config := validConfiguration()
	config.Extent = [][]float64{{0, 1e300}, {0, 1}}
	config.Histogram = true
	config.BinWidth = 1e-10
	require.NoError(t, config.Validate())

	_, err := NewPipeline(config, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestWriter_WriteHistogramTwice(t *testing.T) {
	w, err := NewWriter(filepath.Join(t.TempDir(), "pairs.h5"), 0)
	require.NoError(t, err)
	defer func() { require.NoError(t, w.Close()) }()

	ex, err := NewPairExtractor(mixedROI(t), AllMultiples)
	require.NoError(t, err)
	require.NoError(t, w.WritePairs(ex, 1))

	h, err := NewCorrelationHistogram(ex, HistogramOptions{Range: Interval{Min: 0, Max: 13}, BinWidth: 1})
	require.NoError(t, err)
	require.NoError(t, w.WriteHistogram(h))
	assert.Error(t, w.WriteHistogram(h))
}

package multievent

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csvExtractor(t *testing.T) *PairExtractor {
	t.Helper()
	events := []Event{{V1: 1, V2: 1.1}, {V1: 5.6, V2: 12}, {V1: 27.25, V2: -3}, {V1: 0.125, V2: 1e-9}}
	roi := mustROI(t, events, []int{1, 3, 0, 0})
	ex, err := NewPairExtractor(roi, mustExact(t, 3))
	require.NoError(t, err)
	return ex
}

func TestWritePairsCSV(t *testing.T) {
	ex := csvExtractor(t)
	var buf bytes.Buffer
	require.NoError(t, WritePairsCSV(&buf, ex))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "index_a,index_b,a_v1,a_v2,b_v1,b_v2", lines[0])
	assert.Equal(t, "1,2,5.6,12,27.25,-3", lines[1])
	assert.Equal(t, "1,3,5.6,12,0.125,1e-09", lines[2])
	assert.Equal(t, "2,3,27.25,-3,0.125,1e-09", lines[3])
}

func TestReadPairsCSV_RoundTrip(t *testing.T) {
	ex := csvExtractor(t)
	var buf bytes.Buffer
	require.NoError(t, WritePairsCSV(&buf, ex))

	pairs, indices, err := ReadPairsCSV(&buf, false)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(ex.Pairs(), pairs))
	assert.Empty(t, cmp.Diff(ex.PairIndices(), indices))
}

func TestWriteCSVFile(t *testing.T) {
	ex := csvExtractor(t)
	dir := t.TempDir()

	for _, compress := range []bool{false, true} {
		name := filepath.Join(dir, "pairs.csv")
		if compress {
			name += ".zst"
		}
		require.NoError(t, WriteCSVFile(name, ex, compress, 3))

		f, err := os.Open(name)
		require.NoError(t, err)
		pairs, indices, err := ReadPairsCSV(f, compress)
		require.NoError(t, f.Close())
		require.NoError(t, err, "compressed=%v", compress)
		assert.Empty(t, cmp.Diff(ex.Pairs(), pairs))
		assert.Empty(t, cmp.Diff(ex.PairIndices(), indices))
	}
}

func TestReadPairsCSV_Invalid(t *testing.T) {
	_, _, err := ReadPairsCSV(strings.NewReader(""), false)
	assert.Error(t, err)

	_, _, err = ReadPairsCSV(strings.NewReader("index_a,index_b,a_v1,a_v2,b_v1,b_v2\nx,1,0,0,0,0\n"), false)
	assert.Error(t, err)

	_, _, err = ReadPairsCSV(strings.NewReader("index_a,index_b\n"), false)
	assert.Error(t, err)

	_, _, err = ReadPairsCSV(strings.NewReader("not zstd"), true)
	assert.Error(t, err)
}

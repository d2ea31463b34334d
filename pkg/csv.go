package multievent

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/klauspost/compress/zstd"
)

var csvHeader = []string{"index_a", "index_b", "a_v1", "a_v2", "b_v1", "b_v2"}

// WritePairsCSV writes one line per pair, in extraction order, after a header.
func WritePairsCSV(out io.Writer, p *PairExtractor) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	record := make([]string, len(csvHeader))
	for i, pair := range p.pairs {
		idx := p.indices[i]
		record[0] = strconv.Itoa(idx.A)
		record[1] = strconv.Itoa(idx.B)
		record[2] = formatFloat(pair.A.V1)
		record[3] = formatFloat(pair.A.V2)
		record[4] = formatFloat(pair.B.V1)
		record[5] = formatFloat(pair.B.V2)
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSVFile writes the pairs of p to filename, zstd compressed when
// compress is set. compressionLevel follows the zstd scale (1 to 22).
func WriteCSVFile(filename string, p *PairExtractor, compress bool, compressionLevel int) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return &ErrOpenFile{Filename: filename, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing %s: %w", filename, cerr)
		}
	}()

	if !compress {
		return WritePairsCSV(file, p)
	}

	level := zstd.EncoderLevelFromZstd(compressionLevel)
	encoder, err := zstd.NewWriter(file, zstd.WithEncoderLevel(level))
	if err != nil {
		return fmt.Errorf("failed to create compressor: %w", err)
	}
	if err := WritePairsCSV(encoder, p); err != nil {
		_ = encoder.Close()
		return err
	}
	return encoder.Close()
}

// ReadPairsCSV parses the output of WritePairsCSV, decompressing it first when
// compressed is set.
func ReadPairsCSV(in io.Reader, compressed bool) ([]Pair, []PairIndex, error) {
	if compressed {
		decoder, err := zstd.NewReader(in)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create decompressor: %w", err)
		}
		defer decoder.Close()
		in = decoder
	}

	r := csv.NewReader(in)
	r.FieldsPerRecord = len(csvHeader)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("missing csv header")
	}

	pairs := make([]Pair, 0, len(records)-1)
	indices := make([]PairIndex, 0, len(records)-1)
	for line, rec := range records[1:] {
		var ints [2]int
		for i := 0; i < 2; i++ {
			if ints[i], err = strconv.Atoi(rec[i]); err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", line+2, err)
			}
		}
		var floats [4]float64
		for i := 0; i < 4; i++ {
			if floats[i], err = strconv.ParseFloat(rec[i+2], 64); err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", line+2, err)
			}
		}
		indices = append(indices, PairIndex{A: ints[0], B: ints[1]})
		pairs = append(pairs, Pair{
			A: Event{V1: floats[0], V2: floats[1]},
			B: Event{V1: floats[2], V2: floats[3]},
		})
	}
	return pairs, indices, nil
}

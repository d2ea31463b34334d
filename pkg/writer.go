package multievent

import (
	"errors"
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

// Writer stores extracted pairs in an HDF5 file:
//
//	/Run/runInfo            one row per extraction
//	/Pairs/values           event fields of both members of every pair
//	/Pairs/indices          ROI indices of both members
//	/Pairs/extent           the filter, one row per field
//	/Pairs/multiplicities   groups and pairs per group size
//	/Histogram/counts       optional correlation histogram
//	/Histogram/edges
type Writer struct {
	File              *hdf5.File
	Filename          string
	RunGroup          *hdf5.Group
	PairsGroup        *hdf5.Group
	HistogramGroup    *hdf5.Group
	RunInfoTable      *hdf5.Dataset
	PairsTable        *hdf5.Dataset
	IndicesTable      *hdf5.Dataset
	ExtentTable       *hdf5.Dataset
	MultiplicityTable *hdf5.Dataset
	CompressionLevel  int
}

func NewWriter(filename string, compressionLevel int) (*Writer, error) {
	if configuration.Verbosity > 1 {
		logger.Info(fmt.Sprintf("Creating file: %s", filename), "writer")
	}
	file, err := createFile(filename)
	if err != nil {
		return nil, err
	}
	w := &Writer{File: file, Filename: filename, CompressionLevel: compressionLevel}
	if err := w.createLayout(); err != nil {
		if cerr := w.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
		return nil, err
	}
	return w, nil
}

func (w *Writer) createLayout() error {
	var err error
	level := w.CompressionLevel
	if w.RunGroup, err = createGroup(w.File, "Run"); err != nil {
		return err
	}
	if w.PairsGroup, err = createGroup(w.File, "Pairs"); err != nil {
		return err
	}
	if w.RunInfoTable, err = createTable(w.RunGroup, "runInfo", RunInfoHDF5{}, level); err != nil {
		return err
	}
	if w.PairsTable, err = createTable(w.PairsGroup, "values", PairHDF5{}, level); err != nil {
		return err
	}
	if w.IndicesTable, err = createTable(w.PairsGroup, "indices", PairIndexHDF5{}, level); err != nil {
		return err
	}
	if w.ExtentTable, err = createTable(w.PairsGroup, "extent", ExtentHDF5{}, level); err != nil {
		return err
	}
	if w.MultiplicityTable, err = createTable(w.PairsGroup, "multiplicities", MultiplicityHDF5{}, level); err != nil {
		return err
	}
	return nil
}

// WritePairs appends the pairs of p together with its run information.
func (w *Writer) WritePairs(p *PairExtractor, runNumber int) error {
	err := writeEntryToTable(w.RunInfoTable, RunInfoHDF5{
		RunNumber:    int32(runNumber),
		Multiplicity: int32(p.Multiplicity().Value()),
		NEvents:      int64(p.ROI().Len()),
		NGroups:      int64(p.NGroups()),
		NPairs:       int64(p.NPairs()),
	})
	if err != nil {
		return fmt.Errorf("error writing run info: %w", err)
	}

	pairs := make([]PairHDF5, len(p.pairs))
	for i, pair := range p.pairs {
		pairs[i] = PairHDF5{
			AV1: pair.A.V1,
			AV2: pair.A.V2,
			BV1: pair.B.V1,
			BV2: pair.B.V2,
		}
	}
	if err := writeArrayToTable(w.PairsTable, &pairs); err != nil {
		return fmt.Errorf("error writing pairs: %w", err)
	}

	indices := make([]PairIndexHDF5, len(p.indices))
	for i, idx := range p.indices {
		indices[i] = PairIndexHDF5{IndexA: int64(idx.A), IndexB: int64(idx.B)}
	}
	if err := writeArrayToTable(w.IndicesTable, &indices); err != nil {
		return fmt.Errorf("error writing pair indices: %w", err)
	}

	if e := p.Extent(); e != nil {
		rows := []ExtentHDF5{
			{Field: convertToHdf5String("v1"), Min: e.First.Min, Max: e.First.Max},
			{Field: convertToHdf5String("v2"), Min: e.Second.Min, Max: e.Second.Max},
		}
		if err := writeArrayToTable(w.ExtentTable, &rows); err != nil {
			return fmt.Errorf("error writing extent: %w", err)
		}
	}

	summary := Summarize(w.Filename, w.Filename, p)
	mult := make([]MultiplicityHDF5, 0, len(summary.GroupsBySize))
	for _, size := range summary.Sizes() {
		if !p.Multiplicity().Matches(size) {
			continue
		}
		mult = append(mult, MultiplicityHDF5{
			Multiplicity: int32(size),
			Groups:       int64(summary.GroupsBySize[size]),
			Pairs:        int64(summary.PairsBySize[size]),
		})
	}
	if err := writeArrayToTable(w.MultiplicityTable, &mult); err != nil {
		return fmt.Errorf("error writing multiplicities: %w", err)
	}
	return nil
}

// WriteHistogram stores the counts as an nBins x nBins array and the bin edges.
func (w *Writer) WriteHistogram(h *CorrelationHistogram) error {
	if w.HistogramGroup != nil {
		return fmt.Errorf("histogram already written to %s", w.Filename)
	}
	var err error
	if w.HistogramGroup, err = createGroup(w.File, "Histogram"); err != nil {
		return err
	}

	n := h.NBins()
	counts, err := create2dArray(w.HistogramGroup, "counts", n, n, w.CompressionLevel)
	if err != nil {
		return err
	}
	defer counts.Close()
	data := h.Data()
	if err := counts.Write(&data); err != nil {
		return fmt.Errorf("error writing histogram counts: %w", err)
	}
	return writeFixedTable(w.HistogramGroup, "edges", h.Edges)
}

func (w *Writer) Close() error {
	if configuration.Verbosity > 1 {
		logger.Info(fmt.Sprintf("Closing file %s", w.Filename), "writer")
	}
	var errs []error
	closeHandle := func(name string, c interface{ Close() error }) {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing %s: %w", name, err))
		}
	}

	if w.RunInfoTable != nil {
		closeHandle("run info table", w.RunInfoTable)
	}
	if w.PairsTable != nil {
		closeHandle("pairs table", w.PairsTable)
	}
	if w.IndicesTable != nil {
		closeHandle("indices table", w.IndicesTable)
	}
	if w.ExtentTable != nil {
		closeHandle("extent table", w.ExtentTable)
	}
	if w.MultiplicityTable != nil {
		closeHandle("multiplicity table", w.MultiplicityTable)
	}
	if w.HistogramGroup != nil {
		closeHandle("histogram group", w.HistogramGroup)
	}
	if w.PairsGroup != nil {
		closeHandle("pairs group", w.PairsGroup)
	}
	if w.RunGroup != nil {
		closeHandle("run group", w.RunGroup)
	}
	if w.File != nil {
		closeHandle("file", w.File)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

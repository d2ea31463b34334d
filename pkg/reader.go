package multievent

import (
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
)

const (
	roiGroupName        = "ROI"
	roiEventsName       = "events"
	roiIonsPerPulseName = "ipp"
	roiMultiplicityName = "multiplicity"
)

// ReadROI loads /ROI/events together with the group partition, taken from
// /ROI/ipp (ions per pulse) or, when that is missing, /ROI/multiplicity.
func ReadROI(filename string) (*ROI, error) {
	f, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	defer f.Close()

	g, err := f.OpenGroup(roiGroupName)
	if err != nil {
		return nil, &ErrOpenDataset{DatasetName: roiGroupName, Err: err}
	}
	defer g.Close()

	rows, err := readTable[EventHDF5](g, roiEventsName)
	if err != nil {
		return nil, err
	}
	events := make([]Event, len(rows))
	for i, row := range rows {
		events[i] = Event{V1: row.V1, V2: row.V2}
	}

	var roi *ROI
	switch {
	case g.LinkExists(roiIonsPerPulseName):
		ipp, err := readTable[int32](g, roiIonsPerPulseName)
		if err != nil {
			return nil, err
		}
		roi, err = NewROIFromIonsPerPulse(events, toInts(ipp))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	case g.LinkExists(roiMultiplicityName):
		mult, err := readTable[int32](g, roiMultiplicityName)
		if err != nil {
			return nil, err
		}
		roi, err = NewROIFromMultiplicities(events, toInts(mult))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	default:
		return nil, &ErrOpenDataset{
			DatasetName: roiIonsPerPulseName,
			Err:         fmt.Errorf("%s has neither %q nor %q", filename, roiIonsPerPulseName, roiMultiplicityName),
		}
	}

	if configuration.Verbosity > 1 {
		message := fmt.Sprintf("Read %d events in %d groups from %s", roi.Len(), len(roi.groups), filename)
		logger.Info(message, "reader")
	}
	return roi, nil
}

// WriteROI stores roi in the layout read by ReadROI, using the ions per
// pulse column for the partition.
func WriteROI(filename string, roi *ROI) (err error) {
	f, err := createFile(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing file: %w", cerr)
		}
	}()

	g, err := createGroup(f, roiGroupName)
	if err != nil {
		return err
	}
	defer g.Close()

	rows := make([]EventHDF5, roi.Len())
	for i, ev := range roi.events {
		rows[i] = EventHDF5{V1: ev.V1, V2: ev.V2}
	}
	if err := writeFixedTable(g, roiEventsName, rows); err != nil {
		return err
	}

	ipp := make([]int32, roi.Len())
	for _, grp := range roi.groups {
		ipp[grp.Start] = int32(grp.Size)
	}
	return writeFixedTable(g, roiIonsPerPulseName, ipp)
}

func toInts(values []int32) []int {
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = int(v)
	}
	return out
}

// ReadPairs loads /Pairs/values and /Pairs/indices from a file made by Writer.
func ReadPairs(filename string) ([]Pair, []PairIndex, error) {
	f, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	defer f.Close()

	g, err := f.OpenGroup("Pairs")
	if err != nil {
		return nil, nil, &ErrOpenDataset{DatasetName: "Pairs", Err: err}
	}
	defer g.Close()

	values, err := readTable[PairHDF5](g, "values")
	if err != nil {
		return nil, nil, err
	}
	rows, err := readTable[PairIndexHDF5](g, "indices")
	if err != nil {
		return nil, nil, err
	}
	if len(values) != len(rows) {
		return nil, nil, fmt.Errorf("%s: %d pairs but %d index rows", filename, len(values), len(rows))
	}

	pairs := make([]Pair, len(values))
	for i, v := range values {
		pairs[i] = Pair{A: Event{V1: v.AV1, V2: v.AV2}, B: Event{V1: v.BV1, V2: v.BV2}}
	}
	indices := make([]PairIndex, len(rows))
	for i, r := range rows {
		indices[i] = PairIndex{A: int(r.IndexA), B: int(r.IndexB)}
	}
	return pairs, indices, nil
}

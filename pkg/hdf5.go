package multievent

import (
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
)

type EventHDF5 struct {
	V1 float64 `hdf5:"v1"`
	V2 float64 `hdf5:"v2"`
}

type RunInfoHDF5 struct {
	RunNumber    int32 `hdf5:"run_number"`
	Multiplicity int32 `hdf5:"multiplicity"`
	NEvents      int64 `hdf5:"n_events"`
	NGroups      int64 `hdf5:"n_groups"`
	NPairs       int64 `hdf5:"n_pairs"`
}

type PairHDF5 struct {
	AV1 float64 `hdf5:"a_v1"`
	AV2 float64 `hdf5:"a_v2"`
	BV1 float64 `hdf5:"b_v1"`
	BV2 float64 `hdf5:"b_v2"`
}

type PairIndexHDF5 struct {
	IndexA int64 `hdf5:"index_a"`
	IndexB int64 `hdf5:"index_b"`
}

type ExtentHDF5 struct {
	Field [STRLEN]byte `hdf5:"field"`
	Min   float64      `hdf5:"min"`
	Max   float64      `hdf5:"max"`
}

type MultiplicityHDF5 struct {
	Multiplicity int32 `hdf5:"multiplicity"`
	Groups       int64 `hdf5:"groups"`
	Pairs        int64 `hdf5:"pairs"`
}

const STRLEN = 20

// H5S_UNLIMITED is -1L
const unlimitedDims = ^uint(0)

const tableChunk = 32768

func convertToHdf5String(s string) [STRLEN]byte {
	var byteArray [STRLEN]byte
	copy(byteArray[:], s)
	return byteArray
}

func createFile(fname string) (*hdf5.File, error) {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	return f, nil
}

func createGroup(file *hdf5.File, groupName string) (*hdf5.Group, error) {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		return nil, &ErrCreateGroup{GroupName: groupName, Err: err}
	}
	return g, nil
}

// createTable makes an extendible 1D dataset of compound rows shaped like
// datatype, chunked and deflated at compressionLevel.
func createTable(group *hdf5.Group, name string, datatype any, compressionLevel int) (*hdf5.Dataset, error) {
	dims := []uint{0}
	maxDims := []uint{unlimitedDims}
	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer fileSpace.Close()

	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer plist.Close()

	if err := plist.SetChunk([]uint{tableChunk}); err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	if compressionLevel > 0 {
		if err := plist.SetDeflate(compressionLevel); err != nil {
			return nil, &ErrCreateTable{TableName: name, Err: err}
		}
	}

	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	dset, err := group.CreateDatasetWith(name, dtype, fileSpace, plist)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

// create2dArray makes a fixed size rows x cols float64 dataset.
func create2dArray(group *hdf5.Group, name string, rows, cols int, compressionLevel int) (*hdf5.Dataset, error) {
	dims := []uint{uint(rows), uint(cols)}
	space, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer space.Close()

	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer plist.Close()

	if compressionLevel > 0 && rows > 0 && cols > 0 {
		if err := plist.SetChunk(dims); err != nil {
			return nil, &ErrCreateTable{TableName: name, Err: err}
		}
		if err := plist.SetDeflate(compressionLevel); err != nil {
			return nil, &ErrCreateTable{TableName: name, Err: err}
		}
	}

	dset, err := group.CreateDatasetWith(name, hdf5.T_NATIVE_DOUBLE, space, plist)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

func tableLength(dataset *hdf5.Dataset) (uint, error) {
	space := dataset.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return 0, err
	}
	if len(dims) == 0 {
		return 0, nil
	}
	return dims[0], nil
}

func writeEntryToTable[T any](dataset *hdf5.Dataset, data T) error {
	array := []T{data}
	return writeArrayToTable(dataset, &array)
}

// writeArrayToTable appends data at the end of an extendible table.
func writeArrayToTable[T any](dataset *hdf5.Dataset, data *[]T) error {
	length := uint(len(*data))
	if length == 0 {
		return nil
	}
	dims := []uint{length}
	dataspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return err
	}
	defer dataspace.Close()

	rowsInFile, err := tableLength(dataset)
	if err != nil {
		return err
	}
	newsize := []uint{rowsInFile + length}
	if err := dataset.Resize(newsize); err != nil {
		return err
	}
	filespace := dataset.Space()
	defer filespace.Close()

	start := []uint{rowsInFile}
	count := []uint{length}
	if err := filespace.SelectHyperslab(start, nil, count, nil); err != nil {
		return err
	}
	return dataset.WriteSubset(data, dataspace, filespace)
}

// readTable reads a whole 1D dataset of the given name below group.
func readTable[T any](group *hdf5.Group, name string) ([]T, error) {
	dset, err := group.OpenDataset(name)
	if err != nil {
		return nil, &ErrOpenDataset{DatasetName: name, Err: err}
	}
	defer dset.Close()

	length, err := tableLength(dset)
	if err != nil {
		return nil, fmt.Errorf("error reading shape of %q: %w", name, err)
	}
	data := make([]T, length)
	if length == 0 {
		return data, nil
	}
	if err := dset.Read(&data); err != nil {
		return nil, fmt.Errorf("error reading %q: %w", name, err)
	}
	return data, nil
}

// writeFixedTable writes data as a new, non-extendible 1D dataset.
func writeFixedTable[T any](group *hdf5.Group, name string, data []T) error {
	var zero T
	dtype, err := hdf5.NewDatatypeFromValue(zero)
	if err != nil {
		return &ErrCreateTable{TableName: name, Err: err}
	}
	space, err := hdf5.CreateSimpleDataspace([]uint{uint(len(data))}, nil)
	if err != nil {
		return &ErrCreateTable{TableName: name, Err: err}
	}
	defer space.Close()

	dset, err := group.CreateDataset(name, dtype, space)
	if err != nil {
		return &ErrCreateTable{TableName: name, Err: err}
	}
	defer dset.Close()
	if len(data) == 0 {
		return nil
	}
	return dset.Write(&data)
}

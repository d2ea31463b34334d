package multievent

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a value is out of its allowed domain:
	// a multiplicity below 2, an inverted or malformed extent, a broken ROI partition.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrWrongType is returned when a dynamically typed value has the wrong kind,
	// e.g. a string where an integer multiplicity is required.
	ErrWrongType = errors.New("wrong type")
)

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func wrongType(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrWrongType, fmt.Sprintf(format, args...))
}

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error { return e.Err }

// ErrOpenDataset represents an error when opening a dataset inside a file.
type ErrOpenDataset struct {
	DatasetName string
	Err         error
}

func (e *ErrOpenDataset) Error() string {
	return fmt.Sprintf("error opening dataset %q: %v", e.DatasetName, e.Err)
}

func (e *ErrOpenDataset) Unwrap() error { return e.Err }

// ErrCreateGroup represents an error when creating a group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

func (e *ErrCreateGroup) Unwrap() error { return e.Err }

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}

func (e *ErrCreateTable) Unwrap() error { return e.Err }

package multievent

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputFormat selects how pairs are written.
type OutputFormat int

const (
	FormatHDF5 OutputFormat = iota
	FormatCSV
	FormatCSVZstd
)

var outputFormatStrings = []string{
	"hdf5",
	"csv",
	"csv.zst",
}

var outputFormatExtensions = []string{
	".h5",
	".csv",
	".csv.zst",
}

func ParseOutputFormat(s string) (OutputFormat, error) {
	for i, v := range outputFormatStrings {
		if strings.EqualFold(v, s) {
			return OutputFormat(i), nil
		}
	}
	return 0, invalidArgument("invalid output format: %s", s)
}

func (f OutputFormat) String() string {
	if f < FormatHDF5 || f > FormatCSVZstd {
		return "UNKNOWN"
	}
	return outputFormatStrings[f]
}

// Extension is the file suffix used for outputs of this format.
func (f OutputFormat) Extension() string {
	if f < FormatHDF5 || f > FormatCSVZstd {
		return ""
	}
	return outputFormatExtensions[f]
}

func (f OutputFormat) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func (f *OutputFormat) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: output format must be a string", ErrWrongType)
	}
	parsed, err := ParseOutputFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f OutputFormat) MarshalYAML() (any, error) {
	return f.String(), nil
}

func (f *OutputFormat) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("%w: output format must be a string", ErrWrongType)
	}
	parsed, err := ParseOutputFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

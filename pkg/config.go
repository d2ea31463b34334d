package multievent

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Configuration struct {
	FilesIn          []string     `json:"files_in" yaml:"files_in"`
	DirOut           string       `json:"dir_out" yaml:"dir_out"`
	Format           OutputFormat `json:"format" yaml:"format"`
	Multiplicity     Multiplicity `json:"multiplicity" yaml:"multiplicity"`
	Extent           [][]float64  `json:"extent" yaml:"extent"`
	ExtentPreset     string       `json:"extent_preset" yaml:"extent_preset"`
	RunNumber        int          `json:"run_number" yaml:"run_number"`
	Verbosity        int          `json:"verbosity" yaml:"verbosity"`
	NumWorkers       int          `json:"num_workers" yaml:"num_workers"`
	CompressionLevel int          `json:"compression_level" yaml:"compression_level"`
	Histogram        bool         `json:"histogram" yaml:"histogram"`
	HistogramRange   []float64    `json:"histogram_range" yaml:"histogram_range"`
	BinWidth         float64      `json:"bin_width" yaml:"bin_width"`
	Symmetric        bool         `json:"symmetric" yaml:"symmetric"`
	NoDB             bool         `json:"no_db" yaml:"no_db"`
	DBDriver         string       `json:"db_driver" yaml:"db_driver"`
	Host             string       `json:"host" yaml:"host"`
	User             string       `json:"user" yaml:"user"`
	Passwd           string       `json:"pass" yaml:"pass"`
	DBName           string       `json:"dbname" yaml:"dbname"`
}

func DefaultConfiguration() Configuration {
	return Configuration{
		DirOut:           ".",
		Format:           FormatHDF5,
		Multiplicity:     AllMultiples,
		Verbosity:        0,
		NumWorkers:       1,
		CompressionLevel: 4,
		BinWidth:         0.1,
		NoDB:             true,
		DBDriver:         "mysql",
		Host:             "localhost",
		User:             "reader",
		Passwd:           "",
		DBName:           "APT",
	}
}

var configuration = DefaultConfiguration()

func GetConfiguration() Configuration {
	return configuration
}

// SetConfiguration installs the package-wide configuration. Call it once at
// startup, before any worker runs.
func SetConfiguration(config Configuration) {
	configuration = config
}

// LoadConfiguration reads a JSON or YAML file on top of the defaults. The
// format is chosen by extension; anything but .yaml/.yml is read as JSON.
func LoadConfiguration(filename string) (Configuration, error) {
	config := DefaultConfiguration()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return config, fmt.Errorf("error decoding %s: %w", filename, err)
	}
	return config, nil
}

func (c Configuration) Validate() error {
	if len(c.FilesIn) == 0 {
		return invalidArgument("no input files")
	}
	if !c.Multiplicity.IsValid() {
		return invalidArgument("multiplicity is not set")
	}
	if c.NumWorkers < 1 {
		return invalidArgument("num_workers must be >= 1, got %d", c.NumWorkers)
	}
	if c.CompressionLevel < 0 || c.CompressionLevel > 9 {
		return invalidArgument("compression_level must be in [0, 9], got %d", c.CompressionLevel)
	}
	if c.Extent != nil && c.ExtentPreset != "" {
		return invalidArgument("extent and extent_preset are mutually exclusive")
	}
	if c.ExtentPreset != "" && c.NoDB {
		return invalidArgument("extent_preset %q needs a database", c.ExtentPreset)
	}
	if c.Extent != nil {
		if _, err := ExtentFromBounds(c.Extent); err != nil {
			return err
		}
	}
	if c.Histogram {
		if c.Format != FormatHDF5 {
			return invalidArgument("histogram is only written to %s outputs", FormatHDF5)
		}
		if !(c.BinWidth > 0) {
			return invalidArgument("bin_width must be positive, got %v", c.BinWidth)
		}
		if c.HistogramRange == nil && c.Extent == nil && c.ExtentPreset == "" {
			return invalidArgument("histogram needs histogram_range or an extent")
		}
		if c.HistogramRange != nil {
			iv, err := c.histogramRange()
			if err != nil {
				return err
			}
			if _, err := (HistogramOptions{Range: iv, BinWidth: c.BinWidth}).Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// ConfiguredExtent returns the inline extent, or nil when none is set.
func (c Configuration) ConfiguredExtent() (*Extent, error) {
	if c.Extent == nil {
		return nil, nil
	}
	return ExtentFromBounds(c.Extent)
}

func (c Configuration) histogramRange() (Interval, error) {
	if len(c.HistogramRange) != 2 {
		return Interval{}, invalidArgument("histogram_range needs 2 bounds, got %d", len(c.HistogramRange))
	}
	iv, err := NewInterval(c.HistogramRange[0], c.HistogramRange[1])
	if err != nil {
		return Interval{}, fmt.Errorf("histogram_range: %w", err)
	}
	return iv, nil
}

// HistogramOptions resolves the histogram range: histogram_range when set,
// otherwise the first interval of the extent in use.
func (c Configuration) HistogramOptions(extent *Extent) (HistogramOptions, error) {
	opts := HistogramOptions{
		BinWidth:  c.BinWidth,
		Symmetric: c.Symmetric,
	}
	switch {
	case c.HistogramRange != nil:
		iv, err := c.histogramRange()
		if err != nil {
			return opts, err
		}
		opts.Range = iv
	case extent != nil:
		opts.Range = extent.First
	default:
		return opts, invalidArgument("histogram needs histogram_range or an extent")
	}
	return opts, nil
}

// OutputPath derives the output file for an input: same base name in DirOut
// with the extension of the configured format.
func (c Configuration) OutputPath(input string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(c.DirOut, base+".pairs"+c.Format.Extension())
}

func PrintConfiguration(config Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("Files in: %s", strings.Join(config.FilesIn, ", ")), "config")
	logger.Info(fmt.Sprintf("Dir out: %s", config.DirOut), "config")
	logger.Info(fmt.Sprintf("Format: %s", config.Format), "config")
	logger.Info(fmt.Sprintf("Multiplicity: %s", config.Multiplicity), "config")
	logger.Info(fmt.Sprintf("Extent: %v", config.Extent), "config")
	logger.Info(fmt.Sprintf("Extent preset: %s", config.ExtentPreset), "config")
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("Histogram: %t", config.Histogram), "config")
	logger.Info(fmt.Sprintf("Histogram range: %v", config.HistogramRange), "config")
	logger.Info(fmt.Sprintf("Bin width: %g", config.BinWidth), "config")
	logger.Info(fmt.Sprintf("Symmetric: %t", config.Symmetric), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("DB driver: %s", config.DBDriver), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
}

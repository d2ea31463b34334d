package multievent

import (
	"context"
	"errors"
	"fmt"

	sqlx "github.com/jmoiron/sqlx"
)

// Pipeline turns ROI files into pair files using one configuration.
type Pipeline struct {
	Config Configuration
	Extent *Extent
}

// NewPipeline resolves the extent once for every input: inline from the
// configuration, or the named preset read from db. db may be nil when no
// preset is configured.
func NewPipeline(config Configuration, db *sqlx.DB) (*Pipeline, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	p := &Pipeline{Config: config}

	var err error
	switch {
	case config.ExtentPreset != "":
		if db == nil {
			return nil, invalidArgument("extent preset %q needs a database connection", config.ExtentPreset)
		}
		p.Extent, err = LoadExtentPreset(db, config.ExtentPreset, config.RunNumber)
	default:
		p.Extent, err = config.ConfiguredExtent()
	}
	if err != nil {
		return nil, err
	}
	if config.Histogram {
		opts, err := config.HistogramOptions(p.Extent)
		if err != nil {
			return nil, err
		}
		if _, err := opts.Validate(); err != nil {
			return nil, fmt.Errorf("histogram: %w", err)
		}
	}
	return p, nil
}

// Extract reads input and computes its pairs.
func (p *Pipeline) Extract(input string) (*PairExtractor, error) {
	roi, err := ReadROI(input)
	if err != nil {
		return nil, err
	}
	return NewPairExtractor(roi, p.Config.Multiplicity, WithOptionalExtent(p.Extent))
}

// Write stores the pairs of ex in output, in the configured format.
func (p *Pipeline) Write(ex *PairExtractor, output string) (err error) {
	switch p.Config.Format {
	case FormatCSV:
		return WriteCSVFile(output, ex, false, 0)
	case FormatCSVZstd:
		return WriteCSVFile(output, ex, true, p.Config.CompressionLevel)
	case FormatHDF5:
	default:
		return invalidArgument("unknown output format %d", p.Config.Format)
	}

	writer, err := NewWriter(output, p.Config.CompressionLevel)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := writer.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	if err := writer.WritePairs(ex, p.Config.RunNumber); err != nil {
		return err
	}
	if !p.Config.Histogram {
		return nil
	}
	opts, err := p.Config.HistogramOptions(p.Extent)
	if err != nil {
		return err
	}
	h, err := NewCorrelationHistogram(ex, opts)
	if err != nil {
		return err
	}
	if configuration.Verbosity > 1 {
		message := fmt.Sprintf("Histogram %dx%d, %g entries, %d outside", h.NBins(), h.NBins(), h.Total(), h.Outside)
		logger.Info(message, "pipeline")
	}
	return writer.WriteHistogram(h)
}

// Process is a ProcessFunc: extract, write, summarize.
func (p *Pipeline) Process(ctx context.Context, input string) (Summary, error) {
	ex, err := p.Extract(input)
	if err != nil {
		return Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	output := p.Config.OutputPath(input)
	if err := p.Write(ex, output); err != nil {
		return Summary{}, err
	}
	return Summarize(input, output, ex), nil
}

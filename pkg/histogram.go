package multievent

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// HistogramOptions configures a correlation histogram.
type HistogramOptions struct {
	// Range applies to both axes. Events outside it are counted in Outside.
	Range    Interval
	BinWidth float64
	// Symmetric fills both (a, b) and (b, a). Otherwise the smaller value goes
	// on the x axis.
	Symmetric bool
}

// CorrelationHistogram is a 2D histogram of the V1 fields of the two events
// in each pair. Counts are indexed [x][y].
type CorrelationHistogram struct {
	Counts  *mat.Dense
	Edges   []float64
	Outside int
	opts    HistogramOptions
}

const maxHistogramBins = 1 << 14

// Validate checks the range and bin width and returns the number of bins per
// axis.
func (opts HistogramOptions) Validate() (int, error) {
	if err := opts.Range.validate(); err != nil {
		return 0, err
	}
	if opts.Range.Min == opts.Range.Max {
		return 0, invalidArgument("histogram range %s is empty", opts.Range)
	}
	if !(opts.BinWidth > 0) || math.IsInf(opts.BinWidth, 0) {
		return 0, invalidArgument("histogram bin width must be positive, got %v", opts.BinWidth)
	}
	// checked as a float: the ratio may not fit in an int
	ratio := math.Ceil((opts.Range.Max - opts.Range.Min) / opts.BinWidth)
	if math.IsInf(ratio, 0) || math.IsNaN(ratio) || ratio > maxHistogramBins {
		return 0, invalidArgument("histogram would need %g bins per axis, at most %d allowed", ratio, maxHistogramBins)
	}
	return int(ratio), nil
}

// NewCorrelationHistogram bins the pairs of p.
func NewCorrelationHistogram(p *PairExtractor, opts HistogramOptions) (*CorrelationHistogram, error) {
	nBins, err := opts.Validate()
	if err != nil {
		return nil, err
	}

	edges := make([]float64, nBins+1)
	for i := range edges {
		edges[i] = opts.Range.Min + float64(i)*opts.BinWidth
	}
	h := &CorrelationHistogram{
		Counts: mat.NewDense(nBins, nBins, nil),
		Edges:  edges,
		opts:   opts,
	}
	for _, pair := range p.pairs {
		x, y := pair.A.V1, pair.B.V1
		if opts.Symmetric {
			h.fill(x, y)
			h.fill(y, x)
			continue
		}
		if x > y {
			x, y = y, x
		}
		h.fill(x, y)
	}
	return h, nil
}

func (h *CorrelationHistogram) NBins() int {
	return len(h.Edges) - 1
}

func (h *CorrelationHistogram) bin(v float64) (int, bool) {
	if !h.opts.Range.Contains(v) {
		return 0, false
	}
	i := int((v - h.opts.Range.Min) / h.opts.BinWidth)
	// the upper edge belongs to the last bin
	if i >= h.NBins() {
		i = h.NBins() - 1
	}
	return i, true
}

func (h *CorrelationHistogram) fill(x, y float64) {
	i, okx := h.bin(x)
	j, oky := h.bin(y)
	if !okx || !oky {
		h.Outside++
		return
	}
	h.Counts.Set(i, j, h.Counts.At(i, j)+1)
}

// Total is the number of entries that landed inside the range.
func (h *CorrelationHistogram) Total() float64 {
	return mat.Sum(h.Counts)
}

// Data returns the counts in row-major order.
func (h *CorrelationHistogram) Data() []float64 {
	n := h.NBins()
	data := make([]float64, 0, n*n)
	for i := 0; i < n; i++ {
		data = append(data, h.Counts.RawRowView(i)...)
	}
	return data
}

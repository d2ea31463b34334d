package multievent

import (
	"maps"
	"slices"
)

// Pair holds two events of the same multiplicity group, in sequence order.
type Pair struct {
	A Event
	B Event
}

// PairIndex holds the ROI positions of a Pair. A is always lower than B.
type PairIndex struct {
	A int
	B int
}

type extractorOptions struct {
	extent *Extent
}

// ExtractorOption configures NewPairExtractor.
type ExtractorOption func(*extractorOptions)

// WithExtent restricts pairing to events inside e. The extent is checked when
// the extractor is built.
func WithExtent(e Extent) ExtractorOption {
	return func(o *extractorOptions) {
		o.extent = &e
	}
}

// WithOptionalExtent is WithExtent for an extent that may be absent.
func WithOptionalExtent(e *Extent) ExtractorOption {
	return func(o *extractorOptions) {
		if e == nil {
			o.extent = nil
			return
		}
		cp := *e
		o.extent = &cp
	}
}

// PairExtractor enumerates every unordered pair of events inside the
// multiplicity groups of an ROI. Pairs are computed once in NewPairExtractor;
// the extractor is read only afterwards and safe for concurrent readers as
// long as the ROI is not modified.
type PairExtractor struct {
	roi           *ROI
	multiplicity  Multiplicity
	extent        *Extent
	pairs         []Pair
	indices       []PairIndex
	nGroups       int
	nContributing int
	nAccepted     int
	pairsBySize   map[int]int
}

// NewPairExtractor validates its arguments and computes the pairs. Every
// failure happens here; accessors cannot fail.
func NewPairExtractor(roi *ROI, multiplicity Multiplicity, opts ...ExtractorOption) (*PairExtractor, error) {
	if roi == nil {
		return nil, invalidArgument("roi is nil")
	}
	if !multiplicity.IsValid() {
		return nil, invalidArgument("multiplicity is not set")
	}
	o := extractorOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.extent != nil {
		if err := o.extent.Validate(); err != nil {
			return nil, err
		}
	}

	p := &PairExtractor{
		roi:          roi,
		multiplicity: multiplicity,
		extent:       o.extent,
	}
	p.extract()
	return p, nil
}

func (p *PairExtractor) extract() {
	accepted := p.roi.Accepted(p.extent)
	p.nAccepted = int(accepted.GetCardinality())
	p.pairsBySize = make(map[int]int)

	total := 0
	for _, g := range p.roi.groups {
		if p.multiplicity.Matches(g.Size) {
			total += g.Size * (g.Size - 1) / 2
		}
	}
	// upper bound; the extent can only remove pairs
	p.pairs = make([]Pair, 0, total)
	p.indices = make([]PairIndex, 0, total)

	kept := make([]int, 0)
	for _, g := range p.roi.groups {
		if !p.multiplicity.Matches(g.Size) {
			continue
		}
		p.nGroups++

		kept = kept[:0]
		for i := g.Start; i < g.End(); i++ {
			if accepted.Contains(uint32(i)) {
				kept = append(kept, i)
			}
		}
		if len(kept) < 2 {
			continue
		}
		p.nContributing++
		p.pairsBySize[g.Size] += len(kept) * (len(kept) - 1) / 2

		for a := 0; a < len(kept)-1; a++ {
			for b := a + 1; b < len(kept); b++ {
				ia, ib := kept[a], kept[b]
				p.pairs = append(p.pairs, Pair{A: p.roi.events[ia], B: p.roi.events[ib]})
				p.indices = append(p.indices, PairIndex{A: ia, B: ib})
			}
		}
	}
}

func (p *PairExtractor) ROI() *ROI {
	return p.roi
}

func (p *PairExtractor) Multiplicity() Multiplicity {
	return p.multiplicity
}

// Extent returns a copy of the filter, or nil when every event is accepted.
func (p *PairExtractor) Extent() *Extent {
	if p.extent == nil {
		return nil
	}
	cp := *p.extent
	return &cp
}

// NPairs is the number of pairs after the extent filter.
func (p *PairExtractor) NPairs() int {
	return len(p.pairs)
}

// NGroups is the number of groups selected by the multiplicity.
func (p *PairExtractor) NGroups() int {
	return p.nGroups
}

// NContributing is the number of selected groups that produced at least one
// pair after filtering.
func (p *PairExtractor) NContributing() int {
	return p.nContributing
}

// NAccepted is the number of ROI events inside the extent, over all groups.
func (p *PairExtractor) NAccepted() int {
	return p.nAccepted
}

// PairsBySize maps a group size to the number of pairs its groups produced.
func (p *PairExtractor) PairsBySize() map[int]int {
	return maps.Clone(p.pairsBySize)
}

// Pairs returns the pairs in ROI order, and within a group in index order.
func (p *PairExtractor) Pairs() []Pair {
	return slices.Clone(p.pairs)
}

// PairIndices returns the ROI indices of each entry of Pairs.
func (p *PairExtractor) PairIndices() []PairIndex {
	return slices.Clone(p.indices)
}

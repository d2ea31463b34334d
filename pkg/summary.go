package multievent

import (
	"fmt"
	"maps"
	"slices"
)

// Summary collects the counts reported for one processed input.
type Summary struct {
	Input         string
	Output        string
	Multiplicity  Multiplicity
	Extent        *Extent
	NEvents       int
	NAccepted     int
	NSelected     int
	NContributing int
	NPairs        int
	GroupsBySize  map[int]int
	PairsBySize   map[int]int
}

func Summarize(input, output string, p *PairExtractor) Summary {
	return Summary{
		Input:         input,
		Output:        output,
		Multiplicity:  p.Multiplicity(),
		Extent:        p.Extent(),
		NEvents:       p.ROI().Len(),
		NAccepted:     p.NAccepted(),
		NSelected:     p.NGroups(),
		NContributing: p.NContributing(),
		NPairs:        p.NPairs(),
		GroupsBySize:  p.ROI().Counts(),
		PairsBySize:   p.PairsBySize(),
	}
}

// Sizes returns the group sizes present in the ROI, ascending.
func (s Summary) Sizes() []int {
	return slices.Sorted(maps.Keys(s.GroupsBySize))
}

func (s Summary) Lines() []string {
	lines := []string{
		fmt.Sprintf("%s -> %s", s.Input, s.Output),
		fmt.Sprintf("Multiplicity: %s, extent: %s", s.Multiplicity, s.Extent),
		fmt.Sprintf("Events: %d, accepted: %d", s.NEvents, s.NAccepted),
		fmt.Sprintf("Groups selected: %d, contributing: %d", s.NSelected, s.NContributing),
	}
	for _, size := range s.Sizes() {
		lines = append(lines, fmt.Sprintf("  size %d: %d groups, %d pairs", size, s.GroupsBySize[size], s.PairsBySize[size]))
	}
	lines = append(lines, fmt.Sprintf("Pairs: %d", s.NPairs))
	return lines
}

func LogSummary(s Summary) {
	for _, line := range s.Lines() {
		logger.Info(line, "summary")
	}
}

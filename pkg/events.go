package multievent

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// Event is one detected hit: two correlated measurements (for instance
// mass-to-charge and time of flight) recorded at a fixed position of the run.
type Event struct {
	V1 float64
	V2 float64
}

// Group is a contiguous run of Size events starting at Start that were
// detected together.
type Group struct {
	Start int
	Size  int
}

// End returns the index one past the last event of the group.
func (g Group) End() int {
	return g.Start + g.Size
}

// ROI is a region of interest: an ordered event sequence partitioned into
// multiplicity groups. It is read only once built.
type ROI struct {
	events []Event
	groups []Group
}

// NewROI copies events and groups and checks that the groups tile the event
// sequence in order, with no gaps, overlaps or empty groups.
func NewROI(events []Event, groups []Group) (*ROI, error) {
	next := 0
	for i, g := range groups {
		if g.Size < 1 {
			return nil, invalidArgument("group %d has size %d", i, g.Size)
		}
		if g.Start != next {
			return nil, invalidArgument("group %d starts at %d, expected %d", i, g.Start, next)
		}
		next = g.End()
		if next > len(events) {
			return nil, invalidArgument("group %d ends at %d past the last event (%d)", i, next, len(events))
		}
	}
	if next != len(events) {
		return nil, invalidArgument("groups cover %d of %d events", next, len(events))
	}
	return &ROI{
		events: slices.Clone(events),
		groups: slices.Clone(groups),
	}, nil
}

// NewROIFromIonsPerPulse builds the partition from an ions-per-pulse column:
// a value n > 0 opens a group of n events and must be followed by n-1 zeros.
func NewROIFromIonsPerPulse(events []Event, ipp []int) (*ROI, error) {
	if len(ipp) != len(events) {
		return nil, invalidArgument("ions per pulse has %d entries for %d events", len(ipp), len(events))
	}
	groups := make([]Group, 0)
	for i := 0; i < len(ipp); {
		n := ipp[i]
		if n < 1 {
			return nil, invalidArgument("event %d does not start a pulse (ipp=%d)", i, n)
		}
		if i+n > len(ipp) {
			return nil, invalidArgument("pulse at event %d of size %d is truncated", i, n)
		}
		for j := i + 1; j < i+n; j++ {
			if ipp[j] != 0 {
				return nil, invalidArgument("event %d inside pulse at %d has ipp=%d", j, i, ipp[j])
			}
		}
		groups = append(groups, Group{Start: i, Size: n})
		i += n
	}
	return NewROI(events, groups)
}

// NewROIFromMultiplicities builds the partition from a per-event multiplicity
// column where every member of a group carries the group size.
func NewROIFromMultiplicities(events []Event, multiplicity []int) (*ROI, error) {
	if len(multiplicity) != len(events) {
		return nil, invalidArgument("multiplicity has %d entries for %d events", len(multiplicity), len(events))
	}
	groups := make([]Group, 0)
	for i := 0; i < len(multiplicity); {
		n := multiplicity[i]
		if n < 1 {
			return nil, invalidArgument("event %d has multiplicity %d", i, n)
		}
		if i+n > len(multiplicity) {
			return nil, invalidArgument("group at event %d of size %d is truncated", i, n)
		}
		for j := i + 1; j < i+n; j++ {
			if multiplicity[j] != n {
				return nil, invalidArgument("event %d in group at %d has multiplicity %d, expected %d", j, i, multiplicity[j], n)
			}
		}
		groups = append(groups, Group{Start: i, Size: n})
		i += n
	}
	return NewROI(events, groups)
}

func (r *ROI) Len() int {
	return len(r.events)
}

func (r *ROI) Event(i int) Event {
	return r.events[i]
}

// Events returns a copy of the event sequence.
func (r *ROI) Events() []Event {
	return slices.Clone(r.events)
}

// Groups returns a copy of the group partition.
func (r *ROI) Groups() []Group {
	return slices.Clone(r.groups)
}

// Counts returns the number of groups of each size.
func (r *ROI) Counts() map[int]int {
	counts := make(map[int]int)
	for _, g := range r.groups {
		counts[g.Size]++
	}
	return counts
}

// Accepted returns the indices of the events that pass the extent. A nil
// extent accepts every event.
func (r *ROI) Accepted(extent *Extent) *roaring.Bitmap {
	accepted := roaring.New()
	if extent == nil {
		accepted.AddRange(0, uint64(len(r.events)))
		return accepted
	}
	for i, ev := range r.events {
		if extent.Contains(ev) {
			accepted.Add(uint32(i))
		}
	}
	return accepted
}

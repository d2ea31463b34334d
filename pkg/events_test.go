package multievent

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequentialEvents returns n events with V1 = i and V2 = 10*i.
func sequentialEvents(n int) []Event {
	events := make([]Event, n)
	for i := range events {
		events[i] = Event{V1: float64(i), V2: float64(10 * i)}
	}
	return events
}

func TestNewROI(t *testing.T) {
	events := sequentialEvents(6)
	groups := []Group{{Start: 0, Size: 1}, {Start: 1, Size: 2}, {Start: 3, Size: 3}}

	roi, err := NewROI(events, groups)
	require.NoError(t, err)
	assert.Equal(t, 6, roi.Len())
	assert.Equal(t, events[4], roi.Event(4))
	assert.Empty(t, cmp.Diff(groups, roi.Groups()))
	assert.Equal(t, map[int]int{1: 1, 2: 1, 3: 1}, roi.Counts())

	// the ROI owns its copy
	events[0].V1 = 99
	groups[0].Size = 5
	assert.Equal(t, 0.0, roi.Event(0).V1)
	assert.Equal(t, 1, roi.Groups()[0].Size)
}

func TestNewROI_Empty(t *testing.T) {
	roi, err := NewROI(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, roi.Len())
	assert.Empty(t, roi.Counts())
}

func TestNewROI_InvalidPartition(t *testing.T) {
	events := sequentialEvents(4)
	tests := []struct {
		name   string
		groups []Group
	}{
		{name: "empty group", groups: []Group{{0, 2}, {2, 0}, {2, 2}}},
		{name: "gap", groups: []Group{{0, 1}, {2, 2}}},
		{name: "overlap", groups: []Group{{0, 3}, {2, 2}}},
		{name: "past the end", groups: []Group{{0, 2}, {2, 3}}},
		{name: "uncovered tail", groups: []Group{{0, 2}, {2, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewROI(events, tt.groups)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestNewROIFromIonsPerPulse(t *testing.T) {
	roi, err := NewROIFromIonsPerPulse(sequentialEvents(6), []int{1, 2, 0, 3, 0, 0})
	require.NoError(t, err)
	want := []Group{{0, 1}, {1, 2}, {3, 3}}
	assert.Empty(t, cmp.Diff(want, roi.Groups()))

	bad := map[string][]int{
		"length mismatch":  {1, 1, 1},
		"starts with zero": {0, 2, 0, 1, 1, 1},
		"truncated pulse":  {1, 1, 1, 1, 1, 2},
		"nonzero inside":   {1, 3, 1, 0, 1, 1},
		"negative pulse":   {1, -1, 1, 1, 1, 1},
	}
	for name, ipp := range bad {
		_, err := NewROIFromIonsPerPulse(sequentialEvents(6), ipp)
		assert.ErrorIs(t, err, ErrInvalidArgument, name)
	}
}

func TestNewROIFromMultiplicities(t *testing.T) {
	roi, err := NewROIFromMultiplicities(sequentialEvents(6), []int{2, 2, 1, 3, 3, 3})
	require.NoError(t, err)
	want := []Group{{0, 2}, {2, 1}, {3, 3}}
	assert.Empty(t, cmp.Diff(want, roi.Groups()))

	bad := map[string][]int{
		"length mismatch": {2, 2},
		"inconsistent":    {2, 3, 1, 3, 3, 3},
		"truncated":       {2, 2, 1, 1, 3, 3},
		"zero":            {0, 1, 1, 1, 1, 1},
	}
	for name, mult := range bad {
		_, err := NewROIFromMultiplicities(sequentialEvents(6), mult)
		assert.ErrorIs(t, err, ErrInvalidArgument, name)
	}
}

func TestROI_Accepted(t *testing.T) {
	roi, err := NewROIFromIonsPerPulse(sequentialEvents(5), []int{2, 0, 3, 0, 0})
	require.NoError(t, err)

	all := roi.Accepted(nil)
	assert.Equal(t, []uint32{0, 1, 2, 3, 4}, all.ToArray())

	extent, err := ExtentFromBounds([][]float64{{1, 3}, {0, 100}})
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, roi.Accepted(extent).ToArray())

	none, err := ExtentFromBounds([][]float64{{0, 10}, {500, 600}})
	require.NoError(t, err)
	assert.True(t, roi.Accepted(none).IsEmpty())
}

package multievent

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtentFromBounds(t *testing.T) {
	e, err := ExtentFromBounds([][]float64{{1, 2}, {-5, 5}})
	require.NoError(t, err)
	assert.Equal(t, Interval{Min: 1, Max: 2}, e.First)
	assert.Equal(t, Interval{Min: -5, Max: 5}, e.Second)
	assert.Equal(t, [][]float64{{1, 2}, {-5, 5}}, e.Bounds())
	assert.Equal(t, "[1, 2] x [-5, 5]", e.String())
}

func TestExtentFromBounds_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		bounds [][]float64
	}{
		{name: "no intervals", bounds: nil},
		{name: "one interval", bounds: [][]float64{{0, 1}}},
		{name: "three intervals", bounds: [][]float64{{0, 1}, {0, 1}, {0, 1}}},
		{name: "short interval", bounds: [][]float64{{0}, {0, 1}}},
		{name: "long interval", bounds: [][]float64{{0, 1}, {0, 1, 2}}},
		{name: "inverted first", bounds: [][]float64{{2, 1}, {0, 1}}},
		{name: "inverted second", bounds: [][]float64{{0, 1}, {1, 0}}},
		{name: "nan", bounds: [][]float64{{math.NaN(), 1}, {0, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtentFromBounds(tt.bounds)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestExtent_Contains(t *testing.T) {
	e, err := NewExtent(Interval{Min: 0, Max: 1}, Interval{Min: 10, Max: 20})
	require.NoError(t, err)

	// closed on both ends
	assert.True(t, e.Contains(Event{V1: 0, V2: 10}))
	assert.True(t, e.Contains(Event{V1: 1, V2: 20}))
	assert.True(t, e.Contains(Event{V1: 0.5, V2: 15}))
	assert.False(t, e.Contains(Event{V1: 1.01, V2: 15}))
	assert.False(t, e.Contains(Event{V1: 0.5, V2: 9.99}))

	var all *Extent
	assert.True(t, all.Contains(Event{V1: math.Inf(1), V2: -1}))
	assert.Equal(t, "all", all.String())
}

func TestNewInterval(t *testing.T) {
	iv, err := NewInterval(3, 3)
	require.NoError(t, err)
	assert.True(t, iv.Contains(3))

	_, err = NewInterval(4, 3)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewInterval(0, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

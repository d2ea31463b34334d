package multievent

import (
	"fmt"
	"math"
)

// Interval is a closed range [Min, Max].
type Interval struct {
	Min float64
	Max float64
}

func NewInterval(min, max float64) (Interval, error) {
	iv := Interval{Min: min, Max: max}
	if err := iv.validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

func (iv Interval) validate() error {
	if math.IsNaN(iv.Min) || math.IsNaN(iv.Max) {
		return invalidArgument("interval bounds must be numbers, got [%v, %v]", iv.Min, iv.Max)
	}
	if iv.Min > iv.Max {
		return invalidArgument("interval minimum %v is greater than maximum %v", iv.Min, iv.Max)
	}
	return nil
}

func (iv Interval) Contains(v float64) bool {
	return v >= iv.Min && v <= iv.Max
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%g, %g]", iv.Min, iv.Max)
}

// Extent is a box filter over the two fields of an Event: First applies to
// V1 and Second to V2.
type Extent struct {
	First  Interval
	Second Interval
}

func NewExtent(first, second Interval) (*Extent, error) {
	e := &Extent{First: first, Second: second}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// ExtentFromBounds converts the nested [[min1, max1], [min2, max2]] form used
// in configuration files.
func ExtentFromBounds(bounds [][]float64) (*Extent, error) {
	if len(bounds) != 2 {
		return nil, invalidArgument("extent needs exactly 2 intervals, got %d", len(bounds))
	}
	intervals := [2]Interval{}
	for i, b := range bounds {
		if len(b) != 2 {
			return nil, invalidArgument("extent interval %d needs exactly 2 bounds, got %d", i, len(b))
		}
		iv, err := NewInterval(b[0], b[1])
		if err != nil {
			return nil, fmt.Errorf("extent interval %d: %w", i, err)
		}
		intervals[i] = iv
	}
	return NewExtent(intervals[0], intervals[1])
}

func (e *Extent) Validate() error {
	if err := e.First.validate(); err != nil {
		return fmt.Errorf("first interval: %w", err)
	}
	if err := e.Second.validate(); err != nil {
		return fmt.Errorf("second interval: %w", err)
	}
	return nil
}

// Contains reports whether both fields of ev fall inside their interval.
// A nil extent contains every event.
func (e *Extent) Contains(ev Event) bool {
	if e == nil {
		return true
	}
	return e.First.Contains(ev.V1) && e.Second.Contains(ev.V2)
}

// Bounds returns the nested form accepted by ExtentFromBounds.
func (e *Extent) Bounds() [][]float64 {
	return [][]float64{
		{e.First.Min, e.First.Max},
		{e.Second.Min, e.Second.Max},
	}
}

func (e *Extent) String() string {
	if e == nil {
		return "all"
	}
	return fmt.Sprintf("%s x %s", e.First, e.Second)
}

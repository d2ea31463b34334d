package multievent

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
	"gopkg.in/yaml.v3"
)

// MultiplesName is the textual selector for every group with two or more hits.
const MultiplesName = "multiples"

// PairsPerMultiplicity returns the number of unordered pairs, C(n,2), that can
// be formed from a group of n hits.
func PairsPerMultiplicity(n int) (int, error) {
	if n < 2 {
		return 0, invalidArgument("multiplicity must be >= 2, got %d", n)
	}
	if n-1 > math.MaxInt/n {
		return 0, invalidArgument("multiplicity %d is too large, its pair count overflows", n)
	}
	return n * (n - 1) / 2, nil
}

// PairsPerMultiplicityOf is PairsPerMultiplicity for values whose type is only
// known at run time (decoded config values, CLI arguments already converted).
// Only integer kinds are accepted; the "multiples" selector is not a number.
func PairsPerMultiplicityOf(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return pairsOf(n)
	case int8:
		return pairsOf(n)
	case int16:
		return pairsOf(n)
	case int32:
		return pairsOf(n)
	case int64:
		return pairsOf(n)
	case uint:
		return pairsOf(n)
	case uint8:
		return pairsOf(n)
	case uint16:
		return pairsOf(n)
	case uint32:
		return pairsOf(n)
	case uint64:
		return pairsOf(n)
	default:
		return 0, wrongType("multiplicity must be an integer, got %T (%v)", v, v)
	}
}

func pairsOf[T constraints.Integer](n T) (int, error) {
	if n < 2 {
		return 0, invalidArgument("multiplicity must be >= 2, got %d", n)
	}
	if uint64(n) > math.MaxInt {
		return 0, invalidArgument("multiplicity %d is too large", n)
	}
	return PairsPerMultiplicity(int(n))
}

type multiplicityKind uint8

const (
	kindUnset multiplicityKind = iota
	kindExact
	kindMultiples
)

// Multiplicity selects which groups take part in pairing: groups of one exact
// size, or every group of size >= 2. The zero value selects nothing and is
// rejected by NewPairExtractor.
type Multiplicity struct {
	kind multiplicityKind
	n    int
}

// AllMultiples selects every group with at least two hits.
var AllMultiples = Multiplicity{kind: kindMultiples}

// Exact selects groups of exactly n hits.
func Exact(n int) (Multiplicity, error) {
	if n < 2 {
		return Multiplicity{}, invalidArgument("multiplicity must be >= 2, got %d", n)
	}
	return Multiplicity{kind: kindExact, n: n}, nil
}

// ParseMultiplicity accepts "multiples" or a decimal integer >= 2.
func ParseMultiplicity(s string) (Multiplicity, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, MultiplesName) {
		return AllMultiples, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Multiplicity{}, invalidArgument("multiplicity must be an integer or %q, got %q", MultiplesName, s)
	}
	return Exact(n)
}

func (m Multiplicity) IsValid() bool {
	return m.kind == kindMultiples || (m.kind == kindExact && m.n >= 2)
}

// IsMultiples reports whether m selects every group of size >= 2.
func (m Multiplicity) IsMultiples() bool {
	return m.kind == kindMultiples
}

// Value returns the exact group size, or 0 for the multiples selector.
func (m Multiplicity) Value() int {
	if m.kind != kindExact {
		return 0
	}
	return m.n
}

// Matches reports whether a group of the given size is selected.
func (m Multiplicity) Matches(size int) bool {
	switch m.kind {
	case kindExact:
		return size == m.n
	case kindMultiples:
		return size >= 2
	default:
		return false
	}
}

func (m Multiplicity) String() string {
	switch m.kind {
	case kindExact:
		return strconv.Itoa(m.n)
	case kindMultiples:
		return MultiplesName
	default:
		return "unset"
	}
}

func (m Multiplicity) MarshalJSON() ([]byte, error) {
	switch m.kind {
	case kindExact:
		return json.Marshal(m.n)
	case kindMultiples:
		return json.Marshal(MultiplesName)
	default:
		return []byte("null"), nil
	}
}

func (m *Multiplicity) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		parsed, err := ParseMultiplicity(v)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case float64:
		if v != float64(int(v)) {
			return wrongType("multiplicity must be an integer, got %v", v)
		}
		parsed, err := Exact(int(v))
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	default:
		return wrongType("multiplicity must be an integer or %q, got %T", MultiplesName, raw)
	}
}

func (m Multiplicity) MarshalYAML() (any, error) {
	switch m.kind {
	case kindExact:
		return m.n, nil
	case kindMultiples:
		return MultiplesName, nil
	default:
		return nil, nil
	}
}

func (m *Multiplicity) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return wrongType("multiplicity must be a scalar, got yaml node kind %d", value.Kind)
	}
	switch value.Tag {
	case "!!int":
		var n int
		if err := value.Decode(&n); err != nil {
			return err
		}
		parsed, err := Exact(n)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case "!!str":
		parsed, err := ParseMultiplicity(value.Value)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	default:
		return wrongType("multiplicity must be an integer or %q, got %s", MultiplesName, value.Tag)
	}
}

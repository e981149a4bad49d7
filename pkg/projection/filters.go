package projection

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FilterKey names one of the optional response fields.
type FilterKey string

const (
	Numbers         FilterKey = "numbers"
	Alphabets       FilterKey = "alphabets"
	HighestAlphabet FilterKey = "highest_alphabet"
)

// declared is the fixed render order. Bit positions in FilterSet follow it.
var declared = [...]FilterKey{Numbers, Alphabets, HighestAlphabet}

// FilterKeys returns every key in declaration order.
func FilterKeys() []FilterKey {
	out := make([]FilterKey, len(declared))
	copy(out, declared[:])
	return out
}

// ParseFilterKey accepts the wire names of the keys.
func ParseFilterKey(raw string) (FilterKey, error) {
	key := FilterKey(strings.TrimSpace(raw))
	if !key.Valid() {
		return "", fmt.Errorf("projection: unknown filter %q", raw)
	}
	return key, nil
}

// Valid reports whether k is one of the declared keys.
func (k FilterKey) Valid() bool {
	return k.bit() != 0
}

// Label is the display label: the first underscore becomes a space.
func (k FilterKey) Label() string {
	return strings.Replace(string(k), "_", " ", 1)
}

// Title is the caption used next to the toggle for k.
func (k FilterKey) Title() string {
	switch k {
	case Numbers:
		return "Show Numbers"
	case Alphabets:
		return "Show Alphabets"
	case HighestAlphabet:
		return "Show Highest Alphabet"
	}
	return string(k)
}

func (k FilterKey) bit() FilterSet {
	for idx, key := range declared {
		if key == k {
			return 1 << idx
		}
	}
	return 0
}

// FilterSet is a set of filter keys. It is a plain value: comparable with ==
// and safe to copy. Operations return a new set.
type FilterSet uint8

const allFilters FilterSet = 1<<len(declared) - 1

// DefaultFilters is the startup selection: every key.
func DefaultFilters() FilterSet {
	return allFilters
}

// NewFilterSet builds a set from keys; unknown keys are ignored.
func NewFilterSet(keys ...FilterKey) FilterSet {
	var set FilterSet
	for _, key := range keys {
		set |= key.bit()
	}
	return set
}

// ParseFilters builds a set from wire names, failing on the first unknown one.
func ParseFilters(names []string) (FilterSet, error) {
	var set FilterSet
	for _, name := range names {
		key, err := ParseFilterKey(name)
		if err != nil {
			return 0, err
		}
		set |= key.bit()
	}
	return set, nil
}

// Has reports membership.
func (s FilterSet) Has(k FilterKey) bool {
	bit := k.bit()
	return bit != 0 && s&bit != 0
}

// With returns s plus k.
func (s FilterSet) With(k FilterKey) FilterSet {
	return s | k.bit()
}

// Without returns s minus k.
func (s FilterSet) Without(k FilterKey) FilterSet {
	return s &^ k.bit()
}

// Toggle flips membership of k. Toggling the same key twice is a no-op.
func (s FilterSet) Toggle(k FilterKey) FilterSet {
	return s ^ k.bit()
}

// Keys lists members in declaration order, never in toggle order.
func (s FilterSet) Keys() []FilterKey {
	out := make([]FilterKey, 0, len(declared))
	for _, key := range declared {
		if s.Has(key) {
			out = append(out, key)
		}
	}
	return out
}

// Len reports the number of members.
func (s FilterSet) Len() int {
	return len(s.Keys())
}

// Strings lists members as wire names.
func (s FilterSet) Strings() []string {
	keys := s.Keys()
	out := make([]string, len(keys))
	for idx, key := range keys {
		out[idx] = string(key)
	}
	return out
}

func (s FilterSet) String() string {
	return "[" + strings.Join(s.Strings(), " ") + "]"
}

func (s FilterSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

func (s *FilterSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("projection: filters: %w", err)
	}
	set, err := ParseFilters(names)
	if err != nil {
		return err
	}
	*s = set
	return nil
}

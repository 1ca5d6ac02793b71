package configfed

import (
	"fmt"
	"sort"
	"strings"
)

// Coordinates identifies a deployment context as a finite set of name/value
// pairs (region, environment, phase, ...). Keys are unique; order is
// irrelevant. A nil Coordinates is equivalent to an empty one everywhere in
// this package.
type Coordinates map[string]string

// Len returns the number of entries, treating a nil map as empty.
func (c Coordinates) Len() int {
	return len(c)
}

// Equal reports whether c and other contain exactly the same entries.
func (c Coordinates) Equal(other Coordinates) bool {
	if len(c) != len(other) {
		return false
	}
	for k, v := range c {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// IsSubsetOf reports whether every entry in c also appears in other with the
// same value. An empty Coordinates is a subset of anything.
func (c Coordinates) IsSubsetOf(other Coordinates) bool {
	for k, v := range c {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Clone returns an independent copy, so a Provider or Arbiter can be handed a
// Coordinates value without risking the caller's map being mutated.
func (c Coordinates) Clone() Coordinates {
	if c == nil {
		return Coordinates{}
	}
	out := make(Coordinates, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// String renders Coordinates deterministically (keys sorted) for diagnostics
// and error messages. It is not a wire format.
func (c Coordinates) String() string {
	if len(c) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%s", k, c[k])
	}
	b.WriteByte('}')
	return b.String()
}

package configfed

// ConfigurationValue is an immutable record returned by a Provider for one
// lookup attempt. The resolver never mutates a ConfigurationValue it
// receives; ranking and classification operate on copies of its fields.
type ConfigurationValue struct {
	// Source identifies the producing Provider, for diagnostics. The
	// resolver neither sets it nor reads it: ranking and tie-breaking use
	// only specificity and Authoritative.
	Source Provider

	// Coordinates is the context this value applies to. A nil Coordinates
	// is treated as empty everywhere it is read.
	Coordinates Coordinates

	// Name is the property name this value answers. It MUST equal the
	// requested name; the resolver classifies a mismatch as malformed
	// rather than trusting the provider.
	Name string

	// Value is the raw string payload. A provider MAY report "presence with
	// no string" by convention, but the core treats a nil Value as "no
	// value" — see HasValue.
	Value *string

	// Authoritative, when true, means the provider claims the last word
	// among values at this specificity: an authoritative value beats a
	// non-authoritative one at the same rank without arbitration.
	Authoritative bool
}

// HasValue reports whether Value carries an actual string payload.
func (v ConfigurationValue) HasValue() bool {
	return v.Value != nil
}

// Specificity is the derived cardinality of Coordinates: the size of the
// coordinate set if present, otherwise 0. Always non-negative.
func (v ConfigurationValue) Specificity() int {
	n := v.Coordinates.Len()
	if n < 0 {
		return 0
	}
	return n
}

package registry

import "reflect"

// Converters maps a type descriptor (reflect.Type) to an opaque, boxed
// converter value. The root package type-asserts back to Converter[T] at
// the call site since generic methods on a non-generic receiver aren't
// expressible in Go.
//
// Duplicate registration for the same type is first-wins. Bootstrap
// (the only caller allowed to Register) treats a second registration for an
// already-claimed type as a bootstrap-time error rather than silently
// keeping the first and discarding the second without comment — see
// RegisterErr.
type Converters struct {
	byType map[reflect.Type]any
	built  bool
}

// NewConverters creates an empty, unfrozen converter registry.
func NewConverters() *Converters {
	return &Converters{byType: make(map[reflect.Type]any)}
}

// RegisterErr registers converter under typ. It reports ok=false without
// mutating the registry if typ is already claimed — first registration
// wins, and the caller (Bootstrap) turns that into a DuplicateConverterError.
func (c *Converters) RegisterErr(typ reflect.Type, converter any) (ok bool) {
	if c.built {
		panic("registry: RegisterErr called after Freeze")
	}
	if _, exists := c.byType[typ]; exists {
		return false
	}
	c.byType[typ] = converter
	return true
}

// Freeze marks the registry immutable. Idempotent.
func (c *Converters) Freeze() {
	c.built = true
}

// Lookup returns the boxed converter registered for typ, if any.
func (c *Converters) Lookup(typ reflect.Type) (any, bool) {
	v, ok := c.byType[typ]
	return v, ok
}

// Types returns every registered type descriptor, in no particular order —
// callers must treat this as a set, not a sequence.
func (c *Converters) Types() []reflect.Type {
	out := make([]reflect.Type, 0, len(c.byType))
	for t := range c.byType {
		out = append(out, t)
	}
	return out
}

package registry

// Arbiters is an insertion-ordered, append-only sequence of arbiters, frozen
// once Bootstrap completes. Like Providers, it is generic over the exact
// arbiter shape to avoid this package depending on the root package.
type Arbiters[A any] struct {
	items []A
	built bool
}

// NewArbiters creates an empty, unfrozen arbiter registry.
func NewArbiters[A any]() *Arbiters[A] {
	return &Arbiters[A]{}
}

// Register appends an arbiter in registration order.
func (r *Arbiters[A]) Register(a A) {
	if r.built {
		panic("registry: Register called after Freeze")
	}
	r.items = append(r.items, a)
}

// Freeze marks the registry immutable. Idempotent.
func (r *Arbiters[A]) Freeze() {
	r.built = true
}

// All returns the arbiters in registration order.
func (r *Arbiters[A]) All() []A {
	return r.items
}

package configfed

import "context"

// Arbiter breaks ties left by the ranking pass. Given the caller's
// coordinates, the requested name, and the tied candidate set, Arbitrate
// either returns a winner (ok=true) or defers to the next arbiter in the
// chain (ok=false). Arbiters MUST treat values as read-only.
type Arbiter interface {
	Arbitrate(ctx context.Context, callerCoordinates Coordinates, name string, values []ConfigurationValue) (ConfigurationValue, bool, error)
}

// ArbiterFunc adapts a plain function to the Arbiter interface.
type ArbiterFunc func(ctx context.Context, callerCoordinates Coordinates, name string, values []ConfigurationValue) (ConfigurationValue, bool, error)

// Arbitrate implements Arbiter.
func (f ArbiterFunc) Arbitrate(ctx context.Context, callerCoordinates Coordinates, name string, values []ConfigurationValue) (ConfigurationValue, bool, error) {
	return f(ctx, callerCoordinates, name, values)
}

// arbitrate runs the arbiter chain in registration order and returns the
// first non-deferred answer. If every arbiter defers (including the empty
// chain), it fails with AmbiguousValuesError.
func arbitrate(ctx context.Context, chain []Arbiter, coords Coordinates, name string, candidates []ConfigurationValue) (ConfigurationValue, error) {
	for _, a := range chain {
		if err := ctx.Err(); err != nil {
			return ConfigurationValue{}, err
		}
		v, ok, err := a.Arbitrate(ctx, coords, name, candidates)
		if err != nil {
			return ConfigurationValue{}, err
		}
		if ok {
			return v, nil
		}
	}
	return ConfigurationValue{}, &AmbiguousValuesError{
		Coordinates: coords,
		Name:        name,
		Candidates:  candidates,
	}
}

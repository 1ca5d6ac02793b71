package configfed

import "context"

// Provider is a source of configuration values keyed by name and shaped by
// the caller's coordinates. Providers MUST NOT mutate callerCoordinates.
//
// Lookup returns the zero ConfigurationValue and ok=false when the provider
// has nothing to say about name. A provider is encouraged, but not
// required, to return values whose Coordinates is a subset of
// callerCoordinates — the resolver tolerates and classifies violations
// rather than trusting the provider.
//
// A provider may itself call back into a Resolver (e.g. to read a derived
// coordinate); the reentrancy guard carried on ctx prevents the same
// provider from being re-entered on the same call chain. Lookup may return
// an error, which aborts the current Resolve call and propagates unchanged.
type Provider interface {
	// Name identifies this provider for diagnostics and reentrancy tracking.
	// Two distinct Provider values sharing a Name are treated as distinct
	// providers by the reentrancy guard (identity, not name, is the key) —
	// Name exists purely for error messages and logging.
	Name() string

	// Lookup answers a single (coordinates, name) query.
	Lookup(ctx context.Context, callerCoordinates Coordinates, name string) (ConfigurationValue, bool, error)
}

// ProviderFunc adapts a plain function to the Provider interface, the same
// shape as http.HandlerFunc — handy for tests and trivial providers that
// need no state.
type ProviderFunc struct {
	FuncName string
	Func     func(ctx context.Context, callerCoordinates Coordinates, name string) (ConfigurationValue, bool, error)
}

// Name implements Provider.
func (f ProviderFunc) Name() string { return f.FuncName }

// Lookup implements Provider.
func (f ProviderFunc) Lookup(ctx context.Context, callerCoordinates Coordinates, name string) (ConfigurationValue, bool, error) {
	return f.Func(ctx, callerCoordinates, name)
}

package configfed

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/autonomous-bits/configfed/internal/registry"
)

// versionConstraint pairs a collaborator's declared MinCoreVersion with a
// name for diagnostics, checked once during Build.
type versionConstraint struct {
	collaborator string
	constraint   string
}

// Bootstrap assembles a Resolver: register providers, converters, and
// arbiters, then call Build once. Every registry is append-only until Build
// freezes it; providers and arbiters keep insertion order, converters are
// keyed by type. This mirrors how nomos's
// ProviderRegistry accumulates collaborators before the compiler run
// starts.
type Bootstrap struct {
	providers   *registry.Providers[Provider]
	converters  *registry.Converters
	arbiters    *registry.Arbiters[Arbiter]
	constraints []versionConstraint
	sink        MalformedValueSink
	err         error
}

// NewBootstrap creates a Bootstrap with the two built-in converters
// (String and Map<string,string>) already registered, since these ship
// with the core rather than being supplied by a collaborator.
func NewBootstrap() *Bootstrap {
	b := &Bootstrap{
		providers:  registry.NewProviders[Provider](),
		converters: registry.NewConverters(),
		arbiters:   registry.NewArbiters[Arbiter](),
	}
	AddConverter(b, StringConverter())
	AddConverter(b, MapConverter())
	return b
}

// AddProvider registers p with no version constraint.
func (b *Bootstrap) AddProvider(p Provider) *Bootstrap {
	return b.AddProviderWithVersion(p, "")
}

// AddProviderWithVersion registers p, recording minCoreVersion (a semver
// constraint expression, e.g. ">= 1.0.0, < 2.0.0") to be checked during
// Build. An empty minCoreVersion means "no constraint."
func (b *Bootstrap) AddProviderWithVersion(p Provider, minCoreVersion string) *Bootstrap {
	if p == nil {
		b.recordErr(&NilArgumentError{Argument: "provider"})
		return b
	}
	b.providers.Register(p)
	if minCoreVersion != "" {
		b.constraints = append(b.constraints, versionConstraint{collaborator: p.Name(), constraint: minCoreVersion})
	}
	return b
}

// AddArbiter registers a with no version constraint.
func (b *Bootstrap) AddArbiter(a Arbiter) *Bootstrap {
	return b.AddArbiterWithVersion(a, "")
}

// AddArbiterWithVersion registers a, recording minCoreVersion as AddProviderWithVersion does.
func (b *Bootstrap) AddArbiterWithVersion(a Arbiter, minCoreVersion string) *Bootstrap {
	if a == nil {
		b.recordErr(&NilArgumentError{Argument: "arbiter"})
		return b
	}
	b.arbiters.Register(a)
	if minCoreVersion != "" {
		b.constraints = append(b.constraints, versionConstraint{collaborator: fmt.Sprintf("%T", a), constraint: minCoreVersion})
	}
	return b
}

// WithMalformedValueSink installs a sink to receive malformed values
// collected during resolution. The default (nil) discards them.
func (b *Bootstrap) WithMalformedValueSink(sink MalformedValueSink) *Bootstrap {
	b.sink = sink
	return b
}

func (b *Bootstrap) recordErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// AddConverter registers converter under the type descriptor it publishes.
// A free function, not a method, because Go methods cannot introduce new
// type parameters beyond their receiver's.
func AddConverter[T any](b *Bootstrap, converter Converter[T]) *Bootstrap {
	if converter == nil {
		b.recordErr(&NilArgumentError{Argument: "converter"})
		return b
	}
	typ := converter.Type()
	if ok := b.converters.RegisterErr(typ, converter); !ok {
		b.recordErr(&DuplicateConverterError{Type: typ})
	}
	return b
}

// Build freezes every registry, validates declared MinCoreVersion
// constraints against CoreVersion, resolves the process-wide
// configurationCoordinates property, and returns a ready Resolver.
func (b *Bootstrap) Build(ctx context.Context) (*Resolver, error) {
	if b.err != nil {
		return nil, b.err
	}

	if err := b.checkVersionConstraints(); err != nil {
		return nil, err
	}

	b.providers.Freeze()
	b.arbiters.Freeze()
	b.converters.Freeze()

	r := &Resolver{
		providers:     b.providers.All(),
		converters:    b.converters,
		arbiters:      b.arbiters.All(),
		malformedSink: b.sink,
		coreVersion:   CoreVersion,
		bootstrapped:  true,
	}

	coords, err := ResolveWith(ctx, r, Coordinates{}, "configurationCoordinates", MapConverter(), "")
	if err != nil {
		return nil, fmt.Errorf("configfed: resolving configurationCoordinates: %w", err)
	}
	r.configCoordinates = Coordinates(coords)

	return r, nil
}

func (b *Bootstrap) checkVersionConstraints() error {
	core, err := semver.NewVersion(CoreVersion)
	if err != nil {
		return fmt.Errorf("configfed: invalid CoreVersion %q: %w", CoreVersion, err)
	}
	for _, vc := range b.constraints {
		c, err := semver.NewConstraint(vc.constraint)
		if err != nil {
			return fmt.Errorf("configfed: %s declared invalid version constraint %q: %w", vc.collaborator, vc.constraint, err)
		}
		if !c.Check(core) {
			return &IncompatibleVersionError{
				Collaborator: vc.collaborator,
				Constraint:   vc.constraint,
				CoreVersion:  CoreVersion,
			}
		}
	}
	return nil
}

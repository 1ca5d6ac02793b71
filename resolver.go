package configfed

import (
	"context"
	"reflect"

	"github.com/autonomous-bits/configfed/internal/reentrancy"
	"github.com/autonomous-bits/configfed/internal/registry"
)

// MalformedReason names why a ConfigurationValue was classified as
// malformed during the collection pass.
type MalformedReason string

const (
	// MalformedNameMismatch means v.Name != the requested name.
	MalformedNameMismatch MalformedReason = "name_mismatch"
	// MalformedMoreSpecificThanCaller means len(v.Coordinates) > len(callerCoordinates).
	MalformedMoreSpecificThanCaller MalformedReason = "more_specific_than_caller"
	// MalformedDisjointSameArity means len(v.Coordinates) == len(callerCoordinates) but the sets differ.
	MalformedDisjointSameArity MalformedReason = "disjoint_same_arity"
	// MalformedNotASubset means len(v.Coordinates) < len(callerCoordinates) and v.Coordinates is not a subset.
	MalformedNotASubset MalformedReason = "not_a_subset"
)

// MalformedValue is the event handed to a MalformedValueSink, never an
// error: malformed-value handling is a recoverable, overridable event,
// not a resolution failure.
type MalformedValue struct {
	Value             ConfigurationValue
	Reason            MalformedReason
	CallerCoordinates Coordinates
	Name              string
}

// MalformedValueSink receives malformed values collected during one
// resolve call. The default (nil sink) discards them; a caller may
// supply one that logs or escalates.
type MalformedValueSink interface {
	HandleMalformed(ctx context.Context, malformed []MalformedValue)
}

// MalformedValueSinkFunc adapts a plain function to MalformedValueSink.
type MalformedValueSinkFunc func(ctx context.Context, malformed []MalformedValue)

// HandleMalformed implements MalformedValueSink.
func (f MalformedValueSinkFunc) HandleMalformed(ctx context.Context, malformed []MalformedValue) {
	f(ctx, malformed)
}

// Resolver is the orchestrator: it iterates providers, classifies each
// returned ConfigurationValue, ranks survivors, invokes arbitration, and
// dispatches to a Converter. A Resolver is only constructed by Bootstrap and
// is safe for concurrent use once bootstrapping completes.
type Resolver struct {
	providers     []Provider
	converters    *registry.Converters
	arbiters      []Arbiter
	malformedSink MalformedValueSink
	coreVersion   string

	configCoordinates Coordinates
	bootstrapped      bool
}

// resolve runs the full collect/rank/arbitrate pipeline and returns the
// winning ConfigurationValue, or ok=false meaning "no candidate — use
// the default."
func (r *Resolver) resolve(ctx context.Context, callerCoordinates Coordinates, name string) (ConfigurationValue, bool, error) {
	if name == "" {
		return ConfigurationValue{}, false, &NilArgumentError{Argument: "name"}
	}
	if !r.bootstrapped {
		return ConfigurationValue{}, false, ErrNotBootstrapped
	}
	if callerCoordinates == nil {
		callerCoordinates = Coordinates{}
	}

	topLevel := !reentrancy.HasGuard(ctx)
	if topLevel {
		ctx = reentrancy.WithGuard(ctx)
	}

	selected, bad, tieQueue, err := r.collect(ctx, callerCoordinates, name)
	if err != nil {
		return ConfigurationValue{}, false, err
	}

	if len(bad) > 0 {
		r.handleMalformed(ctx, callerCoordinates, name, bad)
	}

	if selected == nil && len(tieQueue) > 0 {
		ranked, arbitrationList := rank(tieQueue)
		selected = ranked
		if len(arbitrationList) > 0 {
			winner, err := arbitrate(ctx, r.arbiters, callerCoordinates, name, arbitrationList)
			if err != nil {
				return ConfigurationValue{}, false, err
			}
			selected = &winner
		}
	}

	if topLevel && !reentrancy.Empty(ctx) {
		// Defensive: every Activate must be paired with Deactivate on all
		// exit paths inside collect(); this should be unreachable.
		panic("configfed: reentrancy guard non-empty at top-level resolve return")
	}

	if selected == nil {
		return ConfigurationValue{}, false, nil
	}
	return *selected, true, nil
}

// collect runs the collection pass: classify every provider's answer
// into selected / bad / tieQueue.
func (r *Resolver) collect(ctx context.Context, callerCoordinates Coordinates, name string) (selected *ConfigurationValue, bad []MalformedValue, tieQueue []ConfigurationValue, err error) {
	for i, p := range r.providers {
		if err := ctx.Err(); err != nil {
			return nil, nil, nil, err
		}

		// i, not p, is the reentrancy key: a Provider's dynamic type may be
		// a struct holding a func field (ProviderFunc) or other
		// non-comparable value, which would panic as a map key.
		if reentrancy.IsActive(ctx, i) {
			continue // treat re-entrant call as if the provider returned none
		}

		v, ok, lookupErr := func() (ConfigurationValue, bool, error) {
			reentrancy.Activate(ctx, i)
			defer reentrancy.Deactivate(ctx, i)
			return p.Lookup(ctx, callerCoordinates, name)
		}()

		if lookupErr != nil {
			return nil, nil, nil, lookupErr
		}
		if !ok {
			continue
		}

		reason, malformed := classify(v, name, callerCoordinates)
		if malformed {
			bad = append(bad, MalformedValue{Value: v, Reason: reason, CallerCoordinates: callerCoordinates, Name: name})
			continue
		}

		switch {
		case v.Coordinates.Equal(callerCoordinates):
			// Exact match.
			if selected == nil && len(tieQueue) == 0 {
				vv := v
				selected = &vv
			} else {
				if selected != nil {
					tieQueue = pushTie(tieQueue, *selected)
					selected = nil
				}
				tieQueue = pushTie(tieQueue, v)
			}

		default:
			// Proper subset match (classify already ruled out malformed cases).
			if selected != nil {
				continue // an earlier exact match already won; keep scanning for duplicates
			}
			tieQueue = pushTie(tieQueue, v)
		}
	}
	return selected, bad, tieQueue, nil
}

// classify decides whether v can even compete for name under
// callerCoordinates, and if not, why.
func classify(v ConfigurationValue, name string, callerCoordinates Coordinates) (reason MalformedReason, malformed bool) {
	if v.Name != name {
		return MalformedNameMismatch, true
	}

	vLen := v.Coordinates.Len()
	callerLen := callerCoordinates.Len()

	switch {
	case vLen > callerLen:
		return MalformedMoreSpecificThanCaller, true
	case vLen == callerLen:
		if !v.Coordinates.Equal(callerCoordinates) {
			return MalformedDisjointSameArity, true
		}
	default:
		if !v.Coordinates.IsSubsetOf(callerCoordinates) {
			return MalformedNotASubset, true
		}
	}
	return "", false
}

// pushTie inserts v into queue, keeping it sorted by descending
// specificity with ties broken by insertion order (stable).
func pushTie(queue []ConfigurationValue, v ConfigurationValue) []ConfigurationValue {
	spec := v.Specificity()
	i := len(queue)
	for i > 0 && queue[i-1].Specificity() < spec {
		i--
	}
	queue = append(queue, ConfigurationValue{})
	copy(queue[i+1:], queue[i:])
	queue[i] = v
	return queue
}

// rank drains the descending-specificity tie queue, maintaining
// selected, arbitrationList, and topSpec.
func rank(tieQueue []ConfigurationValue) (selected *ConfigurationValue, arbitrationList []ConfigurationValue) {
	topSpec := -1

	for _, v := range tieQueue {
		s := v.Specificity()
		if s < 0 {
			s = 0
		}

		if topSpec < 0 || s < topSpec {
			if selected == nil {
				vv := v
				selected = &vv
				topSpec = s
			} else if len(arbitrationList) == 0 {
				// A strictly-better unique leader already exists: lower-
				// specificity entries cannot displace it.
				break
			} else {
				arbitrationList = append(arbitrationList, v)
			}
			continue
		}

		// s == topSpec: a tie at the current rank.
		if selected == nil {
			// The rank is already ambiguous (an earlier tie cleared
			// selected into arbitrationList); any further same-rank
			// candidate joins that ambiguous group.
			arbitrationList = append(arbitrationList, v)
			continue
		}

		switch {
		case selected.Authoritative && v.Authoritative:
			arbitrationList = append(arbitrationList, *selected, v)
			selected = nil
		case v.Authoritative && !selected.Authoritative:
			vv := v
			selected = &vv
		case selected.Authoritative && !v.Authoritative:
			// selected wins; v is dropped.
		default:
			arbitrationList = append(arbitrationList, *selected, v)
			selected = nil
		}
	}

	return selected, arbitrationList
}

func (r *Resolver) handleMalformed(ctx context.Context, _ Coordinates, _ string, bad []MalformedValue) {
	if r.malformedSink == nil {
		return // default: silently discard.
	}
	r.malformedSink.HandleMalformed(ctx, bad)
}

// GetValue resolves name against the process-wide configuration
// coordinates using the built-in String converter, with "" as the default.
func (r *Resolver) GetValue(ctx context.Context, name string) (string, error) {
	return r.GetValueOrDefault(ctx, name, "")
}

// GetValueOrDefault resolves name against the process-wide configuration
// coordinates using the built-in String converter.
func (r *Resolver) GetValueOrDefault(ctx context.Context, name, defaultValue string) (string, error) {
	return r.GetValueIn(ctx, r.configCoordinates, name, defaultValue)
}

// GetValueIn resolves name in callerCoordinates using the built-in String
// converter.
func (r *Resolver) GetValueIn(ctx context.Context, callerCoordinates Coordinates, name, defaultValue string) (string, error) {
	return ResolveWith(ctx, r, callerCoordinates, name, StringConverter(), defaultValue)
}

// ConfigurationCoordinates returns the process-wide coordinates resolved
// once during Bootstrap and frozen thereafter.
func (r *Resolver) ConfigurationCoordinates() Coordinates {
	return r.configCoordinates
}

// CoreVersion returns the core version this Resolver was built against,
// the same value every declared MinCoreVersion constraint was checked
// against during Bootstrap.
func (r *Resolver) CoreVersion() string {
	return r.coreVersion
}

// ConversionTypes returns every type descriptor with a registered
// converter.
func (r *Resolver) ConversionTypes() []reflect.Type {
	return r.converters.Types()
}

// ResolveWith resolves name in callerCoordinates using an explicit
// converter, bypassing the type registry entirely. T is a free type
// parameter because Go methods cannot themselves be generic.
func ResolveWith[T any](ctx context.Context, r *Resolver, callerCoordinates Coordinates, name string, converter Converter[T], defaultValue string) (T, error) {
	var zero T
	if converter == nil {
		return zero, &NilArgumentError{Argument: "converter"}
	}

	selected, ok, err := r.resolve(ctx, callerCoordinates, name)
	if err != nil {
		return zero, err
	}

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	if !ok {
		return converter.Convert(&defaultValue)
	}
	return converter.Convert(selected.Value)
}

// ResolveAs resolves name in callerCoordinates, looking up the converter for
// typ in the registry built during Bootstrap. Fails with
// NoSuchConverterError if no converter was registered for typ, or if the
// registered converter does not actually produce a T (a caller/bootstrap
// wiring bug).
func ResolveAs[T any](ctx context.Context, r *Resolver, callerCoordinates Coordinates, name string, typ reflect.Type, defaultValue string) (T, error) {
	var zero T
	boxed, ok := r.converters.Lookup(typ)
	if !ok {
		return zero, &NoSuchConverterError{Type: typ}
	}
	converter, ok := boxed.(Converter[T])
	if !ok {
		return zero, &NoSuchConverterError{Type: typ}
	}
	return ResolveWith(ctx, r, callerCoordinates, name, converter, defaultValue)
}

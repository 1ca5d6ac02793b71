package configfed

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors returned (wrapped) by the resolver. Use errors.Is against
// these rather than type-asserting the concrete error types below, unless
// the extra detail on the concrete type is needed.
var (
	// ErrNilArgument is returned when a required argument is the zero value:
	// a nil converter or empty property name on entry to a resolve call, or
	// a nil provider, arbiter or converter registered with Bootstrap.
	ErrNilArgument = errors.New("configfed: required argument is nil")

	// ErrNotBootstrapped is returned when Resolve is invoked on a Resolver
	// before Bootstrap has completed.
	ErrNotBootstrapped = errors.New("configfed: resolver used before bootstrap completed")

	// ErrNoSuchConverter is returned by the type-based overload when no
	// converter is registered for the requested type.
	ErrNoSuchConverter = errors.New("configfed: no converter registered for type")

	// ErrAmbiguous is returned when ranking leaves a tie that no arbiter in
	// the chain resolves.
	ErrAmbiguous = errors.New("configfed: ambiguous configuration values")

	// ErrDuplicateConverter is returned by Bootstrap when two converters are
	// registered for the same type descriptor.
	ErrDuplicateConverter = errors.New("configfed: duplicate converter registration")

	// ErrIncompatibleVersion is returned by Bootstrap when a provider or
	// arbiter declares a MinCoreVersion constraint the running core does not
	// satisfy.
	ErrIncompatibleVersion = errors.New("configfed: collaborator requires incompatible core version")
)

// NilArgumentError reports which required argument was missing.
type NilArgumentError struct {
	// Argument names the missing parameter ("name", "converter",
	// "provider" or "arbiter").
	Argument string
}

func (e *NilArgumentError) Error() string {
	return fmt.Sprintf("configfed: argument %q must not be nil or empty", e.Argument)
}

func (e *NilArgumentError) Unwrap() error { return ErrNilArgument }

func (e *NilArgumentError) Is(target error) bool {
	_, ok := target.(*NilArgumentError)
	return ok
}

// NoSuchConverterError reports the type descriptor that had no registered
// converter.
type NoSuchConverterError struct {
	// Type is the requested type descriptor (a reflect.Type acting as an
	// opaque, equality-comparable token; see converter.go).
	Type reflect.Type
}

func (e *NoSuchConverterError) Error() string {
	return fmt.Sprintf("configfed: no converter registered for type %s", e.Type)
}

func (e *NoSuchConverterError) Unwrap() error { return ErrNoSuchConverter }

func (e *NoSuchConverterError) Is(target error) bool {
	_, ok := target.(*NoSuchConverterError)
	return ok
}

// AmbiguousValuesError reports the candidate set that arbitration could not
// resolve.
type AmbiguousValuesError struct {
	// Coordinates is the caller's coordinate set for the failed lookup.
	Coordinates Coordinates

	// Name is the requested property name.
	Name string

	// Candidates is the tied candidate set handed to the arbiter chain.
	Candidates []ConfigurationValue
}

func (e *AmbiguousValuesError) Error() string {
	return fmt.Sprintf("configfed: ambiguous value for %q at %s: %d candidates, no arbiter resolved it",
		e.Name, e.Coordinates, len(e.Candidates))
}

func (e *AmbiguousValuesError) Unwrap() error { return ErrAmbiguous }

func (e *AmbiguousValuesError) Is(target error) bool {
	_, ok := target.(*AmbiguousValuesError)
	return ok
}

// DuplicateConverterError reports an attempt to register a second converter
// for a type descriptor already claimed during bootstrap.
type DuplicateConverterError struct {
	Type reflect.Type
}

func (e *DuplicateConverterError) Error() string {
	return fmt.Sprintf("configfed: converter for type %s already registered (first registration wins)", e.Type)
}

func (e *DuplicateConverterError) Unwrap() error { return ErrDuplicateConverter }

func (e *DuplicateConverterError) Is(target error) bool {
	_, ok := target.(*DuplicateConverterError)
	return ok
}

// IncompatibleVersionError reports a collaborator whose declared version
// constraint the running core failed to satisfy.
type IncompatibleVersionError struct {
	// Collaborator identifies the provider or arbiter that declared the
	// constraint, for diagnostics.
	Collaborator string

	// Constraint is the declared semver constraint string.
	Constraint string

	// CoreVersion is the running core's version.
	CoreVersion string
}

func (e *IncompatibleVersionError) Error() string {
	return fmt.Sprintf("configfed: %s requires core version %q, running core is %s",
		e.Collaborator, e.Constraint, e.CoreVersion)
}

func (e *IncompatibleVersionError) Unwrap() error { return ErrIncompatibleVersion }

func (e *IncompatibleVersionError) Is(target error) bool {
	_, ok := target.(*IncompatibleVersionError)
	return ok
}

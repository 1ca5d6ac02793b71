package configfed

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func valueProvider(name string, propName string, coords Coordinates, value string, authoritative bool) Provider {
	return ProviderFunc{
		FuncName: name,
		Func: func(_ context.Context, _ Coordinates, reqName string) (ConfigurationValue, bool, error) {
			if reqName != propName {
				return ConfigurationValue{}, false, nil
			}
			return ConfigurationValue{
				Name:          propName,
				Coordinates:   coords,
				Value:         strptr(value),
				Authoritative: authoritative,
			}, true, nil
		},
	}
}

func buildResolver(t *testing.T, providers []Provider, arbiters []Arbiter, sink MalformedValueSink) *Resolver {
	t.Helper()
	b := NewBootstrap()
	for _, p := range providers {
		b.AddProvider(p)
	}
	for _, a := range arbiters {
		b.AddArbiter(a)
	}
	if sink != nil {
		b.WithMalformedValueSink(sink)
	}
	r, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return r
}

func TestExactMatchWinsOverSubset(t *testing.T) {
	caller := Coordinates{"region": "us"}
	r := buildResolver(t, []Provider{
		valueProvider("base", "x", Coordinates{}, "base-value", false),
		valueProvider("regional", "x", caller, "regional-value", false),
	}, nil, nil)

	got, err := r.GetValueIn(context.Background(), caller, "x", "default")
	if err != nil {
		t.Fatalf("GetValueIn: %v", err)
	}
	if got != "regional-value" {
		t.Fatalf("got %q, want %q", got, "regional-value")
	}
}

func TestMoreSpecificSubsetWinsOverLessSpecific(t *testing.T) {
	caller := Coordinates{"region": "us", "env": "prod"}
	r := buildResolver(t, []Provider{
		valueProvider("base", "x", Coordinates{}, "base-value", false),
		valueProvider("regional", "x", Coordinates{"region": "us"}, "regional-value", false),
	}, nil, nil)

	got, err := r.GetValueIn(context.Background(), caller, "x", "default")
	if err != nil {
		t.Fatalf("GetValueIn: %v", err)
	}
	if got != "regional-value" {
		t.Fatalf("got %q, want %q", got, "regional-value")
	}
}

func TestRankingBreaksOnceAStrictLeaderExists(t *testing.T) {
	caller := Coordinates{"a": "1", "b": "2", "c": "3"}
	pCCalled := false
	providers := []Provider{
		valueProvider("two-key", "x", Coordinates{"a": "1", "b": "2"}, "two-key-value", false),
		valueProvider("one-key", "x", Coordinates{"a": "1"}, "one-key-value", false),
		ProviderFunc{
			FuncName: "zero-key",
			Func: func(_ context.Context, _ Coordinates, reqName string) (ConfigurationValue, bool, error) {
				pCCalled = true
				if reqName != "x" {
					return ConfigurationValue{}, false, nil
				}
				return ConfigurationValue{Name: "x", Coordinates: Coordinates{}, Value: strptr("zero-key-value")}, true, nil
			},
		},
	}
	r := buildResolver(t, providers, nil, nil)

	got, err := r.GetValueIn(context.Background(), caller, "x", "default")
	if err != nil {
		t.Fatalf("GetValueIn: %v", err)
	}
	if got != "two-key-value" {
		t.Fatalf("got %q, want %q", got, "two-key-value")
	}
	if !pCCalled {
		t.Fatal("expected the zero-key provider to still be invoked during collection")
	}
}

func TestAuthoritativeBeatsNonAuthoritativeAtSameRank(t *testing.T) {
	caller := Coordinates{"region": "us"}
	r := buildResolver(t, []Provider{
		valueProvider("a", "x", caller, "from-a", false),
		valueProvider("b", "x", caller, "from-b", true),
	}, nil, nil)

	got, err := r.GetValueIn(context.Background(), caller, "x", "default")
	if err != nil {
		t.Fatalf("GetValueIn: %v", err)
	}
	if got != "from-b" {
		t.Fatalf("got %q, want %q", got, "from-b")
	}
}

func TestBothAuthoritativeGoesToArbitration(t *testing.T) {
	caller := Coordinates{"region": "us"}
	arbiterCalled := false
	arbiter := ArbiterFunc(func(_ context.Context, _ Coordinates, _ string, values []ConfigurationValue) (ConfigurationValue, bool, error) {
		arbiterCalled = true
		return values[0], true, nil
	})
	r := buildResolver(t, []Provider{
		valueProvider("a", "x", caller, "from-a", true),
		valueProvider("b", "x", caller, "from-b", true),
	}, []Arbiter{arbiter}, nil)

	_, err := r.GetValueIn(context.Background(), caller, "x", "default")
	if err != nil {
		t.Fatalf("GetValueIn: %v", err)
	}
	if !arbiterCalled {
		t.Fatal("expected arbiter to be invoked when both candidates are authoritative")
	}
}

func TestNeitherAuthoritativeGoesToArbitration(t *testing.T) {
	caller := Coordinates{"region": "us"}
	arbiterCalled := false
	arbiter := ArbiterFunc(func(_ context.Context, _ Coordinates, _ string, values []ConfigurationValue) (ConfigurationValue, bool, error) {
		arbiterCalled = true
		return values[1], true, nil
	})
	r := buildResolver(t, []Provider{
		valueProvider("a", "x", caller, "from-a", false),
		valueProvider("b", "x", caller, "from-b", false),
	}, []Arbiter{arbiter}, nil)

	got, err := r.GetValueIn(context.Background(), caller, "x", "default")
	if err != nil {
		t.Fatalf("GetValueIn: %v", err)
	}
	if got != "from-b" {
		t.Fatalf("got %q, want %q", got, "from-b")
	}
	if !arbiterCalled {
		t.Fatal("expected arbiter to be invoked")
	}
}

func TestAmbiguousWithoutArbiterFails(t *testing.T) {
	caller := Coordinates{"region": "us"}
	r := buildResolver(t, []Provider{
		valueProvider("a", "x", caller, "from-a", false),
		valueProvider("b", "x", caller, "from-b", false),
	}, nil, nil)

	_, err := r.GetValueIn(context.Background(), caller, "x", "default")
	var ambiguous *AmbiguousValuesError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected *AmbiguousValuesError, got %v", err)
	}
	if len(ambiguous.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(ambiguous.Candidates))
	}
}

func TestArbiterChainDefersToNext(t *testing.T) {
	caller := Coordinates{"region": "us"}
	deferring := ArbiterFunc(func(_ context.Context, _ Coordinates, _ string, _ []ConfigurationValue) (ConfigurationValue, bool, error) {
		return ConfigurationValue{}, false, nil
	})
	resolving := ArbiterFunc(func(_ context.Context, _ Coordinates, _ string, values []ConfigurationValue) (ConfigurationValue, bool, error) {
		return values[0], true, nil
	})
	r := buildResolver(t, []Provider{
		valueProvider("a", "x", caller, "from-a", false),
		valueProvider("b", "x", caller, "from-b", false),
	}, []Arbiter{deferring, resolving}, nil)

	if _, err := r.GetValueIn(context.Background(), caller, "x", "default"); err != nil {
		t.Fatalf("GetValueIn: %v", err)
	}
}

func TestNoCandidatesUsesDefault(t *testing.T) {
	r := buildResolver(t, nil, nil, nil)
	got, err := r.GetValueIn(context.Background(), Coordinates{}, "missing", "fallback")
	if err != nil {
		t.Fatalf("GetValueIn: %v", err)
	}
	if got != "fallback" {
		t.Fatalf("got %q, want %q", got, "fallback")
	}
}

// nameMismatchProvider always answers with a ConfigurationValue whose Name
// field disagrees with whatever was requested, producing the
// MalformedNameMismatch classification regardless of query.
func nameMismatchProvider(funcName, reportedName string) Provider {
	return ProviderFunc{
		FuncName: funcName,
		Func: func(_ context.Context, _ Coordinates, _ string) (ConfigurationValue, bool, error) {
			return ConfigurationValue{Name: reportedName, Coordinates: Coordinates{}, Value: strptr("irrelevant")}, true, nil
		},
	}
}

func TestMalformedValuesAreDiscardedByDefault(t *testing.T) {
	r := buildResolver(t, []Provider{
		nameMismatchProvider("wrong-name", "y"),
	}, nil, nil)

	got, err := r.GetValueIn(context.Background(), Coordinates{}, "x", "fallback")
	if err != nil {
		t.Fatalf("GetValueIn: %v", err)
	}
	if got != "fallback" {
		t.Fatalf("got %q, want %q", got, "fallback")
	}
}

func TestMalformedSinkSeesEveryReason(t *testing.T) {
	var seen []MalformedReason
	sink := MalformedValueSinkFunc(func(_ context.Context, malformed []MalformedValue) {
		for _, m := range malformed {
			seen = append(seen, m.Reason)
		}
	})

	caller := Coordinates{"region": "us", "env": "prod"}
	providers := []Provider{
		nameMismatchProvider("name-mismatch", "y"),
		valueProvider("too-specific", "x", Coordinates{"region": "us", "env": "prod", "zone": "eu"}, "v", false),
		valueProvider("disjoint", "x", Coordinates{"zone": "eu", "tier": "1"}, "v", false),
		valueProvider("not-a-subset", "x", Coordinates{"region": "eu"}, "v", false),
	}
	r := buildResolver(t, providers, nil, sink)

	if _, err := r.GetValueIn(context.Background(), caller, "x", "fallback"); err != nil {
		t.Fatalf("GetValueIn: %v", err)
	}

	want := map[MalformedReason]bool{
		MalformedNameMismatch:            false,
		MalformedMoreSpecificThanCaller:  false,
		MalformedDisjointSameArity:       false,
		MalformedNotASubset:              false,
	}
	for _, reason := range seen {
		want[reason] = true
	}
	for reason, found := range want {
		if !found {
			t.Fatalf("expected reason %s to have been reported, seen=%v", reason, seen)
		}
	}
}

func TestReentrantProviderCallIsSkippedNotLooped(t *testing.T) {
	var r *Resolver
	var innerOK bool
	var innerErr error

	selfCalling := ProviderFunc{
		FuncName: "self-calling",
		Func: func(ctx context.Context, callerCoordinates Coordinates, name string) (ConfigurationValue, bool, error) {
			if name != "outer" {
				return ConfigurationValue{}, false, nil
			}
			v, ok, err := r.resolve(ctx, callerCoordinates, "outer")
			innerOK, innerErr = ok, err
			return ConfigurationValue{Name: "outer", Coordinates: Coordinates{}, Value: strptr("resolved")}, true, nil
		},
	}

	b := NewBootstrap()
	b.AddProvider(selfCalling)
	var err error
	r, err = b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got, err := r.GetValue(context.Background(), "outer")
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if got != "resolved" {
		t.Fatalf("got %q, want %q", got, "resolved")
	}
	if innerErr != nil {
		t.Fatalf("inner resolve errored: %v", innerErr)
	}
	if innerOK {
		t.Fatal("expected the reentrant inner call to see the provider as skipped (ok=false)")
	}
}

func TestResolveAsUsesRegisteredConverter(t *testing.T) {
	caller := Coordinates{}
	durationType := reflect.TypeOf(time.Duration(0))

	b := NewBootstrap()
	AddConverter(b, DurationConverter())
	b.AddProvider(valueProvider("duration", "timeout", caller, "5s", false))
	r, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got, err := ResolveAs[time.Duration](context.Background(), r, caller, "timeout", durationType, "0s")
	if err != nil {
		t.Fatalf("ResolveAs: %v", err)
	}
	if got != 5*time.Second {
		t.Fatalf("got %v, want 5s", got)
	}

	_, err = ResolveAs[int64](context.Background(), r, caller, "timeout", durationType, "0s")
	var notFound *NoSuchConverterError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *NoSuchConverterError for mismatched T, got %v", err)
	}
}

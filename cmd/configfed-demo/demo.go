package main

import (
	"context"
	"os"
	"strings"

	"github.com/autonomous-bits/configfed"
)

// envProvider answers from environment variables named "CONFIGFED_" + the
// upper-cased property name, treating the process environment as the
// least-specific (zero-coordinate) source.
var envProvider = configfed.ProviderFunc{
	FuncName: "environment",
	Func: func(_ context.Context, _ configfed.Coordinates, name string) (configfed.ConfigurationValue, bool, error) {
		key := "CONFIGFED_" + strings.ToUpper(strings.ReplaceAll(name, ".", "_"))
		v, ok := os.LookupEnv(key)
		if !ok {
			return configfed.ConfigurationValue{}, false, nil
		}
		return configfed.ConfigurationValue{
			Name:        name,
			Coordinates: configfed.Coordinates{},
			Value:       &v,
		}, true, nil
	},
}

// regionDefaultsProvider is a made-up per-region source so --coords has
// something to demonstrate ranking against the environment provider.
var regionDefaultsProvider = configfed.ProviderFunc{
	FuncName: "region-defaults",
	Func: func(_ context.Context, _ configfed.Coordinates, name string) (configfed.ConfigurationValue, bool, error) {
		defaults := map[string]string{
			"greeting": "hello from us-east",
		}
		v, ok := defaults[name]
		if !ok {
			return configfed.ConfigurationValue{}, false, nil
		}
		return configfed.ConfigurationValue{
			Name:        name,
			Coordinates: configfed.Coordinates{"region": "us-east"},
			Value:       &v,
		}, true, nil
	},
}

// buildDemoResolver wires the illustrative providers above into a Resolver.
// A real application would instead call configfed.ParseManifest against a
// checked-in YAML file; this is inlined for a zero-dependency demo.
func buildDemoResolver(ctx context.Context) (*configfed.Resolver, error) {
	b := configfed.NewBootstrap()
	b.AddProvider(regionDefaultsProvider)
	b.AddProvider(envProvider)
	b.AddArbiter(configfed.ArbiterFunc(func(_ context.Context, _ configfed.Coordinates, _ string, values []configfed.ConfigurationValue) (configfed.ConfigurationValue, bool, error) {
		return values[0], true, nil
	}))
	return b.Build(ctx)
}

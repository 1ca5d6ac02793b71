// Package configfed implements a coordinate-aware configuration resolution
// engine: given a caller's deployment coordinates (e.g. {region=west,
// environment=test}) and a property name, it selects a single value from a
// federation of independent configuration providers.
//
// The hard problem this package solves is not reading configuration — that
// is the job of a Provider — but reconciling potentially many conflicting
// answers from many providers into one deterministic result, with defined
// behavior for ties, authority, and irresolvable ambiguity.
//
// # Basic Usage
//
//	b := configfed.NewBootstrap()
//	b.AddProvider(myProvider)
//	resolver, err := b.Build(context.Background())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	value, err := resolver.GetValueOrDefault(context.Background(), "db.url", "jdbc:default")
//
// # Error Handling
//
// Resolve failures are typed errors; see errors.go. A collaborator
// (Provider, Converter, Arbiter) error is returned unchanged, without
// additional wrapping.
//
//	_, err := resolver.GetValue(ctx, "region")
//	if errors.Is(err, configfed.ErrAmbiguous) {
//		// no arbiter could pick a winner
//	}
//
// # Scope
//
// Concrete providers (environment variables, system properties, files, ...),
// string-to-T converters (duration, file, list, ...), expression
// interpolation, and the discovery mechanism used to enumerate providers at
// startup are all external collaborators — only their interfaces live here.
package configfed

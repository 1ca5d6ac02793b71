package configfed

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ManifestEntry names one provider or arbiter to wire into a Bootstrap: a
// factory key resolved against a caller-supplied registry, free-form
// construction parameters, and an optional MinCoreVersion constraint.
// Mirrors the shape of nomos's .nomos/providers.yaml entries, minus
// the binary-download/plugin-discovery fields that don't apply here.
type ManifestEntry struct {
	Name           string            `yaml:"name"`
	Factory        string            `yaml:"factory"`
	MinCoreVersion string            `yaml:"minCoreVersion,omitempty"`
	Params         map[string]string `yaml:"params,omitempty"`
}

// Manifest is the declarative bootstrap wiring document: which providers
// and arbiters to build, in what order, and with what parameters.
type Manifest struct {
	Providers []ManifestEntry `yaml:"providers"`
	Arbiters  []ManifestEntry `yaml:"arbiters"`
}

// ParseManifest decodes a YAML manifest from r.
func ParseManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("configfed: parsing manifest: %w", err)
	}
	return &m, nil
}

// ProviderFactory builds a Provider from a manifest entry's params. The
// caller registers these under the same keys the manifest's "factory"
// fields name; the manifest itself never embeds Go code.
type ProviderFactory func(params map[string]string) (Provider, error)

// ArbiterFactory builds an Arbiter from a manifest entry's params.
type ArbiterFactory func(params map[string]string) (Arbiter, error)

// Apply resolves every entry in m against providerFactories/arbiterFactories
// and registers the results with b, in manifest order. An unknown factory
// key or a factory error aborts immediately; nothing already registered is
// rolled back, matching Bootstrap's general fail-fast posture.
func (m *Manifest) Apply(b *Bootstrap, providerFactories map[string]ProviderFactory, arbiterFactories map[string]ArbiterFactory) error {
	for _, e := range m.Providers {
		factory, ok := providerFactories[e.Factory]
		if !ok {
			return fmt.Errorf("configfed: manifest provider %q references unknown factory %q", e.Name, e.Factory)
		}
		p, err := factory(e.Params)
		if err != nil {
			return fmt.Errorf("configfed: building provider %q: %w", e.Name, err)
		}
		b.AddProviderWithVersion(p, e.MinCoreVersion)
	}

	for _, e := range m.Arbiters {
		factory, ok := arbiterFactories[e.Factory]
		if !ok {
			return fmt.Errorf("configfed: manifest arbiter %q references unknown factory %q", e.Name, e.Factory)
		}
		a, err := factory(e.Params)
		if err != nil {
			return fmt.Errorf("configfed: building arbiter %q: %w", e.Name, err)
		}
		b.AddArbiterWithVersion(a, e.MinCoreVersion)
	}

	return nil
}

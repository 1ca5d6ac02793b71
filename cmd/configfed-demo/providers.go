package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the providers wired into the demo resolver",
	RunE:  runProviders,
}

// demoProviders mirrors buildDemoResolver's wiring for display purposes;
// the resolver itself doesn't expose its provider list, since Providers
// is an internal registry, not part of the external interface.
var demoProviders = []struct {
	name string
	note string
}{
	{"region-defaults", "hard-coded per-region sample values"},
	{"environment", "CONFIGFED_<NAME> environment variables"},
}

func runProviders(_ *cobra.Command, _ []string) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Description")
	for _, p := range demoProviders {
		if err := table.Append(p.name, p.note); err != nil {
			return fmt.Errorf("rendering table row: %w", err)
		}
	}
	return table.Render()
}

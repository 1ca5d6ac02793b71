package main

import (
	"github.com/spf13/cobra"

	"github.com/autonomous-bits/configfed"
)

var rootCmd = &cobra.Command{
	Use:   "configfed-demo",
	Short: "Exercise the configfed resolution engine from the command line",
	Long: `configfed-demo wires a handful of illustrative providers (environment
variables, hard-coded per-region defaults) into a configfed.Resolver and lets you query it
the way a real application would, using caller-supplied coordinates.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var globalFlags struct {
	coords string
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalFlags.coords, "coords", "", `caller coordinates, e.g. "region=us,env=prod"`)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(providersCmd)
}

// callerCoordinates parses --coords ("k=v,k2=v2") into configfed.Coordinates.
// Reuses configfed.MapConverter's flow-style syntax by wrapping the flag
// value in braces rather than duplicating the parsing logic.
func callerCoordinates() (configfed.Coordinates, error) {
	raw := "{" + globalFlags.coords + "}"
	m, err := configfed.MapConverter().Convert(&raw)
	if err != nil {
		return nil, err
	}
	return configfed.Coordinates(m), nil
}

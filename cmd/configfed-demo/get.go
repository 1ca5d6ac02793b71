package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getFlags struct {
	defaultValue string
}

var getCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Resolve a single configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	getCmd.Flags().StringVar(&getFlags.defaultValue, "default", "", "value to use if nothing resolves")
}

func runGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	coords, err := callerCoordinates()
	if err != nil {
		return fmt.Errorf("parsing --coords: %w", err)
	}

	r, err := buildDemoResolver(ctx)
	if err != nil {
		return fmt.Errorf("bootstrapping: %w", err)
	}

	value, err := r.GetValueIn(ctx, coords, args[0], getFlags.defaultValue)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", args[0], err)
	}

	fmt.Println(value)
	return nil
}

// Package main provides the configfed-demo CLI entry point: a small
// exerciser for the configfed library, not a production configuration
// tool.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

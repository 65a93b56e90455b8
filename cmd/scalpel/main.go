package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-preview"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "scalpel",
		Short: "Scalpel - A reactive view compiler for SX",
		Long: `Scalpel compiles declarative SX markup into fine-grained reactive
view construction. It expands elements, components, and control-flow
macros, checks component bodies for reactivity mistakes, and serves
expanded views with live reload during development.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	rootCmd.AddCommand(newExpandCommand())
	rootCmd.AddCommand(newLintCommand())
	rootCmd.AddCommand(newDevCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

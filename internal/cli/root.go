// Package cli implements the eventdiscovery command line.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command for the eventdiscovery CLI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eventdiscovery",
		Short: "Event listing and discovery service",
		Long: `Serve and query an event catalog.

The event source (seed, graphql or postgres) and the cache are configured
through environment variables or a .env file.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewQueryCommand())

	return cmd
}

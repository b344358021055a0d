// Package cli implements the najdeno command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/erazemk/najdeno/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Config  *config.Config
	BaseURL string
}

// NewRootCommand creates the root command. cfg supplies flag defaults.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	opts := &RootOptions{Config: cfg}

	cmd := &cobra.Command{
		Use:   "najdeno",
		Short: "Najdeno - lost and found board",
		Long: `A lost-and-found board. People report items they lost or found,
and browse or search the lost and found listings.

Run "najdeno serve" to start the server; the items commands talk to a
running server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.BaseURL, "base-url", cfg.BaseURL, "server base URL for the items commands")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewItemsCommand(opts))

	return cmd
}

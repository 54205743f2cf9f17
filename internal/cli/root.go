// Package cli implements the vectree command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the vectree command tree. Each call returns fresh
// commands with their own flag state.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "vectree",
		Short: "vectree - tree-based nearest-neighbour search",
		Long: `vectree builds a KD tree or a random projection tree over a CSV
training set and answers k-nearest-neighbour queries read from a CSV test set.

Datasets may be local files, s3://bucket/key or minio://bucket/key URIs.
A trailing slash loads every blob under the prefix. Files ending in .zst,
.gz or .lz4 are decompressed.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "YAML file with default flag values")
	root.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(newSearchCommand())
	root.AddCommand(newBruteCommand())

	return root
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/vectree/index/bruteforce"
	"github.com/hupe1980/vectree/model"
	"github.com/hupe1980/vectree/resource"
)

func newBruteCommand() *cobra.Command {
	cfg := &Config{}

	cmd := &cobra.Command{
		Use:   "brute",
		Short: "Answer queries by exhaustive comparison",
		Long: `Compare every test vector against every training vector and print the
k nearest. Use it as the exact baseline for the tree searches.

Examples:
  vectree brute --train train.csv --test test.csv -k 4 --queries 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := resolve(cmd, cfg); err != nil {
				return err
			}
			return runBrute(cmd, cfg)
		},
	}

	bindCommon(cmd, cfg)

	return cmd
}

func runBrute(cmd *cobra.Command, cfg *Config) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: cfg.IOLimit})

	src, err := OpenSource(ctx, cfg.Train)
	if err != nil {
		return err
	}

	train, err := loadAll(ctx, src, rc)
	if err != nil {
		return fmt.Errorf("training set: %w", err)
	}

	queries, err := loadQueries(ctx, cfg, rc)
	if err != nil {
		return err
	}

	start := time.Now()
	results := make([][]model.SearchResult, len(queries))
	for i, q := range queries {
		res, err := bruteforce.Search(train, q, cfg.K)
		if err != nil {
			return fmt.Errorf("query %d: %w", i, err)
		}
		results[i] = res
	}

	report := newReport("brute-force", len(train), cfg.K, time.Since(start))
	for i, res := range results {
		report.Queries = append(report.Queries, QueryReport{Query: i, Neighbors: res})
	}

	return report.Write(cmd.OutOrStdout(), cfg.Format)
}

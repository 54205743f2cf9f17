package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/hupe1980/vectree"
	"github.com/hupe1980/vectree/dataset"
	"github.com/hupe1980/vectree/index"
	"github.com/hupe1980/vectree/model"
	"github.com/hupe1980/vectree/observability"
	"github.com/hupe1980/vectree/resource"
	"github.com/hupe1980/vectree/vector"
)

func newSearchCommand() *cobra.Command {
	cfg := &Config{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Build a tree over the training set and query it",
		Long: `Build a KD or RP tree over the training set and print the k nearest
neighbours of the first --queries test vectors.

Examples:
  vectree search --train train.csv --test test.csv --kind kd -k 5
  vectree search --train s3://data/train.csv.zst --test test.csv --kind rp --seed 7
  vectree search --config run.yaml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := resolve(cmd, cfg); err != nil {
				return err
			}
			return runSearch(cmd, cfg)
		},
	}

	bindCommon(cmd, cfg)

	f := cmd.Flags()
	f.StringVar(&cfg.Kind, "kind", "kd", "Tree kind (kd, rp)")
	f.IntVar(&cfg.LeafSize, "leaf-size", index.DefaultLeafSize, "Subset size below which a node becomes a leaf")
	f.Uint64Var(&cfg.Seed, "seed", 0, "RP tree seed (0 = random)")
	f.StringVar(&cfg.Policy, "policy", index.PolicyMaxHeap.String(), "Top-k policy (max-heap, evict-newest)")
	f.BoolVar(&cfg.DumpTree, "dump-tree", false, "Print the indices held by every tree node")
	f.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address during the run")
	f.IntVar(&cfg.Concurrency, "concurrency", 0, "Concurrent queries (0 = GOMAXPROCS)")

	return cmd
}

func runSearch(cmd *cobra.Command, cfg *Config) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	kind, err := model.ParseKind(cfg.Kind)
	if err != nil {
		return err
	}
	policy, err := index.ParseResultPolicy(cfg.Policy)
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	rc := resource.NewController(resource.Config{
		MaxConcurrentSearches: int64(concurrency),
		IOLimitBytesPerSec:    cfg.IOLimit,
	})

	opts := []vectree.Option{
		vectree.WithLeafSize(cfg.LeafSize),
		vectree.WithSeed(cfg.Seed),
		vectree.WithResultPolicy(policy),
		vectree.WithLogLevel(level),
		vectree.WithResourceController(rc),
	}

	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		mc, err := observability.NewPrometheusCollector(reg)
		if err != nil {
			return err
		}
		stop, err := serveMetrics(cfg.MetricsAddr, reg)
		if err != nil {
			return err
		}
		defer stop()
		opts = append(opts, vectree.WithMetricsCollector(mc))
	}

	db, err := vectree.New(kind, opts...)
	if err != nil {
		return err
	}
	defer db.Close()

	train, err := OpenSource(ctx, cfg.Train)
	if err != nil {
		return err
	}
	if train.Prefix {
		_, err = db.IngestPrefix(ctx, train.Store, train.Name)
	} else {
		_, err = db.Ingest(ctx, train.Store, train.Name)
	}
	if err != nil {
		return fmt.Errorf("training set: %w", err)
	}

	queries, err := loadQueries(ctx, cfg, rc)
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := db.SearchBatch(ctx, queries, cfg.K)
	if err != nil {
		return err
	}

	report := newReport(kind.String()+"-tree", db.Len(), cfg.K, time.Since(start))
	stats := db.Stats()
	report.Stats = &stats
	for i, res := range results {
		report.Queries = append(report.Queries, QueryReport{Query: i, Neighbors: res})
	}

	out := cmd.OutOrStdout()
	if err := report.Write(out, cfg.Format); err != nil {
		return err
	}
	if cfg.DumpTree {
		return db.DumpTree(out)
	}
	return nil
}

// loadQueries reads the test set and keeps its first cfg.Queries rows.
func loadQueries(ctx context.Context, cfg *Config, rc *resource.Controller) ([]vector.Vector, error) {
	src, err := OpenSource(ctx, cfg.Test)
	if err != nil {
		return nil, err
	}

	vs, err := loadAll(ctx, src, rc)
	if err != nil {
		return nil, fmt.Errorf("test set: %w", err)
	}

	if cfg.Queries == 0 {
		return vs, nil
	}
	if cfg.Queries > len(vs) {
		return nil, fmt.Errorf("number of queries (%d) is greater than the size of the test set (%d)", cfg.Queries, len(vs))
	}
	return vs[:cfg.Queries], nil
}

func serveMetrics(addr string, reg *prometheus.Registry) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() { _ = srv.Serve(ln) }()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}

func loadAll(ctx context.Context, src Source, rc *resource.Controller) ([]vector.Vector, error) {
	if src.Prefix {
		return dataset.LoadPrefix(ctx, src.Store, src.Name, dataset.WithController(rc))
	}
	return dataset.Load(ctx, src.Store, src.Name, dataset.WithController(rc))
}

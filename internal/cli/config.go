package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/vectree/codec"
	"github.com/hupe1980/vectree/index"
)

// Config holds every setting a run needs. Values read from --config are
// overridden by flags given on the command line.
type Config struct {
	Train       string `yaml:"train"`
	Test        string `yaml:"test"`
	Kind        string `yaml:"kind"`
	LeafSize    int    `yaml:"leafSize"`
	K           int    `yaml:"k"`
	Queries     int    `yaml:"queries"`
	Seed        uint64 `yaml:"seed"`
	Policy      string `yaml:"policy"`
	Format      string `yaml:"format"`
	DumpTree    bool   `yaml:"dumpTree"`
	MetricsAddr string `yaml:"metricsAddr"`
	LogLevel    string `yaml:"logLevel"`
	IOLimit     int64  `yaml:"ioLimit"`
	Concurrency int    `yaml:"concurrency"`
}

// Defaults for flags shared by all commands.
const (
	DefaultK       = 5
	DefaultQueries = 0
	DefaultFormat  = "text"
)

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := (codec.YAML{}).Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge copies every non-zero value of file into c unless the matching flag
// was set explicitly.
func (c *Config) Merge(file Config, changed func(name string) bool) {
	apply := func(flag string, isSet bool, set func()) {
		if isSet && !changed(flag) {
			set()
		}
	}

	apply("train", file.Train != "", func() { c.Train = file.Train })
	apply("test", file.Test != "", func() { c.Test = file.Test })
	apply("kind", file.Kind != "", func() { c.Kind = file.Kind })
	apply("leaf-size", file.LeafSize != 0, func() { c.LeafSize = file.LeafSize })
	apply("k", file.K != 0, func() { c.K = file.K })
	apply("queries", file.Queries != 0, func() { c.Queries = file.Queries })
	apply("seed", file.Seed != 0, func() { c.Seed = file.Seed })
	apply("policy", file.Policy != "", func() { c.Policy = file.Policy })
	apply("format", file.Format != "", func() { c.Format = file.Format })
	apply("dump-tree", file.DumpTree, func() { c.DumpTree = file.DumpTree })
	apply("metrics-addr", file.MetricsAddr != "", func() { c.MetricsAddr = file.MetricsAddr })
	apply("log-level", file.LogLevel != "", func() { c.LogLevel = file.LogLevel })
	apply("io-limit", file.IOLimit != 0, func() { c.IOLimit = file.IOLimit })
	apply("concurrency", file.Concurrency != 0, func() { c.Concurrency = file.Concurrency })
}

// Validate checks the settings shared by all commands.
func (c *Config) Validate() error {
	if c.Train == "" {
		return fmt.Errorf("--train is required")
	}
	if c.Test == "" {
		return fmt.Errorf("--test is required")
	}
	if c.K <= 0 {
		return fmt.Errorf("-k must be positive, got %d", c.K)
	}
	if c.Queries < 0 {
		return fmt.Errorf("--queries must not be negative, got %d", c.Queries)
	}
	if c.Format != DefaultFormat {
		if _, ok := codec.ByName(c.Format); !ok {
			return fmt.Errorf("unknown output format %q", c.Format)
		}
	}
	if _, err := index.ParseResultPolicy(c.Policy); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// bindCommon registers the flags every command shares.
func bindCommon(cmd *cobra.Command, cfg *Config) {
	f := cmd.Flags()
	f.StringVar(&cfg.Train, "train", "", "Training dataset (path, s3://bucket/key, minio://bucket/key)")
	f.StringVar(&cfg.Test, "test", "", "Query dataset (path, s3://bucket/key, minio://bucket/key)")
	f.IntVarP(&cfg.K, "k", "k", DefaultK, "Number of nearest neighbours per query")
	f.IntVarP(&cfg.Queries, "queries", "q", DefaultQueries, "Number of test vectors to query (0 = all)")
	f.StringVar(&cfg.Format, "format", DefaultFormat, "Output format (text, json, go-json, yaml)")
	f.Int64Var(&cfg.IOLimit, "io-limit", 0, "Dataset read limit in bytes per second (0 = unlimited)")
	f.Bool("json", false, "Shorthand for --format json")
}

// resolve merges the config file and shorthand flags into cfg.
func resolve(cmd *cobra.Command, cfg *Config) error {
	changed := func(name string) bool {
		if cmd.Flags().Changed(name) {
			return true
		}
		if name == "format" {
			return cmd.Flags().Changed("json")
		}
		return false
	}

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return err
		}
		cfg.Merge(file, changed)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		cfg.Format = "json"
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); cmd.Flags().Changed("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = lvl
	}

	return cfg.Validate()
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/roach88/sortstep/internal/bench"
	"github.com/roach88/sortstep/internal/engine"
	"github.com/roach88/sortstep/internal/store"
	"github.com/roach88/sortstep/internal/workload"
)

// BenchOptions holds flags for the bench command.
type BenchOptions struct {
	*RootOptions
	Plan       string
	Sizes      []int
	Runs       int
	Seed       uint64
	Pattern    string
	Algorithms []string
	Database   string
	Lang       string

	// Clock overrides the wall clock (for testing).
	Clock bench.Clock
}

// BenchOutput is the JSON payload of the bench command.
type BenchOutput struct {
	*bench.Report
	BenchID string `json:"bench_id,omitempty"`
}

// NewBenchCommand creates the bench command.
func NewBenchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BenchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare algorithm running times",
		Long: `Time every selected algorithm over generated inputs.

Each size gets one input array, shared by all algorithms. Runs are
timed individually and reported as average, min and max, with the
fastest and slowest algorithm per size.

A CUE plan file supplies the whole configuration; flags given on the
command line override the plan.

Exit codes:
  0 - Benchmark completed
  2 - Command error (invalid plan, unknown algorithm, interrupted, etc.)

Examples:
  sortstep bench
  sortstep bench --sizes 100,1000 --runs 5 --pattern nearly_sorted
  sortstep bench --plan ./plans/quick_vs_merge.cue --db ./runs.db
  sortstep bench --algorithms merge,quick --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(opts, cmd)
		},
	}

	def := bench.DefaultConfig()
	cmd.Flags().StringVar(&opts.Plan, "plan", "", "CUE benchmark plan file")
	cmd.Flags().IntSliceVar(&opts.Sizes, "sizes", def.Sizes, "array sizes")
	cmd.Flags().IntVar(&opts.Runs, "runs", def.Runs, "timed runs per algorithm and size")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", def.Seed, "input generator seed")
	cmd.Flags().StringVar(&opts.Pattern, "pattern", string(def.Pattern), "input pattern")
	cmd.Flags().StringSliceVar(&opts.Algorithms, "algorithms", nil, "algorithms to compare (default all)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite run log (optional)")
	cmd.Flags().StringVar(&opts.Lang, "lang", "en", "language tag for number formatting")

	return cmd
}

func runBench(opts *BenchOptions, cmd *cobra.Command) error {
	logger := opts.logger(cmd)

	cfg, err := opts.config(cmd)
	if err != nil {
		if workload.IsLoadError(err, workload.ErrCodeRead) {
			return WrapExitError(ExitCommandError, "failed to read plan", err)
		}
		return WrapExitError(ExitCommandError, "invalid benchmark config", err)
	}

	tag, err := language.Parse(opts.Lang)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --lang", err)
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, stopping benchmark", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	runnerOpts := []bench.Option{bench.WithLogger(logger)}
	if opts.Clock != nil {
		runnerOpts = append(runnerOpts, bench.WithClock(opts.Clock))
	}

	logger.Debug("benchmark starting", "sizes", cfg.Sizes, "runs", cfg.Runs, "pattern", cfg.Pattern)
	rep, err := bench.New(runnerOpts...).Run(ctx, cfg)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return WrapExitError(ExitCommandError, "benchmark interrupted", err)
		}
		return WrapExitError(ExitCommandError, "benchmark failed", err)
	}

	out := BenchOutput{Report: rep}
	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()

		out.BenchID, err = st.WriteBench(ctx, rep)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to record benchmark", err)
		}
		logger.Info("benchmark recorded", "bench_id", out.BenchID)
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(out)
	}

	if err := rep.WriteText(cmd.OutOrStdout(), tag); err != nil {
		return err
	}
	if out.BenchID != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Bench: %s\n", out.BenchID)
	}
	return nil
}

// config builds the benchmark configuration: the plan if given, else the
// defaults, then any flag set explicitly on the command line.
func (o *BenchOptions) config(cmd *cobra.Command) (bench.Config, error) {
	cfg := bench.DefaultConfig()
	if o.Plan != "" {
		plan, err := workload.Load(o.Plan)
		if err != nil {
			return bench.Config{}, err
		}
		cfg = plan.Config()
		o.verboseLog(cmd, "loaded plan %q from %s", plan.Name, o.Plan)
	}

	flags := cmd.Flags()
	if o.Plan == "" || flags.Changed("sizes") {
		cfg.Sizes = o.Sizes
	}
	if o.Plan == "" || flags.Changed("runs") {
		cfg.Runs = o.Runs
	}
	if o.Plan == "" || flags.Changed("seed") {
		cfg.Seed = o.Seed
	}
	if o.Plan == "" || flags.Changed("pattern") {
		p, err := bench.ParsePattern(o.Pattern)
		if err != nil {
			return bench.Config{}, err
		}
		cfg.Pattern = p
	}
	if flags.Changed("algorithms") {
		cfg.Algorithms = cfg.Algorithms[:0:0]
		for _, name := range o.Algorithms {
			alg, err := engine.Lookup(name)
			if err != nil {
				return bench.Config{}, err
			}
			cfg.Algorithms = append(cfg.Algorithms, alg)
		}
	}

	if err := cfg.Validate(); err != nil {
		return bench.Config{}, err
	}
	return cfg, nil
}

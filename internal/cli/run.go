package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sortstep/internal/bench"
	"github.com/roach88/sortstep/internal/engine"
	"github.com/roach88/sortstep/internal/step"
	"github.com/roach88/sortstep/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Input    string
	Size     int
	Pattern  string
	Seed     uint64
	Database string
	Quiet    bool

	// IDGenerator overrides run ids in the database (for testing).
	// If nil, the store uses UUIDv7.
	IDGenerator store.IDGenerator
}

// RunOutput is the JSON payload of the run command.
type RunOutput struct {
	Algorithm string           `json:"algorithm"`
	Input     []int            `json:"input"`
	Final     []int            `json:"final"`
	Metrics   step.Metrics     `json:"metrics"`
	Summary   string           `json:"summary"`
	Steps     []map[string]any `json:"steps,omitempty"`
	RunID     string           `json:"run_id,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <algorithm>",
		Short: "Sort an array and print every step",
		Long: `Sort an array with one algorithm and print the steps it emits.

The algorithm is a display name ("Merge Sort") or key ("merge"). The
array comes from --input, or is generated with --size, --pattern and
--seed. With --db the run and all of its steps are written to the run
log for later replay and trace queries.

Examples:
  sortstep run bubble --input 5,3,8,1
  sortstep run "Quick Sort" --size 20 --pattern reversed
  sortstep run merge --size 1000 --quiet --db ./runs.db
  sortstep run heap --input 3,1,2 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Input, "input", "", "comma-separated integers to sort")
	cmd.Flags().IntVar(&opts.Size, "size", 10, "generated array size when --input is not set")
	cmd.Flags().StringVar(&opts.Pattern, "pattern", string(bench.PatternRandom), "generated input pattern")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 1, "generator seed")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite run log (optional)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "print only the summary")

	return cmd
}

func runSort(opts *RunOptions, name string, cmd *cobra.Command) error {
	alg, err := engine.Lookup(name)
	if err != nil {
		return WrapExitError(ExitCommandError, errorCodeFor(err), err)
	}

	input, err := opts.resolveInput()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid input", err)
	}

	r, err := engine.Start(alg, input)
	if err != nil {
		return WrapExitError(ExitCommandError, errorCodeFor(err), err)
	}
	steps := engine.Collect(r)
	opts.verboseLog(cmd, "%s emitted %d steps for %d elements", alg, len(steps), len(input))

	out := RunOutput{
		Algorithm: alg.String(),
		Input:     input,
		Final:     r.Snapshot(),
		Metrics:   r.Metrics(),
		Summary:   steps[len(steps)-1].Description,
	}

	if opts.Database != "" {
		id, err := recordRun(cmd.Context(), opts, alg, input, steps)
		if err != nil {
			return err
		}
		out.RunID = id
	}

	if opts.Format == "json" {
		if !opts.Quiet {
			out.Steps = make([]map[string]any, len(steps))
			for i, s := range steps {
				out.Steps[i] = step.CanonicalObject(s)
			}
		}
		return opts.formatter(cmd).encode(CLIResponse{Status: "ok", Data: out, RunID: out.RunID})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s on %d elements\n", out.Algorithm, len(input))
	if !opts.Quiet {
		fmt.Fprintf(w, "Input: %v\n", input)
		for i, s := range steps[:len(steps)-1] {
			fmt.Fprintf(w, "%4d  %-18s %s\n", i, s, s.Description)
		}
		fmt.Fprintf(w, "Final: %v\n", out.Final)
	}
	fmt.Fprintln(w, out.Summary)
	if out.RunID != "" {
		fmt.Fprintf(w, "Run: %s\n", out.RunID)
	}
	return nil
}

// resolveInput parses --input, or generates an array from the pattern flags.
func (o *RunOptions) resolveInput() ([]int, error) {
	if o.Input != "" {
		return parseInts(o.Input)
	}
	if o.Size < 0 {
		return nil, fmt.Errorf("size must be non-negative, got %d", o.Size)
	}
	p, err := bench.ParsePattern(o.Pattern)
	if err != nil {
		return nil, err
	}
	return bench.Generate(p, o.Size, bench.NewRand(o.Seed))
}

// parseInts parses a comma-separated integer list. Blank entries are errors.
func parseInts(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	out := make([]int, 0, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("element %d: %q is not an integer", i, f)
		}
		out = append(out, n)
	}
	return out, nil
}

// recordRun writes the run to the database and returns its id.
func recordRun(ctx context.Context, opts *RunOptions, alg engine.Algorithm, input []int, steps []step.Step[int]) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var storeOpts []store.Option
	if opts.IDGenerator != nil {
		storeOpts = append(storeOpts, store.WithIDGenerator(opts.IDGenerator))
	}
	st, err := store.Open(opts.Database, storeOpts...)
	if err != nil {
		return "", WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	run, err := st.WriteRun(ctx, alg, input, steps)
	if err != nil {
		return "", WrapExitError(ExitCommandError, "failed to record run", err)
	}
	return run.ID, nil
}

package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sortstep/internal/query"
	"github.com/roach88/sortstep/internal/step"
	"github.com/roach88/sortstep/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	RunID    string   // optional - defaults to the latest run
	Where    []string // step filters, ANDed
	Limit    int
}

// TraceResult holds the trace output.
type TraceResult struct {
	Run   *store.Run       `json:"run"`
	Steps []map[string]any `json:"steps"`
	Stats TraceStats       `json:"stats"`
}

// TraceStats counts the matched steps by kind.
type TraceStats struct {
	Matched int            `json:"matched"`
	ByKind  map[string]int `json:"by_kind"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Query the steps of a stored run",
		Long: `Print the steps of one stored run, optionally filtered.

Each --where flag is a comma-separated list of column=value terms over
kind, i, j and value; alternatives are separated by "|". All terms and
all flags must match. Steps are always printed in emission order.

Examples:
  sortstep trace --db ./runs.db
  sortstep trace --db ./runs.db --run 0192a4c5-... --where kind=swap
  sortstep trace --db ./runs.db --where "kind=compare|swap,i=0"
  sortstep trace --db ./runs.db --where kind=overwrite --limit 10 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run id to trace (default latest)")
	cmd.Flags().StringArrayVar(&opts.Where, "where", nil, "step filter, e.g. kind=swap,i=0")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum steps to print (0 for all)")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	where, err := query.ParseFilters(opts.Where)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --where", err)
	}
	if opts.Limit < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid --limit %d", opts.Limit))
	}

	st, err := openExisting(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	var run *store.Run
	if opts.RunID != "" {
		run, err = st.GetRun(ctx, opts.RunID)
	} else {
		run, err = st.LatestRun(ctx)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if opts.RunID != "" {
				return NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", opts.RunID))
			}
			return NewExitError(ExitCommandError, "no runs in database")
		}
		return WrapExitError(ExitCommandError, "failed to load run", err)
	}

	found, err := st.QuerySteps(ctx, query.Filter{RunID: run.ID, Where: where, Limit: opts.Limit})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to query steps", err)
	}
	opts.verboseLog(cmd, "run %s: %d of %d steps matched", run.ID, len(found), run.StepCount)

	result := TraceResult{
		Run:   run,
		Steps: make([]map[string]any, len(found)),
		Stats: TraceStats{Matched: len(found), ByKind: map[string]int{}},
	}
	for i, s := range found {
		obj := step.CanonicalObject(s.Step)
		obj["seq"] = s.Seq
		result.Steps[i] = obj
		result.Stats.ByKind[s.Step.Kind.String()]++
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(result)
	}
	return outputTraceText(cmd, run, found)
}

// outputTraceText prints the run header and one line per matched step.
func outputTraceText(cmd *cobra.Command, run *store.Run, found []store.StoredStep) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Run: %s\n", run.ID)
	fmt.Fprintf(w, "Algorithm: %s\n", run.Algorithm)
	fmt.Fprintf(w, "Input: %v\n", run.Input)
	fmt.Fprintf(w, "Final: %v\n", run.Final)
	fmt.Fprintln(w)

	if len(found) == 0 {
		fmt.Fprintln(w, "No matching steps.")
		return nil
	}
	for _, s := range found {
		fmt.Fprintf(w, "%4d  %-18s %s\n", s.Seq, s.Step, s.Step.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d of %d steps\n", len(found), run.StepCount)
	return nil
}

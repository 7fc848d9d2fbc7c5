package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sortstep/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	RunID    string // optional - specific run only
}

// ReplaySummary holds the overall replay result.
type ReplaySummary struct {
	Runs      []*store.ReplayResult `json:"runs"`
	TotalRuns int                   `json:"total_runs"`
	AllOK     bool                  `json:"all_ok"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay stored runs and verify determinism",
		Long: `Replay recorded runs from the run log.

For each run the stored steps are applied to the stored input and must
reproduce the stored final array in sorted order. The algorithm is then
executed again over the same input; its steps must match the stored
sequence exactly.

Exit codes:
  0 - All runs replayed cleanly
  1 - At least one run failed verification
  2 - Command error (database not found, unknown run, etc.)

Examples:
  sortstep replay --db ./runs.db
  sortstep replay --db ./runs.db --run 0192a4c5-...
  sortstep replay --db ./runs.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "replay specific run only")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := openExisting(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	var runIDs []string
	if opts.RunID != "" {
		runIDs = []string{opts.RunID}
	} else {
		runs, err := st.ListRuns(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
		for _, r := range runs {
			runIDs = append(runIDs, r.ID)
		}
	}

	summary := ReplaySummary{
		Runs:      make([]*store.ReplayResult, 0, len(runIDs)),
		TotalRuns: len(runIDs),
		AllOK:     true,
	}

	for _, id := range runIDs {
		res, err := st.ReplayRun(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", id))
			}
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay run %s", id), err)
		}
		opts.verboseLog(cmd, "replayed %s: %d steps", id, res.StepCount)

		summary.Runs = append(summary.Runs, res)
		if !res.OK() {
			summary.AllOK = false
		}
	}

	if opts.Format == "json" {
		return outputReplayJSON(opts, cmd, summary)
	}
	return outputReplayText(cmd, summary, opts.Verbose)
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(opts *ReplayOptions, cmd *cobra.Command, summary ReplaySummary) error {
	response := CLIResponse{
		Status: "ok",
		Data:   summary,
	}

	if !summary.AllOK {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_REPLAY",
			Message: "replay verification failed",
		}
	}

	if err := opts.formatter(cmd).encode(response); err != nil {
		return err
	}

	if !summary.AllOK {
		return NewExitError(ExitFailure, "replay verification failed")
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(cmd *cobra.Command, summary ReplaySummary, verbose bool) error {
	w := cmd.OutOrStdout()

	if summary.TotalRuns == 0 {
		fmt.Fprintln(w, "No runs found in database.")
		return nil
	}

	fmt.Fprintf(w, "Replay Summary: %d run(s)\n", summary.TotalRuns)
	fmt.Fprintln(w)

	for _, res := range summary.Runs {
		status := "✓"
		if !res.OK() {
			status = "✗"
		}

		fmt.Fprintf(w, "%s Run: %s (%s, %d steps)\n", status, res.RunID, res.Algorithm, res.StepCount)
		if res.Mismatch != "" {
			fmt.Fprintf(w, "  %s\n", res.Mismatch)
		}
		if verbose {
			fmt.Fprintf(w, "  Stored digest:   %s\n", res.StoredDigest)
			fmt.Fprintf(w, "  Replayed digest: %s\n", res.ReplayDigest)
		}
	}

	fmt.Fprintln(w)
	if !summary.AllOK {
		fmt.Fprintln(w, "✗ Replay verification failed")
		return NewExitError(ExitFailure, "replay verification failed")
	}

	fmt.Fprintln(w, "✓ All runs replayed deterministically")
	return nil
}

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/sortstep/internal/engine"
)

// AlgorithmInfo is one row of the list command output.
type AlgorithmInfo struct {
	Name    string `json:"name"`
	Key     string `json:"key"`
	Stable  bool   `json:"stable"`
	Best    string `json:"best"`
	Average string `json:"average"`
	Worst   string `json:"worst"`
	Reports string `json:"reports"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered algorithms",
		Long: `List every registered sorting algorithm in registry order with its
short key, stability and complexity.

Examples:
  sortstep list
  sortstep list --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	entries := engine.Entries()
	infos := make([]AlgorithmInfo, len(entries))
	for i, e := range entries {
		infos[i] = AlgorithmInfo{
			Name:    e.Name,
			Key:     e.Key,
			Stable:  e.Stable,
			Best:    e.Best,
			Average: e.Average,
			Worst:   e.Worst,
			Reports: e.Reports.String(),
		}
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(infos)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKEY\tSTABLE\tBEST\tAVERAGE\tWORST")
	for _, info := range infos {
		stable := "no"
		if info.Stable {
			stable = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", info.Name, info.Key, stable, info.Best, info.Average, info.Worst)
	}
	return tw.Flush()
}

package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/roach88/sortstep/internal/engine"
	"github.com/roach88/sortstep/internal/render"
)

// VisualizeOptions holds flags for the visualize command.
type VisualizeOptions struct {
	*RootOptions
	Algorithm string
	Size      int
	Speed     int // milliseconds between steps
	Seed      uint64
	Height    int
	Autostart bool
}

// NewVisualizeCommand creates the visualize command.
func NewVisualizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VisualizeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "visualize",
		Short: "Watch a sort in the terminal",
		Long: `Animate a sort as bars in the terminal.

Compared bars are red, swapped bars green and written bars yellow.

Keys:
  space  start, pause or resume
  n      one step while paused
  + / -  faster / slower
  g      new random array
  tab    next algorithm
  q      quit

Examples:
  sortstep visualize
  sortstep visualize --algorithm merge --size 80 --speed 10`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVisualize(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Algorithm, "algorithm", "bubble", "algorithm name or key")
	cmd.Flags().IntVar(&opts.Size, "size", render.DefaultSize, "array size (10-200)")
	cmd.Flags().IntVar(&opts.Speed, "speed", int(render.DefaultDelay/time.Millisecond), "delay between steps in ms (1-200)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "array seed (0 picks one from the clock)")
	cmd.Flags().IntVar(&opts.Height, "height", render.DefaultHeight, "bar area height in rows")
	cmd.Flags().BoolVar(&opts.Autostart, "start", false, "start sorting immediately")

	return cmd
}

// visualizeConfig validates flags into a render configuration.
func (o *VisualizeOptions) visualizeConfig() (render.Config, error) {
	alg, err := engine.Lookup(o.Algorithm)
	if err != nil {
		return render.Config{}, WrapExitError(ExitCommandError, errorCodeFor(err), err)
	}

	seed := o.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return render.Config{
		Algorithm: alg,
		Size:      o.Size,
		Delay:     time.Duration(o.Speed) * time.Millisecond,
		Seed:      seed,
		Height:    o.Height,
		Autostart: o.Autostart,
	}, nil
}

func runVisualize(opts *VisualizeOptions, cmd *cobra.Command) error {
	cfg, err := opts.visualizeConfig()
	if err != nil {
		return err
	}
	opts.verboseLog(cmd, "visualizing %s over %d elements, seed %d", cfg.Algorithm, cfg.Size, cfg.Seed)

	p := tea.NewProgram(render.NewModel(cfg),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return WrapExitError(ExitFailure, "visualizer error", err)
	}
	return nil
}

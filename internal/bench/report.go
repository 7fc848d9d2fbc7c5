package bench

import (
	"io"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Report is the outcome of one benchmark. Results are grouped by size in
// Config.Sizes order, algorithms in Config.Algorithms order within a size.
type Report struct {
	Config    Config    `json:"config"`
	Results   []Result  `json:"results"`
	Summaries []Summary `json:"summaries"`
}

// BySize returns the results measured at size n.
func (rep *Report) BySize(n int) []Result {
	var out []Result
	for _, res := range rep.Results {
		if res.Size == n {
			out = append(out, res)
		}
	}
	return out
}

// WriteText renders a human-readable table, formatting numbers for tag
// (digit grouping, decimal separator).
func (rep *Report) WriteText(w io.Writer, tag language.Tag) error {
	p := message.NewPrinter(tag)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	p.Fprintf(tw, "Benchmark: pattern=%s seed=%d runs=%d\n", rep.Config.Pattern, rep.Config.Seed, rep.Config.Runs)
	for _, s := range rep.Summaries {
		p.Fprintf(tw, "\nSize %d\n", s.Size)
		p.Fprintf(tw, "Algorithm\tAvg (ms)\tMin (ms)\tMax (ms)\tComparisons\tSwaps\tWrites\n")
		for _, res := range rep.BySize(s.Size) {
			p.Fprintf(tw, "%s\t%.3f\t%.3f\t%.3f\t%d\t%d\t%d\n",
				res.Algorithm,
				millis(res.Average),
				millis(res.Min),
				millis(res.Max),
				res.Metrics.Comparisons,
				res.Metrics.Swaps,
				res.Metrics.Writes,
			)
		}
		if s.Ratio > 0 {
			p.Fprintf(tw, "Fastest: %s | Slowest: %s | Ratio: %.1fx\n", s.Fastest, s.Slowest, s.Ratio)
		} else {
			p.Fprintf(tw, "Fastest: %s | Slowest: %s\n", s.Fastest, s.Slowest)
		}
	}
	return tw.Flush()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/sortstep/internal/engine"
	"github.com/roach88/sortstep/internal/step"
)

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("invalid benchmark config")

// Clock is the only source of time for measurements.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config selects what to measure.
type Config struct {
	Sizes      []int              `json:"sizes"`
	Runs       int                `json:"runs"`
	Seed       uint64             `json:"seed"`
	Pattern    Pattern            `json:"pattern"`
	Algorithms []engine.Algorithm `json:"-"`
}

// DefaultConfig measures every engine at sizes 100, 500 and 1000 with
// three runs each over random input.
func DefaultConfig() Config {
	return Config{
		Sizes:      []int{100, 500, 1000},
		Runs:       3,
		Seed:       1,
		Pattern:    PatternRandom,
		Algorithms: engine.Algorithms(),
	}
}

// Validate checks the config and fills in defaults for omitted algorithms
// and pattern.
func (c *Config) Validate() error {
	if len(c.Sizes) == 0 {
		return fmt.Errorf("%w: at least one size is required", ErrInvalidConfig)
	}
	for _, n := range c.Sizes {
		if n < 1 {
			return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidConfig, n)
		}
	}
	if c.Runs < 1 {
		return fmt.Errorf("%w: runs must be positive, got %d", ErrInvalidConfig, c.Runs)
	}
	if c.Pattern == "" {
		c.Pattern = PatternRandom
	}
	if _, err := ParsePattern(string(c.Pattern)); err != nil {
		return err
	}
	if len(c.Algorithms) == 0 {
		c.Algorithms = engine.Algorithms()
	}
	for _, alg := range c.Algorithms {
		if !alg.Valid() {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, engine.NewUnknownAlgorithmError(alg.String()))
		}
	}
	return nil
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(r *Runner) { r.clock = c }
}

// WithLogger sets the logger used for progress messages.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// Runner executes benchmarks.
//
// Thread-safety: a Runner holds no per-benchmark state; concurrent calls
// to Run are safe if the Clock is.
type Runner struct {
	clock  Clock
	logger *slog.Logger
}

// New creates a Runner using the real clock and slog.Default.
func New(opts ...Option) *Runner {
	r := &Runner{clock: realClock{}, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run measures every (size, algorithm) pair in cfg.
//
// ctx is checked before each individual run; a cancelled benchmark returns
// ctx.Err() and no partial report.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := NewRand(cfg.Seed)
	rep := &Report{Config: cfg}

	for _, n := range cfg.Sizes {
		input, err := Generate(cfg.Pattern, n, rng)
		if err != nil {
			return nil, err
		}

		r.logger.Debug("benchmark size", "size", n, "pattern", cfg.Pattern, "algorithms", len(cfg.Algorithms))

		group := make([]Result, 0, len(cfg.Algorithms))
		for _, alg := range cfg.Algorithms {
			res, err := r.measure(ctx, alg, input, cfg.Runs)
			if err != nil {
				return nil, fmt.Errorf("benchmark %s at size %d: %w", alg, n, err)
			}
			group = append(group, res)
		}

		rep.Results = append(rep.Results, group...)
		rep.Summaries = append(rep.Summaries, summarize(n, group))
	}
	return rep, nil
}

func (r *Runner) measure(ctx context.Context, alg engine.Algorithm, input []int, runs int) (Result, error) {
	res := Result{Algorithm: alg.String(), Size: len(input), Runs: runs}

	var total time.Duration
	for i := range runs {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		start := r.clock.Now()
		run, err := engine.Start(alg, input)
		if err != nil {
			return Result{}, err
		}
		m := engine.Drain(run)
		elapsed := r.clock.Now().Sub(start)

		total += elapsed
		if i == 0 || elapsed < res.Min {
			res.Min = elapsed
		}
		if elapsed > res.Max {
			res.Max = elapsed
		}
		res.Metrics = m
	}
	res.Average = total / time.Duration(runs)

	r.logger.Debug("benchmark result",
		"algorithm", res.Algorithm,
		"size", res.Size,
		"average", res.Average,
		"comparisons", res.Metrics.Comparisons,
	)
	return res, nil
}

// Result is one algorithm's timing at one size. Metrics are identical
// across runs because every run sorts the same input.
type Result struct {
	Algorithm string        `json:"algorithm"`
	Size      int           `json:"size"`
	Runs      int           `json:"runs"`
	Average   time.Duration `json:"average_ns"`
	Min       time.Duration `json:"min_ns"`
	Max       time.Duration `json:"max_ns"`
	Metrics   step.Metrics  `json:"metrics"`
}

// Summary compares the algorithms measured at one size.
type Summary struct {
	Size    int    `json:"size"`
	Fastest string `json:"fastest"`
	Slowest string `json:"slowest"`
	// Ratio is slowest/fastest average; zero when the fastest average is zero.
	Ratio float64 `json:"ratio"`
}

// summarize picks the fastest and slowest by average. Ties go to the
// algorithm listed first.
func summarize(size int, group []Result) Summary {
	s := Summary{Size: size}
	if len(group) == 0 {
		return s
	}
	fast, slow := group[0], group[0]
	for _, res := range group[1:] {
		if res.Average < fast.Average {
			fast = res
		}
		if res.Average > slow.Average {
			slow = res
		}
	}
	s.Fastest, s.Slowest = fast.Algorithm, slow.Algorithm
	if fast.Average > 0 {
		s.Ratio = float64(slow.Average) / float64(fast.Average)
	}
	return s
}

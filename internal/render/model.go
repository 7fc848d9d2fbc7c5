package render

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roach88/sortstep/internal/bench"
	"github.com/roach88/sortstep/internal/engine"
)

// Limits and defaults for the interactive controls.
const (
	MinDelay     = time.Millisecond
	MaxDelay     = 200 * time.Millisecond
	DefaultDelay = 30 * time.Millisecond
	DelayStep    = 10 * time.Millisecond

	MinSize     = 10
	MaxSize     = 200
	DefaultSize = 50

	// Generated bar values fall in [MinValue, MaxValue].
	MinValue = 5
	MaxValue = 380
)

// Config selects the initial algorithm, array and pacing.
type Config struct {
	Algorithm engine.Algorithm
	Size      int
	Delay     time.Duration
	Seed      uint64
	Height    int
	// Autostart begins sorting as soon as the program starts.
	Autostart bool
}

// Normalize fills zero fields with defaults and clamps the rest.
func (c *Config) Normalize() {
	if !c.Algorithm.Valid() {
		c.Algorithm = engine.Bubble
	}
	if c.Size == 0 {
		c.Size = DefaultSize
	}
	c.Size = min(max(c.Size, MinSize), MaxSize)
	if c.Delay == 0 {
		c.Delay = DefaultDelay
	}
	c.Delay = min(max(c.Delay, MinDelay), MaxDelay)
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
}

// tickMsg advances the run by one step. gen ties a tick to the run that
// scheduled it, so ticks of an abandoned run are dropped.
type tickMsg struct{ gen int }

// Model is the bubbletea program state.
type Model struct {
	cfg   Config
	rng   *rand.Rand
	clock bench.Clock

	values []int
	run    *engine.Run[int]
	mirror *Mirror
	gen    int

	startedAt time.Time
	elapsed   time.Duration
	err       error
}

// Option configures a Model.
type Option func(*Model)

// WithClock replaces the wall clock used for the elapsed-time display.
func WithClock(c bench.Clock) Option {
	return func(m *Model) { m.clock = c }
}

// NewModel builds a model with a freshly generated array in the Ready state.
func NewModel(cfg Config, opts ...Option) *Model {
	cfg.Normalize()
	m := &Model{
		cfg:   cfg,
		rng:   bench.NewRand(cfg.Seed),
		clock: wallClock{},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.regenerate()
	return m
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// Init starts sorting immediately when Autostart is set.
func (m *Model) Init() tea.Cmd {
	if m.cfg.Autostart {
		return m.start()
	}
	return nil
}

// Update handles keys and ticks.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.gen != m.gen || m.mirror.Status() != StatusRunning {
			return m, nil
		}
		m.advance()
		if m.mirror.Status() == StatusRunning {
			return m, m.tick()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case " ":
		switch m.mirror.Status() {
		case StatusReady:
			return m, m.start()
		case StatusRunning:
			m.pause()
		case StatusPaused:
			m.resume()
			return m, m.tick()
		}

	case "n":
		switch m.mirror.Status() {
		case StatusReady:
			m.begin()
			m.pause()
			m.advance()
		case StatusPaused:
			m.advance()
		}

	case "+", "=":
		m.cfg.Delay = max(m.cfg.Delay-DelayStep, MinDelay)

	case "-", "_":
		m.cfg.Delay = min(m.cfg.Delay+DelayStep, MaxDelay)

	case "g":
		m.regenerate()

	case "tab":
		m.cfg.Algorithm = nextAlgorithm(m.cfg.Algorithm)
		m.reset()
	}
	return m, nil
}

// View renders the current frame.
func (m *Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}
	return View(m.mirror, Info{
		Algorithm: m.cfg.Algorithm.String(),
		Delay:     m.cfg.Delay,
		Elapsed:   m.Elapsed(),
		Height:    m.cfg.Height,
	}) + "\n"
}

// Mirror exposes the current mirror.
func (m *Model) Mirror() *Mirror { return m.mirror }

// Algorithm returns the selected algorithm.
func (m *Model) Algorithm() engine.Algorithm { return m.cfg.Algorithm }

// Delay returns the pause between steps.
func (m *Model) Delay() time.Duration { return m.cfg.Delay }

// Values returns a copy of the generated input array.
func (m *Model) Values() []int { return slices.Clone(m.values) }

// Elapsed returns running time so far, excluding pauses.
func (m *Model) Elapsed() time.Duration {
	if m.mirror.Status() == StatusRunning && !m.startedAt.IsZero() {
		return m.elapsed + m.clock.Now().Sub(m.startedAt)
	}
	return m.elapsed
}

func (m *Model) start() tea.Cmd {
	m.begin()
	if m.err != nil {
		return nil
	}
	return m.tick()
}

// begin starts a run over the current values in the Running state.
func (m *Model) begin() {
	r, err := engine.Start(m.cfg.Algorithm, m.values)
	if err != nil {
		m.err = err
		return
	}
	m.run = r
	m.mirror.SetStatus(StatusRunning)
	m.startedAt = m.clock.Now()
}

func (m *Model) pause() {
	if m.mirror.Status() != StatusRunning {
		return
	}
	m.elapsed += m.clock.Now().Sub(m.startedAt)
	m.startedAt = time.Time{}
	m.mirror.SetStatus(StatusPaused)
}

func (m *Model) resume() {
	m.startedAt = m.clock.Now()
	m.mirror.SetStatus(StatusRunning)
}

// advance applies the next step of the run to the mirror.
func (m *Model) advance() {
	if m.run == nil {
		return
	}
	s, ok := m.run.Next()
	if ok {
		m.mirror.Apply(s)
	}
	if !ok || m.mirror.Status() == StatusCompleted {
		if !m.startedAt.IsZero() {
			m.elapsed += m.clock.Now().Sub(m.startedAt)
			m.startedAt = time.Time{}
		}
		m.mirror.SetStatus(StatusCompleted)
	}
}

func (m *Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.cfg.Delay, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// regenerate draws a new array and resets to Ready.
func (m *Model) regenerate() {
	m.values = make([]int, m.cfg.Size)
	for i := range m.values {
		m.values[i] = MinValue + m.rng.IntN(MaxValue-MinValue+1)
	}
	m.reset()
}

// reset abandons the current run and shows the input again.
func (m *Model) reset() {
	m.gen++
	m.run = nil
	m.err = nil
	m.mirror = NewMirror(m.values)
	m.elapsed = 0
	m.startedAt = time.Time{}
}

func nextAlgorithm(a engine.Algorithm) engine.Algorithm {
	algs := engine.Algorithms()
	i := slices.Index(algs, a)
	return algs[(i+1)%len(algs)]
}

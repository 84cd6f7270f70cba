package loop

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/pong/internal/config"
	"github.com/tomz197/pong/internal/object"
)

// State is the match phase.
type State int

const (
	StateRunning    State = iota // Ball moves every tick
	StatePaused                  // Ball frozen, paddles still respond
	StateTerminated              // Loop exits at the next tick boundary
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Options configures a match.
type Options struct {
	Logger    *log.Logger // Defaults to a discarding logger
	Listeners []Listener
	Rand      *rand.Rand // Defaults to one seeded from config.Seed or the clock

	// IdleTimeout ends Run when no input arrives for this long. Zero disables it.
	IdleTimeout time.Duration
}

// Match holds all mutable state for one game: ball, paddles and scores.
// It is owned by a single goroutine; nothing here is safe for concurrent use.
type Match struct {
	cfg          config.Config
	halfW, halfH float64

	Ball        *object.Ball
	Left, Right *object.Paddle
	Score       object.Scoreboard

	State     State
	Winner    object.Side // Set once a side reaches config.MaxScore
	TickCount uint64

	logger      *log.Logger
	listeners   []Listener
	idleTimeout time.Duration
}

// NewMatch sets up a match in an arena of width x height logical units,
// centred on the origin. The ball is served toward a random side.
func NewMatch(cfg config.Config, width, height int, opts Options) *Match {
	rng := opts.Rand
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := &Match{
		cfg:         cfg,
		halfW:       float64(width) / 2,
		halfH:       float64(height) / 2,
		State:       StateRunning,
		logger:      logger,
		listeners:   opts.Listeners,
		idleTimeout: opts.IdleTimeout,
	}
	m.Left, m.Right = object.NewPaddles(cfg, m.halfW)
	m.Ball = object.NewBall(cfg.Ball, rng)

	logger.Debug("match created", "width", width, "height", height, "max_score", cfg.MaxScore)
	return m
}

// HalfWidth is the arena's half extent on x.
func (m *Match) HalfWidth() float64 { return m.halfW }

// HalfHeight is the arena's half extent on y.
func (m *Match) HalfHeight() float64 { return m.halfH }

// Config returns the tunables the match was built with.
func (m *Match) Config() config.Config { return m.cfg }

// Paddle returns the paddle on side, or nil for SideNone.
func (m *Match) Paddle(side object.Side) *object.Paddle {
	switch side {
	case object.SideLeft:
		return m.Left
	case object.SideRight:
		return m.Right
	}
	return nil
}

// Over reports whether a winner has been declared.
func (m *Match) Over() bool {
	return m.Winner != object.SideNone
}

func (m *Match) mustBeReady() {
	if m == nil || m.Ball == nil || m.Left == nil || m.Right == nil || m.halfW <= 0 || m.halfH <= 0 {
		panic("loop: match used before setup")
	}
}

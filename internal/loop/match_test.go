package loop

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/pong/internal/config"
	"github.com/tomz197/pong/internal/input"
	"github.com/tomz197/pong/internal/object"
)

type recorder struct {
	events []Event
}

func (r *recorder) Notify(e Event) { r.events = append(r.events, e) }

func (r *recorder) kinds() []EventKind {
	var kinds []EventKind
	for _, e := range r.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func (r *recorder) find(kind EventKind) (Event, bool) {
	for _, e := range r.events {
		if e.Kind == kind {
			return e, true
		}
	}
	return Event{}, false
}

func newTestMatch(t *testing.T, mutate ...func(*config.Config)) (*Match, *recorder) {
	t.Helper()
	cfg := config.Default()
	for _, f := range mutate {
		f(&cfg)
	}
	require.NoError(t, cfg.Validate())

	rec := &recorder{}
	m := NewMatch(cfg, cfg.Width, cfg.Height, Options{
		Rand:      rand.New(rand.NewSource(1)),
		Listeners: []Listener{rec},
	})
	return m, rec
}

func place(m *Match, x, y, vx, vy float64) {
	m.Ball.X, m.Ball.Y, m.Ball.VX, m.Ball.VY = x, y, vx, vy
}

func TestNewMatch(t *testing.T) {
	m, _ := newTestMatch(t)

	assert.Equal(t, StateRunning, m.State)
	assert.Equal(t, 480.0, m.HalfWidth())
	assert.Equal(t, 300.0, m.HalfHeight())
	assert.Equal(t, -440.0, m.Left.X)
	assert.Equal(t, 440.0, m.Right.X)
	assert.Zero(t, m.Ball.X)
	assert.Zero(t, m.Ball.Y)
	assert.InDelta(t, m.Config().Ball.InitSpeed, m.Ball.Speed(), 1e-12)
	assert.Equal(t, object.SideNone, m.Winner)
}

func TestTickGutterScoring(t *testing.T) {
	testCases := []struct {
		name       string
		x, vx      float64
		left       int
		right      int
		scorer     object.Side
		servedSign float64
	}{
		{"right gutter scores for left, serve goes right", 475, 8, 1, 0, object.SideLeft, 1},
		{"left gutter scores for right, serve goes left", -475, -8, 0, 1, object.SideRight, -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, rec := newTestMatch(t)
			place(m, tc.x, 0, tc.vx, 0)

			m.Tick()

			assert.Equal(t, tc.left, m.Score.Left)
			assert.Equal(t, tc.right, m.Score.Right)
			assert.Zero(t, m.Ball.X)
			assert.Zero(t, m.Ball.Y)
			assert.Greater(t, m.Ball.VX*tc.servedSign, 0.0)
			assert.InDelta(t, m.Config().Ball.InitSpeed, m.Ball.Speed(), 1e-12)

			point, ok := rec.find(EventPoint)
			require.True(t, ok)
			assert.Equal(t, tc.scorer, point.Side)

			score, ok := rec.find(EventScoreChanged)
			require.True(t, ok)
			assert.Equal(t, tc.left, score.Left)
			assert.Equal(t, tc.right, score.Right)
		})
	}
}

func TestTickCornerBreachScores(t *testing.T) {
	m, rec := newTestMatch(t)
	place(m, 475, 295, 8, 8)

	m.Tick()

	assert.Equal(t, 1, m.Score.Left)
	assert.NotContains(t, rec.kinds(), EventWallBounce)
	assert.Zero(t, m.Ball.X)
}

func TestTickScoringSkipsPaddles(t *testing.T) {
	m, rec := newTestMatch(t)
	m.Right.X = 470
	place(m, 475, 0, 8, 0)

	m.Tick()

	assert.Equal(t, 1, m.Score.Left)
	assert.NotContains(t, rec.kinds(), EventPaddleHit)
	assert.InDelta(t, m.Config().Ball.InitSpeed, m.Ball.Speed(), 1e-12)
}

func TestTickWallBounce(t *testing.T) {
	testCases := []struct {
		name   string
		y, vy  float64
		wantVY float64
	}{
		{"top", 285, 8, -8},
		{"bottom", -285, -8, 8},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, rec := newTestMatch(t)
			place(m, 0, tc.y, 3, tc.vy)

			m.Tick()

			assert.InDelta(t, 3, m.Ball.VX, 1e-12)
			assert.InDelta(t, tc.wantVY, m.Ball.VY, 1e-12)
			assert.Contains(t, rec.kinds(), EventWallBounce)
			assert.Zero(t, m.Score.Left+m.Score.Right)
		})
	}
}

func TestTickWallNoBounceWhenLeaving(t *testing.T) {
	m, rec := newTestMatch(t)
	place(m, 0, 295, 3, -2)

	m.Tick()

	assert.Equal(t, -2.0, m.Ball.VY)
	assert.NotContains(t, rec.kinds(), EventWallBounce)
}

func TestTickPaddleHit(t *testing.T) {
	testCases := []struct {
		name   string
		x, vx  float64
		side   object.Side
		wantVX float64
	}{
		{"right paddle", 415, 8, object.SideRight, -8 * 1.06},
		{"left paddle", -415, -8, object.SideLeft, 8 * 1.06},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, rec := newTestMatch(t)
			place(m, tc.x, 0, tc.vx, 0)

			m.Tick()

			assert.InDelta(t, tc.wantVX, m.Ball.VX, 1e-9)
			assert.InDelta(t, 0, m.Ball.VY, 1e-9)

			hit, ok := rec.find(EventPaddleHit)
			require.True(t, ok)
			assert.Equal(t, tc.side, hit.Side)
		})
	}
}

func TestTickPaddleEdgeReflectsHorizontally(t *testing.T) {
	m, _ := newTestMatch(t)
	place(m, 425, 55, 4, -3)

	m.Tick()

	assert.Less(t, m.Ball.VX, 0.0)
	assert.Less(t, m.Ball.VY, 0.0)
	assert.InDelta(t, 5*1.06, m.Ball.Speed(), 1e-9)
}

func TestTickNoHitWhenMovingAway(t *testing.T) {
	m, rec := newTestMatch(t)
	place(m, 433, 0, -2, 0)

	m.Tick()

	assert.Equal(t, -2.0, m.Ball.VX)
	assert.NotContains(t, rec.kinds(), EventPaddleHit)
}

func TestTickSpeedCap(t *testing.T) {
	m, _ := newTestMatch(t)
	speedCap := m.Config().Ball.SpeedCap

	for i := 0; i < 60; i++ {
		place(m, 415, 0, m.Ball.Speed(), 0)
		prev := m.Ball.Speed()
		m.Tick()
		require.GreaterOrEqual(t, m.Ball.Speed(), prev-1e-9)
		require.LessOrEqual(t, m.Ball.Speed(), speedCap+1e-9)
	}
	assert.InDelta(t, speedCap, m.Ball.Speed(), 1e-9)
}

func TestPause(t *testing.T) {
	m, rec := newTestMatch(t)
	place(m, 0, 0, 5, 1)

	m.Apply(input.Event{Kind: input.TogglePause})
	require.Equal(t, StatePaused, m.State)

	m.Tick()
	assert.Zero(t, m.Ball.X)
	assert.Zero(t, m.TickCount)

	m.Apply(input.Event{Kind: input.MoveUp, Side: input.Left})
	assert.Equal(t, m.Config().Paddle.Speed, m.Left.Y, "paddles move while paused")

	m.Apply(input.Event{Kind: input.TogglePause})
	require.Equal(t, StateRunning, m.State)
	m.Tick()
	assert.Equal(t, 5.0, m.Ball.X)

	assert.Contains(t, rec.kinds(), EventPaused)
	assert.Contains(t, rec.kinds(), EventResumed)
}

func TestRestart(t *testing.T) {
	for _, state := range []State{StateRunning, StatePaused} {
		t.Run(state.String(), func(t *testing.T) {
			m, rec := newTestMatch(t)
			m.Score = object.Scoreboard{Left: 3, Right: 2}
			m.Winner = object.SideLeft
			m.State = state
			m.Left.Y = 40
			place(m, 100, 50, 20, 3)

			m.Apply(input.Event{Kind: input.Restart})

			assert.Equal(t, object.Scoreboard{}, m.Score)
			assert.Equal(t, object.SideNone, m.Winner)
			assert.Equal(t, state, m.State)
			assert.Equal(t, 40.0, m.Left.Y)
			assert.Zero(t, m.Ball.X)
			assert.Zero(t, m.Ball.Y)
			assert.InDelta(t, m.Config().Ball.InitSpeed, m.Ball.Speed(), 1e-12)
			assert.Positive(t, m.Ball.VX, "restart serves to the right")
			assert.Contains(t, rec.kinds(), EventRestarted)
		})
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestMatch(t)
	place(m, 0, 0, 5, 0)

	m.Apply(input.Event{Kind: input.Quit})
	require.Equal(t, StateTerminated, m.State)

	m.Apply(input.Event{Kind: input.TogglePause})
	m.Apply(input.Event{Kind: input.MoveUp, Side: input.Right})
	m.Tick()

	assert.Equal(t, StateTerminated, m.State)
	assert.Zero(t, m.Right.Y)
	assert.Zero(t, m.Ball.X)
}

func TestMovePaddle(t *testing.T) {
	m, rec := newTestMatch(t)
	speed := m.Config().Paddle.Speed
	maxY := m.Right.MaxY(m.HalfHeight())

	m.Apply(input.Event{Kind: input.MoveDown, Side: input.Right})
	assert.Equal(t, -speed, m.Right.Y)
	assert.Zero(t, m.Left.Y)

	for i := 0; i < 50; i++ {
		m.Apply(input.Event{Kind: input.MoveUp, Side: input.Right})
		require.LessOrEqual(t, m.Right.Y, maxY)
	}
	assert.Equal(t, maxY, m.Right.Y)

	moves := 0
	for _, k := range rec.kinds() {
		if k == EventPaddleMoved {
			moves++
		}
	}
	assert.Less(t, moves, 51, "clamped moves are not reported")

	m.Apply(input.Event{Kind: input.MoveUp})
	assert.Equal(t, maxY, m.Right.Y, "move without a side is ignored")
}

func TestMaxScore(t *testing.T) {
	m, rec := newTestMatch(t, func(c *config.Config) { c.MaxScore = 2 })

	place(m, 475, 0, 8, 0)
	m.Tick()
	assert.False(t, m.Over())

	place(m, 475, 0, 8, 0)
	m.Tick()
	require.True(t, m.Over())
	assert.Equal(t, object.SideLeft, m.Winner)

	over, ok := rec.find(EventMatchOver)
	require.True(t, ok)
	assert.Equal(t, object.SideLeft, over.Side)
	assert.Equal(t, 2, over.Left)

	ticks := m.TickCount
	m.Tick()
	assert.Equal(t, ticks, m.TickCount, "decided match does not tick")
	assert.Zero(t, m.Ball.X)

	m.Restart()
	assert.False(t, m.Over())
	m.Tick()
	assert.Equal(t, ticks+1, m.TickCount)
}

func TestMatchUsedBeforeSetup(t *testing.T) {
	var nilMatch *Match
	assert.PanicsWithValue(t, "loop: match used before setup", func() { nilMatch.Tick() })
	assert.PanicsWithValue(t, "loop: match used before setup", func() { (&Match{}).Tick() })
	assert.PanicsWithValue(t, "loop: match used before setup", func() {
		(&Match{}).Apply(input.Event{Kind: input.Quit})
	})
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "paddle-hit", EventPaddleHit.String())
	assert.Equal(t, "event(99)", EventKind(99).String())
	assert.Equal(t, "paused", StatePaused.String())
}

func TestListenerFunc(t *testing.T) {
	var got []EventKind
	m, _ := newTestMatch(t)
	m.listeners = append(m.listeners, ListenerFunc(func(e Event) { got = append(got, e.Kind) }))

	m.TogglePause()
	assert.Equal(t, []EventKind{EventPaused}, got)
}

package loop

import (
	"fmt"

	"github.com/tomz197/pong/internal/object"
)

// EventKind identifies what changed in a match.
type EventKind int

const (
	EventBallMoved EventKind = iota
	EventPaddleMoved
	EventWallBounce
	EventPaddleHit
	EventPoint
	EventScoreChanged
	EventMatchOver
	EventPaused
	EventResumed
	EventRestarted
)

func (k EventKind) String() string {
	switch k {
	case EventBallMoved:
		return "ball-moved"
	case EventPaddleMoved:
		return "paddle-moved"
	case EventWallBounce:
		return "wall-bounce"
	case EventPaddleHit:
		return "paddle-hit"
	case EventPoint:
		return "point"
	case EventScoreChanged:
		return "score-changed"
	case EventMatchOver:
		return "match-over"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	case EventRestarted:
		return "restarted"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a one-way notification to display collaborators.
// Scores are always filled in with the values after the change.
type Event struct {
	Kind EventKind
	Side object.Side // Paddle moved or hit, point scorer, match winner
	X, Y float64     // Ball or paddle centre

	Left, Right int
}

// Listener receives match events on the loop goroutine. Implementations
// must not block.
type Listener interface {
	Notify(Event)
}

// ListenerFunc adapts a function to a Listener.
type ListenerFunc func(Event)

// Notify calls f(e).
func (f ListenerFunc) Notify(e Event) { f(e) }

func (m *Match) notify(e Event) {
	e.Left, e.Right = m.Score.Left, m.Score.Right
	for _, l := range m.listeners {
		l.Notify(e)
	}
}

func (m *Match) notifyBall(kind EventKind) {
	m.notify(Event{Kind: kind, X: m.Ball.X, Y: m.Ball.Y})
}

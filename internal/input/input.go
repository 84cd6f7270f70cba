// Package input turns raw terminal bytes into game input events.
package input

import (
	"bufio"
	"fmt"
)

// Kind is the type of an input event.
type Kind int

const (
	MoveUp Kind = iota
	MoveDown
	TogglePause
	Restart
	Quit
)

func (k Kind) String() string {
	switch k {
	case MoveUp:
		return "move-up"
	case MoveDown:
		return "move-down"
	case TogglePause:
		return "toggle-pause"
	case Restart:
		return "restart"
	case Quit:
		return "quit"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Side selects which paddle a move event targets.
type Side int

const (
	NoSide Side = iota
	Left
	Right
)

// Event is one discrete input. Side is only set for MoveUp and MoveDown.
type Event struct {
	Kind Kind
	Side Side
}

// Stream delivers input bytes read by a background goroutine.
type Stream struct {
	ch     chan byte
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The channel is closed when r returns an error (EOF on disconnect).
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadEvents drains all available bytes from the stream without blocking and
// parses them into events, in arrival order. Once the underlying reader is
// gone a Quit event is returned.
func ReadEvents(s *Stream) []Event {
	if s.closed {
		return []Event{{Kind: Quit}}
	}

	var buf []byte
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	events := Parse(buf)
	if s.closed {
		events = append(events, Event{Kind: Quit})
	}
	return events
}

// Poll returns the events that arrived since the previous call.
func (s *Stream) Poll() []Event {
	return ReadEvents(s)
}

// Parse converts a chunk of terminal input into events. Arrow keys arrive as
// CSI sequences (ESC [ A/B); sequences split across chunks are dropped.
//
//	w / s        left paddle up / down
//	↑ / ↓, i / k right paddle up / down
//	space, p     pause toggle
//	r            restart
//	q, Ctrl-C    quit
func Parse(buf []byte) []Event {
	var events []Event
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				events = append(events, Event{Kind: MoveUp, Side: Right})
			case 'B':
				events = append(events, Event{Kind: MoveDown, Side: Right})
			}
			i += 2
			continue
		}

		if ev, ok := keyEvent(b); ok {
			events = append(events, ev)
		}
	}
	return events
}

func keyEvent(b byte) (Event, bool) {
	switch b {
	case 'w', 'W':
		return Event{Kind: MoveUp, Side: Left}, true
	case 's', 'S':
		return Event{Kind: MoveDown, Side: Left}, true
	case 'i', 'I':
		return Event{Kind: MoveUp, Side: Right}, true
	case 'k', 'K':
		return Event{Kind: MoveDown, Side: Right}, true
	case ' ', 'p', 'P':
		return Event{Kind: TogglePause}, true
	case 'r', 'R':
		return Event{Kind: Restart}, true
	case 'q', 'Q', '\x03':
		return Event{Kind: Quit}, true
	}
	return Event{}, false
}

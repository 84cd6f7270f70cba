// Package sound plays short tones for match events through the beep speaker.
package sound

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/pong/internal/loop"
)

// SampleRate is the rate every effect is generated at.
const SampleRate = beep.SampleRate(44100)

// DefaultVolume is the linear gain used when none is configured.
const DefaultVolume = 0.5

// Tone is one note of an effect.
type Tone struct {
	Freq     float64 // Hz
	Duration time.Duration
}

// effectTones maps match events to the notes played for them. Events not
// listed are silent.
var effectTones = map[loop.EventKind][]Tone{
	loop.EventWallBounce: {{Freq: 440, Duration: 30 * time.Millisecond}},
	loop.EventPaddleHit:  {{Freq: 660, Duration: 40 * time.Millisecond}},
	loop.EventPoint:      {{Freq: 220, Duration: 150 * time.Millisecond}},
	loop.EventMatchOver: {
		{Freq: 523.25, Duration: 120 * time.Millisecond},
		{Freq: 659.25, Duration: 120 * time.Millisecond},
		{Freq: 783.99, Duration: 240 * time.Millisecond},
	},
}

// Effect builds the streamer for kind at the given linear volume. It returns
// nil for silent events.
func Effect(kind loop.EventKind, volume float64) (beep.Streamer, error) {
	notes := effectTones[kind]
	if len(notes) == 0 {
		return nil, nil
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(SampleRate, n.Freq)
		if err != nil {
			return nil, fmt.Errorf("tone %.0fHz: %w", n.Freq, err)
		}
		parts = append(parts, beep.Take(SampleRate.N(n.Duration), tone))
	}
	return newVolume(beep.Seq(parts...), volume), nil
}

// newVolume wraps s with a linear gain. math.Log2(0) is -Inf, so zero
// volume is expressed as silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Player is a loop.Listener that turns match events into sound.
type Player struct {
	sink   func(beep.Streamer)
	volume float64
	logger *log.Logger
}

// New creates a player handing each effect to sink. sink is called on the
// loop goroutine and must not block.
func New(volume float64, sink func(beep.Streamer), logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{sink: sink, volume: volume, logger: logger}
}

// Open initialises the speaker and returns a player mixing into it.
func Open(volume float64, logger *log.Logger) (*Player, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	mixer := &beep.Mixer{}
	speaker.Play(mixer)

	return New(volume, func(s beep.Streamer) {
		speaker.Lock()
		mixer.Add(s)
		speaker.Unlock()
	}, logger), nil
}

// Close stops playback and releases the audio device.
func (p *Player) Close() {
	speaker.Clear()
	speaker.Close()
}

// Notify implements loop.Listener.
func (p *Player) Notify(e loop.Event) {
	s, err := Effect(e.Kind, p.volume)
	if err != nil {
		p.logger.Warn("sound effect", "event", e.Kind, "err", err)
		return
	}
	if s != nil {
		p.sink(s)
	}
}

var _ loop.Listener = (*Player)(nil)

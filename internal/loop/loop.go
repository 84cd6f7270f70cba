// Package loop runs a pong match: the state machine, the per-tick algorithm
// and the frame pump that paces ticks and hands frames to a Surface.
package loop

import (
	"context"
	"fmt"
	"time"

	"github.com/tomz197/pong/internal/config"
	"github.com/tomz197/pong/internal/input"
)

// Surface presents frames. Width and Height give the arena size in logical
// units; PresentFrame is called once per tick.
type Surface interface {
	Width() int
	Height() int
	PresentFrame(m *Match) error
}

// Source delivers input events that arrived since the previous call.
// Poll must not block.
type Source interface {
	Poll() []input.Event
}

// SourceFunc adapts a function to a Source.
type SourceFunc func() []input.Event

// Poll calls f.
func (f SourceFunc) Poll() []input.Event { return f() }

// Run creates a match sized to the surface and plays it until quit, context
// cancellation or idle timeout.
func Run(ctx context.Context, cfg config.Config, src Source, surface Surface, opts Options) error {
	m := NewMatch(cfg, surface.Width(), surface.Height(), opts)
	return m.Run(ctx, src, surface)
}

// Run is the frame pump with the standard Input → Update → Draw cycle.
// Input is applied only at tick boundaries.
func (m *Match) Run(ctx context.Context, src Source, surface Surface) error {
	m.mustBeReady()

	period := m.cfg.TickPeriod()
	lastInput := time.Now()

	if err := surface.PresentFrame(m); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}

	for m.State != StateTerminated {
		frameStart := time.Now()

		// ===== INPUT PHASE =====
		if ctx.Err() != nil {
			m.logger.Debug("context done", "err", ctx.Err())
			m.Quit()
			break
		}
		events := src.Poll()
		if len(events) > 0 {
			lastInput = frameStart
		}
		for _, ev := range events {
			m.Apply(ev)
		}
		if m.idleTimeout > 0 && frameStart.Sub(lastInput) >= m.idleTimeout {
			m.logger.Info("idle timeout", "after", m.idleTimeout)
			m.Quit()
		}
		if m.State == StateTerminated {
			break
		}

		// ===== UPDATE PHASE =====
		m.Tick()

		// ===== DRAW PHASE =====
		if err := surface.PresentFrame(m); err != nil {
			return fmt.Errorf("present frame: %w", err)
		}

		// ===== FRAME TIMING =====
		if elapsed := time.Since(frameStart); elapsed < period {
			select {
			case <-ctx.Done():
			case <-time.After(period - elapsed):
			}
		}
	}
	return nil
}

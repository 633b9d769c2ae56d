// The paced tick loop. One tick is one sim-day; the loop sleeps out the
// remainder of each interval so wall-clock pacing holds at any speed.
package engine

import (
	"log/slog"
	"time"
)

// TicksPerWeek groups ticks for the weekly summary hook.
const TicksPerWeek = 7

// Engine drives the simulation forward. Pausing (Speed = 0) only ever takes
// effect between ticks, so the relationship graph is always consistent at
// every observable point.
type Engine struct {
	Tick     uint64        // Most recent tick issued (monotonic)
	Speed    float64       // Multiplier: 1.0 = real-time, 0 = paused
	Interval time.Duration // Base tick interval
	Running  bool

	// Callbacks populated during setup.
	OnTick func(tick uint64) // Every tick (sim-day)
	OnWeek func(tick uint64) // Every 7 ticks
}

// NewEngine creates an engine with default pacing.
func NewEngine() *Engine {
	return &Engine{
		Speed:    1.0,
		Interval: time.Second,
	}
}

// Run starts the loop. Blocks until Stop is called.
func (e *Engine) Run() {
	e.Running = true
	slog.Info("simulation engine started", "tick", e.Tick, "speed", e.Speed)

	for e.Running {
		if e.Speed <= 0 {
			// Paused: sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()

		e.step()

		elapsed := time.Since(start)
		target := time.Duration(float64(e.Interval) / e.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("simulation engine stopped", "tick", e.Tick)
}

// Stop halts the loop after the current tick completes.
func (e *Engine) Stop() {
	e.Running = false
}

func (e *Engine) step() {
	e.Tick++

	if e.OnTick != nil {
		e.OnTick(e.Tick)
	}

	if e.Tick%TicksPerWeek == 0 && e.OnWeek != nil {
		e.OnWeek(e.Tick)
	}
}

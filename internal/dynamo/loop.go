package dynamo

import (
	"context"
	"time"
)

// Stepper is the simulation side of the frame loop.
type Stepper interface {
	Step()
	Bodies() []Body
}

// Loop drives the per-frame pipeline:
// quit check, step, clear, one disk per body, present, fixed delay.
type Loop struct {
	Sim      Stepper
	Renderer Renderer
	Quit     QuitPoller
	Delay    time.Duration

	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)

	// MaxFrames stops the loop after that many frames; 0 runs until quit.
	MaxFrames int
}

// Run blocks until quit is observed, ctx is done, MaxFrames is reached or
// presenting fails. Quit and cancellation are only checked at the top of a
// frame, so the frame in flight always completes. Both count as a clean
// shutdown and return nil.
func (l *Loop) Run(ctx context.Context) error {
	sleep := l.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	for frame := 0; l.MaxFrames == 0 || frame < l.MaxFrames; frame++ {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if l.Quit != nil && l.Quit.ShouldQuit() {
			return nil
		}

		l.Sim.Step()
		if err := RenderFrame(l.Renderer, l.Sim.Bodies()); err != nil {
			return err
		}

		if l.Delay > 0 {
			sleep(l.Delay)
		}
	}
	return nil
}

// RenderFrame clears r to black, draws every body in list order and presents.
func RenderFrame(r Renderer, bodies []Body) error {
	r.Clear()
	for _, b := range bodies {
		r.DrawDisk(b.Pos, b.Radius, b.Color)
	}
	return r.Present()
}

package gui

import (
	"context"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/bouncesim/internal/dynamo"
	"github.com/san-kum/bouncesim/internal/starfield"
)

const (
	bounceTitle    = "Simple Bouncing Balls"
	starfieldTitle = "Rotating Starfield"
)

// RunBounce spawns the bodies, opens a window the size of the world and
// drives the frame loop until the window is closed or ctx is done.
func RunBounce(ctx context.Context, cfg dynamo.Config, engine dynamo.Engine, rng *rand.Rand) error {
	sim, err := dynamo.New(cfg, engine, rng)
	if err != nil {
		return err
	}

	win, err := Open(bounceTitle, int(cfg.World.Width), int(cfg.World.Height))
	if err != nil {
		return err
	}
	defer win.Close()

	loop := &dynamo.Loop{
		Sim:      sim,
		Renderer: win,
		Quit:     win,
		Delay:    cfg.FrameDelay,
	}
	return loop.Run(ctx)
}

// RunStarfield flies through a star field. Unlike the bounce loop, each
// frame advances by the measured frame time.
func RunStarfield(ctx context.Context, cfg starfield.Config, rng *rand.Rand) error {
	field, err := starfield.New(cfg, rng)
	if err != nil {
		return err
	}

	win, err := Open(starfieldTitle, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	defer win.Close()
	rl.SetTargetFPS(60)

	for !win.ShouldQuit() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		field.Update(float64(rl.GetFrameTime()))

		win.Clear()
		for _, p := range field.Project() {
			win.FillRect(p.X, p.Y, p.Size, p.Gray())
		}
		if err := win.Present(); err != nil {
			return err
		}
	}
	return nil
}

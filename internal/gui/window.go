// Package gui is the raylib window front end. A Window is both the frame
// renderer and the quit source for the dynamo frame loop.
package gui

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/bouncesim/internal/dynamo"
	"github.com/san-kum/bouncesim/internal/render"
)

var ColBg = rl.NewColor(0, 0, 0, 255)

type Window struct {
	Width, Height int32
	open          bool
}

// Open creates the window. Escape is disabled as an exit key so only the
// close button and Q end the loop.
func Open(title string, width, height int) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, dynamo.NewInitError("window", errors.New("non-positive window size"))
	}

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(width), int32(height), title)
	if !rl.IsWindowReady() {
		return nil, dynamo.NewInitError("window", errors.New("raylib could not create the window"))
	}
	rl.SetExitKey(0)

	return &Window{Width: int32(width), Height: int32(height), open: true}, nil
}

func (w *Window) Close() {
	if w.open {
		rl.CloseWindow()
		w.open = false
	}
}

// Clear starts a frame and fills it with black.
func (w *Window) Clear() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
}

// DrawDisk plots the disk pixel by pixel, the same discrete disk every other
// renderer draws.
func (w *Window) DrawDisk(center dynamo.Vec2, radius int, c dynamo.RGB) {
	col := rl.NewColor(c.R, c.G, c.B, 255)
	render.Disk(center, radius, func(x, y int) {
		rl.DrawPixel(int32(x), int32(y), col)
	})
}

// Present ends the frame, swapping buffers and polling input.
func (w *Window) Present() error {
	rl.EndDrawing()
	return nil
}

func (w *Window) ShouldQuit() bool {
	return rl.WindowShouldClose() || rl.IsKeyPressed(rl.KeyQ)
}

// FillRect draws an axis-aligned square of grey level v.
func (w *Window) FillRect(x, y, size int, v uint8) {
	rl.DrawRectangle(int32(x), int32(y), int32(size), int32(size), rl.NewColor(v, v, v, 255))
}

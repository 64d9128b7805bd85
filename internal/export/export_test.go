package export

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/bouncesim/internal/dynamo"
	"github.com/san-kum/bouncesim/internal/viz"
)

var testWorld = dynamo.World{Width: 800, Height: 600}

func TestFrameToSVG(t *testing.T) {
	bodies := []dynamo.Body{
		{Pos: dynamo.Vec2{X: 100, Y: 200}, Radius: 12, Color: dynamo.RGB{R: 255}},
		{Pos: dynamo.Vec2{X: 300.5, Y: 50}, Radius: 10, Color: dynamo.RGB{G: 128, B: 255}},
	}
	svg := FrameToSVG(bodies, testWorld)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if !strings.Contains(svg, `width="800" height="600"`) {
		t.Error("missing world size")
	}
	first := strings.Index(svg, `<circle cx="100.0" cy="200.0" r="12" fill="#ff0000"/>`)
	second := strings.Index(svg, `<circle cx="300.5" cy="50.0" r="10" fill="#0080ff"/>`)
	if first < 0 || second < 0 {
		t.Fatalf("missing circles in:\n%s", svg)
	}
	if first > second {
		t.Error("bodies not drawn in list order")
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	if TrajectoryToSVG([]Point{{1, 1}}, 100, 100, "#fff") != "" {
		t.Error("expected empty svg for a single point")
	}

	svg := TrajectoryToSVG([]Point{{0, 0}, {10, 10}, {20, 0}}, 200, 100, "#ff00ff")
	if !strings.Contains(svg, `stroke="#ff00ff"`) || strings.Count(svg, " L") != 2 {
		t.Errorf("unexpected path:\n%s", svg)
	}
}

func TestBodyTrajectory(t *testing.T) {
	frames := [][]dynamo.Body{
		{{Pos: dynamo.Vec2{X: 1, Y: 2}}, {Pos: dynamo.Vec2{X: 5, Y: 5}}},
		{{Pos: dynamo.Vec2{X: 3, Y: 4}}, {Pos: dynamo.Vec2{X: 6, Y: 6}}},
	}
	pts := BodyTrajectory(frames, 1)
	if len(pts) != 2 || pts[1] != (Point{6, 6}) {
		t.Errorf("unexpected trajectory %v", pts)
	}
	if len(BodyTrajectory(frames, 7)) != 0 {
		t.Error("expected no points for a missing body")
	}
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 1) != "" {
		t.Error("expected empty svg for nil canvas")
	}

	c := viz.NewCanvas(4, 2)
	c.Fit(dynamo.World{Width: 8, Height: 8})
	c.DrawDisk(dynamo.Vec2{X: 2, Y: 2}, 1, dynamo.RGB{R: 255, G: 255})

	svg := CanvasToSVG(c, 2)
	if !strings.Contains(svg, `fill="#ffff00"`) {
		t.Errorf("expected coloured dots:\n%s", svg)
	}
}

func solidFrame(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestSaveGIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.gif")
	frames := []*image.RGBA{
		solidFrame(color.RGBA{A: 255}),
		solidFrame(color.RGBA{R: 255, A: 255}),
	}
	if err := SaveGIF(path, frames, 16*time.Millisecond); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(anim.Image) != 2 || anim.Delay[0] != 1 {
		t.Errorf("got %d frames, delay %v", len(anim.Image), anim.Delay)
	}
}

func TestSaveGIFNoFrames(t *testing.T) {
	err := SaveGIF(filepath.Join(t.TempDir(), "x.gif"), nil, time.Second)
	if !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
}

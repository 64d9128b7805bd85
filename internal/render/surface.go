package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/san-kum/bouncesim/internal/dynamo"
)

// ImageSurface renders into an in-memory RGBA image. Present copies the
// back buffer into Frame, so the last presented frame stays readable while
// the next one is drawn.
type ImageSurface struct {
	back  *image.RGBA
	Frame *image.RGBA

	// OnPresent, if set, receives every presented frame.
	OnPresent func(*image.RGBA)
}

func NewImageSurface(width, height int) (*ImageSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, dynamo.NewInitError("surface", nil)
	}
	rect := image.Rect(0, 0, width, height)
	return &ImageSurface{back: image.NewRGBA(rect), Frame: image.NewRGBA(rect)}, nil
}

func (s *ImageSurface) Clear() {
	draw.Draw(s.back, s.back.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
}

func (s *ImageSurface) DrawDisk(center dynamo.Vec2, radius int, c dynamo.RGB) {
	col := color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	b := s.back.Bounds()
	Disk(center, radius, func(x, y int) {
		if image.Pt(x, y).In(b) {
			s.back.SetRGBA(x, y, col)
		}
	})
}

func (s *ImageSurface) Present() error {
	copy(s.Frame.Pix, s.back.Pix)
	if s.OnPresent != nil {
		snap := image.NewRGBA(s.Frame.Bounds())
		copy(snap.Pix, s.Frame.Pix)
		s.OnPresent(snap)
	}
	return nil
}

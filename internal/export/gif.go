package export

import (
	"errors"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"time"
)

var ErrNoFrames = errors.New("export: no frames to encode")

// EncodeGIF quantises frames to the Plan 9 palette and assembles an
// animation with a fixed per-frame delay.
func EncodeGIF(frames []*image.RGBA, delay time.Duration) (*gif.GIF, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}

	centis := int(delay / (10 * time.Millisecond))
	if centis < 1 {
		centis = 1
	}

	anim := &gif.GIF{
		Image: make([]*image.Paletted, 0, len(frames)),
		Delay: make([]int, 0, len(frames)),
	}
	for _, f := range frames {
		p := image.NewPaletted(f.Bounds(), palette.Plan9)
		draw.Draw(p, p.Rect, f, f.Bounds().Min, draw.Src)
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, centis)
	}
	return anim, nil
}

// SaveGIF writes frames to path as a looping animated GIF.
func SaveGIF(path string, frames []*image.RGBA, delay time.Duration) error {
	anim, err := EncodeGIF(frames, delay)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gif.EncodeAll(f, anim)
}

// Package render holds the drawing side of the frame contract: disk
// rasterisation and the surfaces that implement dynamo.Renderer.
package render

import "github.com/san-kum/bouncesim/internal/dynamo"

// Disk calls plot for every pixel of the filled disk around center: each
// integer offset (dx, dy) in [-radius, radius] with dx*dx+dy*dy <= radius*radius.
// Coordinates are truncated towards zero, not rounded.
func Disk(center dynamo.Vec2, radius int, plot func(x, y int)) {
	r2 := radius * radius
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			if dx*dx+dy*dy <= r2 {
				plot(int(center.X+float64(dx)), int(center.Y+float64(dy)))
			}
		}
	}
}

// DiskArea returns how many pixels Disk plots for radius.
func DiskArea(radius int) int {
	n := 0
	r2 := radius * radius
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			if dx*dx+dy*dy <= r2 {
				n++
			}
		}
	}
	return n
}

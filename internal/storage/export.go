package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/bouncesim/internal/dynamo"
)

type ExportBody struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Radius int     `json:"radius"`
	Color  string  `json:"color"`
}

type ExportData struct {
	ID      string             `json:"id"`
	Preset  string             `json:"preset"`
	Width   float64            `json:"width"`
	Height  float64            `json:"height"`
	Dt      float64            `json:"dt"`
	Steps   int                `json:"steps"`
	Times   []float64          `json:"times"`
	Frames  [][]ExportBody     `json:"frames"`
	Metrics map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run's metadata and frames to w as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, frames [][]dynamo.Body, times []float64) error {
	data := ExportData{
		ID:      meta.ID,
		Preset:  meta.Preset,
		Width:   meta.Width,
		Height:  meta.Height,
		Dt:      meta.Dt,
		Steps:   len(times),
		Times:   times,
		Frames:  make([][]ExportBody, len(frames)),
		Metrics: meta.Metrics,
	}

	for i, frame := range frames {
		out := make([]ExportBody, len(frame))
		for j, b := range frame {
			out[j] = ExportBody{
				X: b.Pos.X, Y: b.Pos.Y,
				VX: b.Vel.X, VY: b.Vel.Y,
				Radius: b.Radius,
				Color:  b.Color.Hex(),
			}
		}
		data.Frames[i] = out
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

package render

import (
	"testing"

	"github.com/san-kum/bouncesim/internal/dynamo"
)

func TestRecorderFrameOrder(t *testing.T) {
	bodies := []dynamo.Body{
		{Pos: dynamo.Vec2{X: 1, Y: 2}, Radius: 10, Color: dynamo.RGB{R: 1}},
		{Pos: dynamo.Vec2{X: 3, Y: 4}, Radius: 12, Color: dynamo.RGB{G: 2}},
		{Pos: dynamo.Vec2{X: 5, Y: 6}, Radius: 14, Color: dynamo.RGB{B: 3}},
	}

	rec := NewRecorder()
	if err := dynamo.RenderFrame(rec, bodies); err != nil {
		t.Fatal(err)
	}

	if len(rec.Ops) != len(bodies)+2 {
		t.Fatalf("recorded %d ops, want %d", len(rec.Ops), len(bodies)+2)
	}
	if rec.Ops[0].Kind != OpClear || rec.Ops[len(rec.Ops)-1].Kind != OpPresent {
		t.Errorf("frame not bracketed by clear/present: %v", rec.Ops)
	}

	disks := rec.Disks(0)
	for i, b := range bodies {
		d := disks[i]
		if d.Center != b.Pos || d.Radius != b.Radius || d.Color != b.Color {
			t.Errorf("disk %d = %+v, want body %+v", i, d, b)
		}
	}
	if rec.Frames != 1 {
		t.Errorf("frames = %d, want 1", rec.Frames)
	}
}

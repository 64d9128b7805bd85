package render

import "github.com/san-kum/bouncesim/internal/dynamo"

type OpKind int

const (
	OpClear OpKind = iota
	OpDisk
	OpPresent
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpDisk:
		return "disk"
	case OpPresent:
		return "present"
	}
	return "unknown"
}

// Op is one recorded renderer call.
type Op struct {
	Kind   OpKind
	Center dynamo.Vec2
	Radius int
	Color  dynamo.RGB
}

// Recorder is a Renderer that draws nothing and remembers every call.
type Recorder struct {
	Ops        []Op
	Frames     int
	PresentErr error
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Clear() { r.Ops = append(r.Ops, Op{Kind: OpClear}) }

func (r *Recorder) DrawDisk(center dynamo.Vec2, radius int, color dynamo.RGB) {
	r.Ops = append(r.Ops, Op{Kind: OpDisk, Center: center, Radius: radius, Color: color})
}

func (r *Recorder) Present() error {
	r.Ops = append(r.Ops, Op{Kind: OpPresent})
	r.Frames++
	return r.PresentErr
}

// Disks returns the DrawDisk calls of frame n (0-based).
func (r *Recorder) Disks(frame int) []Op {
	var out []Op
	f := 0
	for _, op := range r.Ops {
		switch op.Kind {
		case OpPresent:
			f++
		case OpDisk:
			if f == frame {
				out = append(out, op)
			}
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.Frames = 0
}

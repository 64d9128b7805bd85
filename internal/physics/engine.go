package physics

import "github.com/san-kum/bouncesim/internal/dynamo"

// Engine runs both phases of a tick. It implements dynamo.Engine.
type Engine struct {
	Broadphase Broadphase
	Parallel   bool

	resolved int
}

func NewEngine(bp Broadphase, parallel bool) *Engine {
	if bp == nil {
		bp = AllPairs{}
	}
	return &Engine{Broadphase: bp, Parallel: parallel}
}

// NewEngineFromConfig builds the engine selected by cfg.
func NewEngineFromConfig(cfg dynamo.Config) (*Engine, error) {
	bp, err := NewBroadphase(cfg.Broadphase, cfg.CellSize)
	if err != nil {
		return nil, err
	}
	return NewEngine(bp, cfg.Parallel), nil
}

func (e *Engine) Step(bodies []dynamo.Body, w dynamo.World, p dynamo.Params) {
	if e.Parallel {
		// bodies are independent in the integration phase; the pair pass
		// starts only after every chunk has finished
		dynamo.ParallelFor(len(bodies), 64, func(start, end int) {
			for i := start; i < end; i++ {
				Integrate(&bodies[i], w, p)
			}
		})
	} else {
		for i := range bodies {
			Integrate(&bodies[i], w, p)
		}
	}
	e.resolved = ResolveCollisions(bodies, e.Broadphase)
}

// Resolved is the number of pairs corrected by the most recent tick.
func (e *Engine) Resolved() int { return e.resolved }

// Step runs one tick over bodies with a full pair scan.
func Step(bodies []dynamo.Body, w dynamo.World, p dynamo.Params) {
	for i := range bodies {
		Integrate(&bodies[i], w, p)
	}
	ResolveCollisions(bodies, AllPairs{})
}

package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/bouncesim/internal/dynamo"
)

// Broadphase produces candidate pairs for the collision pass. Pairs are
// emitted with i < j in ascending (i, j) order, the same order a full scan
// visits them. emit may move bodies[i] and bodies[j]; every later candidate
// is chosen from the positions as they are after that call.
type Broadphase interface {
	Pairs(bodies []dynamo.Body, emit func(i, j int))
}

// AllPairs visits every unordered pair.
type AllPairs struct{}

func (AllPairs) Pairs(bodies []dynamo.Body, emit func(i, j int)) {
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			emit(i, j)
		}
	}
}

type cellKey struct{ x, y int }

// UniformGrid hashes body centres into square cells and only pairs bodies in
// the same or adjacent cells. CellSize must be at least the largest
// diameter; zero picks that value from the bodies on every call.
//
// A pair the grid skips is more than one cell apart and therefore cannot
// overlap, so a pass driven by the grid corrects exactly the pairs a full
// scan corrects, in the same order. Bodies moved by a correction are
// re-binned before the next lookup.
type UniformGrid struct {
	CellSize float64

	cells map[cellKey][]int
	keys  []cellKey
}

func NewUniformGrid(cellSize float64) *UniformGrid {
	return &UniformGrid{CellSize: cellSize, cells: make(map[cellKey][]int)}
}

func (g *UniformGrid) Pairs(bodies []dynamo.Body, emit func(i, j int)) {
	size := g.cellSize(bodies)
	if size <= 0 {
		return
	}
	if g.cells == nil {
		g.cells = make(map[cellKey][]int)
	}
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}

	g.keys = g.keys[:0]
	for i, b := range bodies {
		k := cellOf(b.Pos, size)
		g.keys = append(g.keys, k)
		g.cells[k] = append(g.cells[k], i)
	}

	for i := range bodies {
		for j := g.next(i, i); j >= 0; j = g.next(i, j) {
			emit(i, j)
			g.rebin(i, bodies[i].Pos, size)
			g.rebin(j, bodies[j].Pos, size)
		}
	}
}

// next returns the smallest index above after in the cells around body i,
// or -1.
func (g *UniformGrid) next(i, after int) int {
	k := g.keys[i]
	best := -1
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			for _, j := range g.cells[cellKey{k.x + dx, k.y + dy}] {
				if j > after && (best < 0 || j < best) {
					best = j
				}
			}
		}
	}
	return best
}

func (g *UniformGrid) rebin(idx int, pos dynamo.Vec2, size float64) {
	k := cellOf(pos, size)
	old := g.keys[idx]
	if k == old {
		return
	}
	cell := g.cells[old]
	for n, v := range cell {
		if v == idx {
			cell[n] = cell[len(cell)-1]
			g.cells[old] = cell[:len(cell)-1]
			break
		}
	}
	g.cells[k] = append(g.cells[k], idx)
	g.keys[idx] = k
}

func cellOf(p dynamo.Vec2, size float64) cellKey {
	return cellKey{int(math.Floor(p.X / size)), int(math.Floor(p.Y / size))}
}

func (g *UniformGrid) cellSize(bodies []dynamo.Body) float64 {
	minSize := 0.0
	for _, b := range bodies {
		if d := 2 * b.R(); d > minSize {
			minSize = d
		}
	}
	if g.CellSize > minSize {
		return g.CellSize
	}
	return minSize
}

// NewBroadphase returns the broadphase registered under name.
func NewBroadphase(name string, cellSize float64) (Broadphase, error) {
	switch name {
	case "", "all":
		return AllPairs{}, nil
	case "grid":
		return NewUniformGrid(cellSize), nil
	default:
		return nil, fmt.Errorf("unknown broadphase: %s", name)
	}
}

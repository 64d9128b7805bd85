package optim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/bouncesim/internal/dynamo"
)

// GridSearch tries every combination of parameter values and keeps the one
// that minimises a metric of a headless run.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Trial is one evaluated grid point.
type Trial struct {
	Params map[string]float64
	Value  float64
}

// Search runs build for every grid point, advances the simulator steps
// ticks and reads metricName from the result. Trials come back in grid
// order; best is the lowest value.
func (g *GridSearch) Search(
	ctx context.Context,
	build func(params map[string]float64) (*dynamo.Simulator, error),
	steps int,
	metricName string,
) (best Trial, trials []Trial, err error) {
	if len(g.paramNames) != len(g.ranges) {
		return Trial{}, nil, fmt.Errorf("optim: %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best.Value = math.Inf(1)
	err = g.searchRecursive(ctx, 0, make(map[string]float64), build, steps, metricName, &best, &trials)
	return best, trials, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build func(map[string]float64) (*dynamo.Simulator, error),
	steps int,
	metricName string,
	best *Trial,
	trials *[]Trial,
) error {
	if depth == len(g.paramNames) {
		sim, err := build(current)
		if err != nil {
			return fmt.Errorf("%v: %w", current, err)
		}

		result, err := sim.Run(ctx, steps)
		if err != nil {
			return err
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("optim: metric %q not recorded", metricName)
		}

		trial := Trial{Params: current, Value: val}
		*trials = append(*trials, trial)
		if val < best.Value {
			*best = trial
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, build, steps, metricName, best, trials); err != nil {
			return err
		}
	}
	return nil
}

// Tunable lists the parameter names Apply understands.
var Tunable = []string{"bodies", "gravity", "max_speed", "restitution"}

// Apply returns cfg with the named parameters overridden and validated.
func Apply(cfg dynamo.Config, params map[string]float64) (dynamo.Config, error) {
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, name := range names {
		v := params[name]
		switch name {
		case "gravity":
			cfg.Params.Gravity = v
		case "restitution":
			cfg.Params.Restitution = v
		case "max_speed":
			cfg.Spawn.MaxSpeed = v
		case "bodies":
			cfg.Bodies = int(v)
		default:
			return dynamo.Config{}, fmt.Errorf("optim: unknown parameter %q (tunable: %v)", name, Tunable)
		}
	}
	return cfg, cfg.Validate()
}

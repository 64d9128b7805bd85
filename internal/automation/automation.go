package automation

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/bouncesim/internal/config"
	"github.com/san-kum/bouncesim/internal/dynamo"
	"github.com/san-kum/bouncesim/internal/metrics"
	"github.com/san-kum/bouncesim/internal/physics"
	"github.com/san-kum/bouncesim/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of headless runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario. Unset fields keep the
// preset's values.
type ScenarioStep struct {
	Preset      string   `yaml:"preset"`
	Ticks       int      `yaml:"ticks"`
	Seed        int64    `yaml:"seed"`
	Bodies      int      `yaml:"bodies"`
	Gravity     *float64 `yaml:"gravity"`
	Restitution *float64 `yaml:"restitution"`
	Broadphase  string   `yaml:"broadphase"`
	Save        bool     `yaml:"save"`
}

// StepResult pairs a run with the id it was stored under, if any.
type StepResult struct {
	Step   ScenarioStep
	Result *dynamo.Result
	RunID  string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}

	return &scenario, nil
}

// Config resolves the step against its preset.
func (s ScenarioStep) Config() (*config.Config, error) {
	name := s.Preset
	if name == "" {
		name = "classic"
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s", name)
	}

	if s.Ticks > 0 {
		cfg.Ticks = s.Ticks
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if s.Bodies > 0 {
		cfg.Bodies = s.Bodies
	}
	if s.Gravity != nil {
		cfg.Physics.Gravity = *s.Gravity
	}
	if s.Restitution != nil {
		cfg.Physics.Restitution = *s.Restitution
	}
	if s.Broadphase != "" {
		cfg.Broadphase = s.Broadphase
	}
	return cfg, nil
}

// RunScenario executes all steps in order. Steps marked save are written to
// st, which may be nil when nothing is saved. Progress goes to out.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, out io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		fmt.Fprintf(out, "Running step %d/%d: %s (%d ticks)\n", i+1, len(scenario.Steps), step.PresetName(), cfg.Ticks)

		simCfg, err := cfg.ToSim()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		engine, err := physics.NewEngineFromConfig(simCfg)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		sim, err := dynamo.New(simCfg, engine, nil)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		for _, m := range metrics.Defaults(simCfg.Params.Gravity) {
			sim.AddMetric(m)
		}

		result, err := sim.Run(ctx, cfg.Ticks)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Step: step, Result: result}
		if step.Save {
			if st == nil {
				return results, fmt.Errorf("step %d: no store to save into", i+1)
			}
			sr.RunID, err = st.Save(storage.NewMetadata(step.PresetName(), simCfg, result), result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}

		results = append(results, sr)
	}

	return results, nil
}

// PresetName is the preset the step starts from.
func (s ScenarioStep) PresetName() string {
	if s.Preset == "" {
		return "classic"
	}
	return s.Preset
}

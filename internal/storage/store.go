package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/bouncesim/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	bodiesFile   = "bodies.csv"
)

var bodiesHeader = []string{"tick", "time", "body", "x", "y", "vx", "vy", "radius", "r", "g", "b"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Preset      string             `json:"preset"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Bodies      int                `json:"bodies"`
	Ticks       int                `json:"ticks"`
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Gravity     float64            `json:"gravity"`
	Restitution float64            `json:"restitution"`
	Dt          float64            `json:"dt"`
	Broadphase  string             `json:"broadphase"`
	Metrics     map[string]float64 `json:"metrics"`
}

// NewMetadata fills run metadata from the simulation config.
func NewMetadata(preset string, cfg dynamo.Config, result *dynamo.Result) RunMetadata {
	return RunMetadata{
		Preset:      preset,
		Seed:        cfg.Seed,
		Bodies:      cfg.Bodies,
		Ticks:       result.StepsTaken,
		Width:       cfg.World.Width,
		Height:      cfg.World.Height,
		Gravity:     cfg.Params.Gravity,
		Restitution: cfg.Params.Restitution,
		Dt:          cfg.Params.Dt,
		Broadphase:  cfg.Broadphase,
		Metrics:     result.Metrics,
	}
}

// World returns the world rectangle the run was recorded in.
func (m RunMetadata) World() dynamo.World {
	return dynamo.World{Width: m.Width, Height: m.Height}
}

// Save writes metadata.json and bodies.csv for result into a new run
// directory and returns the run id.
func (s *Store) Save(meta RunMetadata, result *dynamo.Result) (string, error) {
	now := time.Now()
	name := meta.Preset
	if name == "" {
		name = "run"
	}
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, bodiesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, result.Frames, result.Times); err != nil {
		return "", err
	}

	return runID, nil
}

// WriteCSV writes one row per body per tick in the bodies.csv layout.
func WriteCSV(out io.Writer, frames [][]dynamo.Body, times []float64) error {
	w := csv.NewWriter(out)
	if err := w.Write(bodiesHeader); err != nil {
		return err
	}

	for tick, frame := range frames {
		t := strconv.FormatFloat(times[tick], 'f', 6, 64)
		for i, b := range frame {
			row := []string{
				strconv.Itoa(tick),
				t,
				strconv.Itoa(i),
				strconv.FormatFloat(b.Pos.X, 'f', 6, 64),
				strconv.FormatFloat(b.Pos.Y, 'f', 6, 64),
				strconv.FormatFloat(b.Vel.X, 'f', 6, 64),
				strconv.FormatFloat(b.Vel.Y, 'f', 6, 64),
				strconv.Itoa(b.Radius),
				strconv.Itoa(int(b.Color.R)),
				strconv.Itoa(int(b.Color.G)),
				strconv.Itoa(int(b.Color.B)),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames reads bodies.csv back into per-tick body lists.
func (s *Store) LoadFrames(runID string) ([][]dynamo.Body, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, bodiesFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(bodiesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	frames := make([][]dynamo.Body, 0)
	times := make([]float64, 0)

	for i := 1; i < len(records); i++ {
		rec := records[i]

		tick, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i, err)
		}
		nums, err := parseFloats(rec[1], rec[3], rec[4], rec[5], rec[6])
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i, err)
		}
		ints, err := parseInts(rec[7], rec[8], rec[9], rec[10])
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i, err)
		}

		if tick < 0 {
			return nil, nil, fmt.Errorf("row %d: negative tick %d", i, tick)
		}
		body, err := dynamo.NewBody(
			dynamo.Vec2{X: nums[1], Y: nums[2]},
			dynamo.Vec2{X: nums[3], Y: nums[4]},
			ints[0],
			dynamo.RGB{R: uint8(ints[1]), G: uint8(ints[2]), B: uint8(ints[3])},
		)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i, err)
		}

		for len(frames) <= tick {
			frames = append(frames, nil)
			times = append(times, 0)
		}
		times[tick] = nums[0]
		frames[tick] = append(frames[tick], body)
	}

	return frames, times, nil
}

func parseFloats(fields ...string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseInts(fields ...string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

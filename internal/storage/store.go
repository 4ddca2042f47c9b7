// Package storage keeps recorded runs on disk, one directory per run with
// metadata.json and states.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/springsim/internal/sim"
)

var ErrRunNotFound = errors.New("storage: run not found")

var stateHeader = []string{"time", "position", "velocity", "target"}

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
	ID         string             `json:"id"`
	Preset     string             `json:"preset,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
	Stiffness  float64            `json:"stiffness"`
	Damping    float64            `json:"damping"`
	Mass       float64            `json:"mass"`
	Integrator string             `json:"integrator"`
	From       float64            `json:"from"`
	To         float64            `json:"to"`
	Frames     int                `json:"frames"`
	Settled    bool               `json:"settled"`
	Metrics    map[string]float64 `json:"metrics"`
}

// MetadataFor fills the run description from a simulation config and its
// result. ID and Timestamp are set by Save.
func MetadataFor(preset string, cfg sim.Config, result *sim.Result) RunMetadata {
	return RunMetadata{
		Preset:     preset,
		Stiffness:  cfg.Spring.Stiffness,
		Damping:    cfg.Spring.Damping,
		Mass:       cfg.Spring.Mass,
		Integrator: cfg.Spring.Integrator,
		From:       cfg.From,
		To:         cfg.To,
		Frames:     result.Frames,
		Settled:    result.Settled,
		Metrics:    result.Metrics,
	}
}

func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	meta.ID = "run_" + uuid.NewString()[:8]
	meta.Timestamp = time.Now()
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(stateHeader); err != nil {
		return "", err
	}
	for i, x := range result.States {
		row := []string{
			formatFloat(result.Times[i]),
			formatFloat(x.Position()),
			formatFloat(x.Velocity()),
			formatFloat(result.Targets[i]),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// List returns every readable run, newest first.
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

	slices.SortFunc(runs, func(a, b RunMetadata) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// Trajectory is a run's states.csv in columns.
type Trajectory struct {
	Times      []float64 `json:"times"`
	Positions  []float64 `json:"positions"`
	Velocities []float64 `json:"velocities"`
	Targets    []float64 `json:"targets"`
}

func (s *Store) LoadStates(runID string) (*Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(stateHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	tr := &Trajectory{}
	for i, record := range records {
		if i == 0 {
			continue
		}
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s line %d: %w", runID, i+1, err)
			}
			vals[j] = v
		}
		tr.Times = append(tr.Times, vals[0])
		tr.Positions = append(tr.Positions, vals[1])
		tr.Velocities = append(tr.Velocities, vals[2])
		tr.Targets = append(tr.Targets, vals[3])
	}
	return tr, nil
}

// CSVPath is where a run's trajectory lives on disk.
func (s *Store) CSVPath(runID string) string {
	return filepath.Join(s.baseDir, runID, "states.csv")
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

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

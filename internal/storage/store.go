package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/gravsim/internal/dynamo"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var ErrMalformed = errors.New("storage: malformed trajectory")

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
	Scenario    string             `json:"scenario"`
	Timestamp   time.Time          `json:"timestamp"`
	G           float64            `json:"g"`
	MinDistance float64            `json:"min_distance"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	SimTime     float64            `json:"sim_time"`
	Dropped     float64            `json:"dropped_time"`
	Bodies      []string           `json:"bodies"`
	Fingerprint string             `json:"fingerprint"`
	Metrics     map[string]float64 `json:"metrics"`
}

// FormatFingerprint renders a state hash the way it is stored in metadata.
func FormatFingerprint(bodies []*dynamo.Body) string {
	return fmt.Sprintf("%016x", dynamo.Fingerprint(bodies))
}

// Save writes a run directory and returns its id. An empty meta.ID is
// filled from the scenario name and the current time.
func (s *Store) Save(meta RunMetadata, traj *Trajectory) (string, error) {
	now := time.Now()
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Scenario, now.UnixNano())
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = now
	}
	if traj != nil && meta.Bodies == nil {
		meta.Bodies = traj.Names
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), &meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), traj); err != nil {
		return "", fmt.Errorf("write trajectory: %w", err)
	}

	return meta.ID, nil
}

// List returns every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
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

func (s *Store) LoadTrajectory(runID string) (*Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	traj := &Trajectory{}
	if len(records) == 0 {
		return traj, nil
	}

	header := records[0]
	if len(header) == 0 || header[0] != "time" || (len(header)-1)%3 != 0 {
		return nil, fmt.Errorf("%w: bad header %v", ErrMalformed, header)
	}
	n := (len(header) - 1) / 3
	traj.Names = make([]string, n)
	for i := 0; i < n; i++ {
		col := header[1+3*i]
		if len(col) < 2 {
			return nil, fmt.Errorf("%w: bad column %q", ErrMalformed, col)
		}
		traj.Names[i] = col[:len(col)-2]
	}

	for line, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrMalformed, line+1, err)
			}
			vals[j] = v
		}

		sample := Sample{Time: vals[0], Positions: make([]dynamo.Vec, n)}
		for i := 0; i < n; i++ {
			sample.Positions[i] = dynamo.Vec{vals[1+3*i], vals[2+3*i], vals[3+3*i]}
		}
		traj.Samples = append(traj.Samples, sample)
	}

	return traj, nil
}

func writeMetadata(path string, meta *RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeTrajectory(path string, traj *Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if traj == nil {
		return nil
	}

	w := csv.NewWriter(f)

	header := []string{"time"}
	for _, name := range traj.Names {
		header = append(header, name+".x", name+".y", name+".z")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range traj.Samples {
		row := make([]string, 0, len(header))
		row = append(row, formatFloat(s.Time))
		for _, p := range s.Positions {
			row = append(row, formatFloat(p[0]), formatFloat(p[1]), formatFloat(p[2]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

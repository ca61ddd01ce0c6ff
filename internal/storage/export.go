package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportBody struct {
	Name      string       `json:"name"`
	Positions [][3]float64 `json:"positions"`
}

type ExportData struct {
	Scenario    string             `json:"scenario"`
	G           float64            `json:"g"`
	MinDistance float64            `json:"min_distance"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	Fingerprint string             `json:"fingerprint"`
	Times       []float64          `json:"times"`
	Bodies      []ExportBody       `json:"bodies"`
	Metrics     map[string]float64 `json:"metrics"`
}

func NewExportData(meta *RunMetadata, traj *Trajectory) *ExportData {
	data := &ExportData{
		Scenario:    meta.Scenario,
		G:           meta.G,
		MinDistance: meta.MinDistance,
		Dt:          meta.Dt,
		Duration:    meta.Duration,
		Steps:       meta.Steps,
		Fingerprint: meta.Fingerprint,
		Metrics:     meta.Metrics,
	}
	if traj == nil {
		return data
	}

	data.Times = traj.Times()
	data.Bodies = make([]ExportBody, len(traj.Names))
	for i, name := range traj.Names {
		data.Bodies[i] = ExportBody{Name: name, Positions: make([][3]float64, len(traj.Samples))}
		for j, s := range traj.Samples {
			data.Bodies[i].Positions[j] = [3]float64(s.Positions[i])
		}
	}
	return data
}

// ExportJSON writes the run as indented JSON to w.
func ExportJSON(w io.Writer, meta *RunMetadata, traj *Trajectory) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewExportData(meta, traj))
}

func ExportJSONFile(path string, meta *RunMetadata, traj *Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ExportJSON(f, meta, traj)
}

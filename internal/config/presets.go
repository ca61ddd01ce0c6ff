package config

import (
	"maps"
	"slices"
)

var Presets = map[string]*Config{
	// equal masses on an equilateral triangle, each on the circular
	// Lagrange orbit about the centre
	"three": {
		Name: "three", Description: "three equal stars on a rotating triangle",
		G: 1, MinDistance: 100, Dt: 1, Duration: 2000, FrameRate: 60, TimeScale: 60,
		Bodies: []BodyConfig{
			{Name: "alpha", Mass: 1000, Radius: 10, Position: [3]float64{0, 300, 0}, Velocity: [3]float64{-1.3873, 0, 0}},
			{Name: "beta", Mass: 1000, Radius: 10, Position: [3]float64{-259.8076, -150, 0}, Velocity: [3]float64{0.69365, -1.20144, 0}},
			{Name: "gamma", Mass: 1000, Radius: 10, Position: [3]float64{259.8076, -150, 0}, Velocity: [3]float64{0.69365, 1.20144, 0}},
		},
	},
	"binary": {
		Name: "binary", Description: "two equal stars on a circular orbit",
		G: 1, MinDistance: 100, Dt: 1, Duration: 3000, FrameRate: 60, TimeScale: 60,
		Bodies: []BodyConfig{
			{Name: "primary", Mass: 500, Radius: 15, Position: [3]float64{-200, 0, 0}, Velocity: [3]float64{0, -0.790569, 0}},
			{Name: "secondary", Mass: 500, Radius: 15, Position: [3]float64{200, 0, 0}, Velocity: [3]float64{0, 0.790569, 0}},
		},
	},
	"solar": {
		Name: "solar", Description: "a sun with four planets",
		G: 1, MinDistance: 100, Dt: 0.5, Duration: 4000, FrameRate: 60, TimeScale: 30, AutoOrbit: true,
		Bodies: []BodyConfig{
			{Name: "sun", Mass: 10000, Radius: 40},
			{Name: "mercury", Mass: 0.5, Radius: 3, Position: [3]float64{300, 0, 0}},
			{Name: "venus", Mass: 2, Radius: 5, Position: [3]float64{0, 500, 0}},
			{Name: "earth", Mass: 2.5, Radius: 5, Position: [3]float64{-800, 0, 0}},
			{Name: "mars", Mass: 1, Radius: 4, Position: [3]float64{0, -1200, 0}},
		},
	},
	// Chenciner-Montgomery choreography, period ~6.3259
	"figure8": {
		Name: "figure8", Description: "three bodies chasing each other on a figure eight",
		G: 1, MinDistance: 1e-3, Dt: 1e-3, Duration: 6.3259, FrameRate: 60, TimeScale: 0.6,
		Bodies: []BodyConfig{
			{Name: "a", Mass: 1, Radius: 0.05, Position: [3]float64{-0.97000436, 0.24308753, 0}, Velocity: [3]float64{0.466203685, 0.43236573, 0}},
			{Name: "b", Mass: 1, Radius: 0.05, Position: [3]float64{0.97000436, -0.24308753, 0}, Velocity: [3]float64{0.466203685, 0.43236573, 0}},
			{Name: "c", Mass: 1, Radius: 0.05, Velocity: [3]float64{-0.93240737, -0.86473146, 0}},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Bodies = slices.Clone(p.Bodies)
	return &cfg
}

// PresetInfo maps each preset name to its description.
func PresetInfo() map[string]string {
	info := make(map[string]string, len(Presets))
	for name, p := range Presets {
		info[name] = p.Description
	}
	return info
}

func ListPresets() []string {
	return slices.Sorted(maps.Keys(Presets))
}

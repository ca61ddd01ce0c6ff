package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/system"
	"gopkg.in/yaml.v3"
)

const (
	DefaultG           = 1.0
	DefaultMinDistance = 100.0
	DefaultDt          = 1.0
	DefaultDuration    = 100.0
	DefaultFrameRate   = 60
	DefaultTimeScale   = 60.0
)

type Config struct {
	Name            string       `yaml:"name"`
	Description     string       `yaml:"description,omitempty"`
	G               float64      `yaml:"g"`
	MinDistance     float64      `yaml:"min_distance"`
	Dt              float64      `yaml:"dt"`
	MaxStepsPerTick int          `yaml:"max_steps_per_tick"`
	Duration        float64      `yaml:"duration"`
	FrameRate       int          `yaml:"frame_rate"`
	TimeScale       float64      `yaml:"time_scale"`
	AutoOrbit       bool         `yaml:"auto_orbit"`
	Bodies          []BodyConfig `yaml:"bodies"`
}

type BodyConfig struct {
	Name     string     `yaml:"name"`
	Mass     float64    `yaml:"mass"`
	Radius   float64    `yaml:"radius"`
	Position [3]float64 `yaml:"position"`
	Velocity [3]float64 `yaml:"velocity"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:        "default",
		G:           DefaultG,
		MinDistance: DefaultMinDistance,
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		FrameRate:   DefaultFrameRate,
		TimeScale:   DefaultTimeScale,
		Bodies: []BodyConfig{
			{Name: "sun", Mass: 1000, Radius: 20},
			{Name: "planet", Mass: 1, Radius: 5, Position: [3]float64{400, 0, 0}},
		},
		AutoOrbit: true,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the run parameters. Body masses are checked by Build.
func (c *Config) Validate() error {
	var errs []error
	if c.Dt <= 0 {
		errs = append(errs, fmt.Errorf("dt must be positive, got %f", c.Dt))
	}
	if c.Duration <= 0 {
		errs = append(errs, fmt.Errorf("duration must be positive, got %f", c.Duration))
	}
	if c.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("frame_rate must be positive, got %d", c.FrameRate))
	}
	if c.TimeScale <= 0 {
		errs = append(errs, fmt.Errorf("time_scale must be positive, got %f", c.TimeScale))
	}
	if c.MinDistance <= 0 {
		errs = append(errs, fmt.Errorf("min_distance must be positive, got %f", c.MinDistance))
	}
	if len(c.Bodies) == 0 {
		errs = append(errs, errors.New("scenario has no bodies"))
	}
	return errors.Join(errs...)
}

// SimConfig returns the simulator tunables.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		GravitationalConstant: c.G,
		MinDistance:           c.MinDistance,
		FixedTimeStep:         c.Dt,
		MaxStepsPerTick:       c.MaxStepsPerTick,
	}
}

// FrameDt is the wall time between frames at the configured frame rate.
func (c *Config) FrameDt() float64 {
	if c.FrameRate <= 0 {
		return 1.0 / DefaultFrameRate
	}
	return 1.0 / float64(c.FrameRate)
}

// SimFrameDt is the simulated time fed to the simulator per frame.
func (c *Config) SimFrameDt() float64 {
	scale := c.TimeScale
	if scale <= 0 {
		scale = DefaultTimeScale
	}
	return c.FrameDt() * scale
}

// Build creates the registry described by the config. Invalid masses and
// duplicate names surface as dynamo errors.
func (c *Config) Build() (*system.SolarSystem, error) {
	bodies := make([]BodyConfig, len(c.Bodies))
	copy(bodies, c.Bodies)
	if c.AutoOrbit {
		SetOrbitalVelocities(bodies, c.G, c.MinDistance)
	}

	sys := system.New(c.Name)
	sys.SetTimeStep(c.Dt)
	for _, bc := range bodies {
		b, err := dynamo.NewBody(bc.Name, bc.Mass, bc.Radius, dynamo.Vec(bc.Position), dynamo.Vec(bc.Velocity))
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", c.Name, err)
		}
		if err := sys.AddBody(b); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", c.Name, err)
		}
	}
	return sys, nil
}

// SetOrbitalVelocities gives every body at rest the circular orbit speed
// around the first body, perpendicular to the separation and the z axis.
// Inside the softening radius the clamped force is used.
func SetOrbitalVelocities(bodies []BodyConfig, g, minDistance float64) {
	if len(bodies) == 0 {
		return
	}
	central := bodies[0]
	center := dynamo.Vec(central.Position)

	for i := 1; i < len(bodies); i++ {
		if bodies[i].Velocity != [3]float64{} {
			continue
		}

		d := dynamo.Vec(bodies[i].Position).Sub(center)
		r := d.Len()
		if r == 0 {
			continue
		}

		tangent := dynamo.Vec{0, 0, 1}.Cross(d)
		if tangent.Len() == 0 {
			tangent = dynamo.Vec{1, 0, 0}.Cross(d)
		}
		tangent = tangent.Normalize()

		eff := math.Max(r, minDistance)
		speed := math.Sqrt(g * central.Mass * r / (eff * eff))

		v := tangent.Mul(speed).Add(dynamo.Vec(central.Velocity))
		bodies[i].Velocity = [3]float64(v)
	}
}

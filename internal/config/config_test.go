package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/gravsim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.G != 1 || cfg.MinDistance != 100 || cfg.Dt != 1 {
		t.Errorf("unexpected tunables g=%f min=%f dt=%f", cfg.G, cfg.MinDistance, cfg.Dt)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{Dt: 0, Duration: -1, FrameRate: 0, MinDistance: 0}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"dt", "duration", "frame_rate", "time_scale", "min_distance", "no bodies"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	data := `
name: pair
g: 2
dt: 0.5
bodies:
  - name: a
    mass: 10
    position: [1, 2, 3]
  - name: b
    mass: 5
    velocity: [0, 1, 0]
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "pair" || cfg.G != 2 || cfg.Dt != 0.5 {
		t.Errorf("unexpected header %+v", cfg)
	}
	if cfg.FrameRate != DefaultFrameRate || cfg.MinDistance != DefaultMinDistance {
		t.Error("unset fields should keep defaults")
	}
	if len(cfg.Bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(cfg.Bodies))
	}
	if cfg.Bodies[0].Position != [3]float64{1, 2, 3} {
		t.Errorf("position = %v", cfg.Bodies[0].Position)
	}
	if cfg.Bodies[1].Velocity != [3]float64{0, 1, 0} {
		t.Errorf("velocity = %v", cfg.Bodies[1].Velocity)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	orig := GetPreset("binary")
	if err := Save(path, orig); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != orig.Name || len(got.Bodies) != len(orig.Bodies) {
		t.Fatalf("got %+v", got)
	}
	if got.Bodies[1].Velocity != orig.Bodies[1].Velocity {
		t.Errorf("velocity %v != %v", got.Bodies[1].Velocity, orig.Bodies[1].Velocity)
	}
}

func TestBuild(t *testing.T) {
	cfg := GetPreset("three")
	sys, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	if sys.Len() != 3 {
		t.Errorf("expected 3 bodies, got %d", sys.Len())
	}
	if sys.TimeStep() != cfg.Dt {
		t.Errorf("timestep = %f", sys.TimeStep())
	}
	names := sys.Names()
	if names[0] != "alpha" || names[2] != "gamma" {
		t.Errorf("order not preserved: %v", names)
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name   string
		bodies []BodyConfig
		want   error
	}{
		{"zero mass", []BodyConfig{{Name: "a", Mass: 0}}, dynamo.ErrInvalidMass},
		{"negative radius", []BodyConfig{{Name: "a", Mass: 1, Radius: -1}}, dynamo.ErrInvalidRadius},
		{"duplicate", []BodyConfig{{Name: "a", Mass: 1}, {Name: "a", Mass: 2}}, dynamo.ErrDuplicateName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.AutoOrbit = false
			cfg.Bodies = tt.bodies
			_, err := cfg.Build()
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuild_DoesNotMutateConfig(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := cfg.Build(); err != nil {
		t.Fatal(err)
	}
	if cfg.Bodies[1].Velocity != [3]float64{} {
		t.Error("auto orbit leaked into config bodies")
	}
}

func TestSetOrbitalVelocities(t *testing.T) {
	bodies := []BodyConfig{
		{Name: "sun", Mass: 1000},
		{Name: "far", Mass: 1, Position: [3]float64{400, 0, 0}},
		{Name: "near", Mass: 1, Position: [3]float64{50, 0, 0}},
		{Name: "moving", Mass: 1, Position: [3]float64{0, 400, 0}, Velocity: [3]float64{3, 0, 0}},
	}

	SetOrbitalVelocities(bodies, 1, 100)

	if v := bodies[1].Velocity; math.Abs(v[1]-math.Sqrt(1000.0/400)) > 1e-12 || v[0] != 0 || v[2] != 0 {
		t.Errorf("far velocity = %v", v)
	}
	// clamped force inside the softening radius
	if v := bodies[2].Velocity; math.Abs(v[1]-math.Sqrt(5)) > 1e-12 {
		t.Errorf("near velocity = %v", v)
	}
	if bodies[3].Velocity != [3]float64{3, 0, 0} {
		t.Error("moving body should keep its velocity")
	}
	if bodies[0].Velocity != [3]float64{} {
		t.Error("central body should not move")
	}
}

func TestSetOrbitalVelocities_AlongZ(t *testing.T) {
	bodies := []BodyConfig{
		{Name: "sun", Mass: 100},
		{Name: "polar", Mass: 1, Position: [3]float64{0, 0, 200}},
	}
	SetOrbitalVelocities(bodies, 1, 10)

	v := dynamo.Vec(bodies[1].Velocity)
	if math.Abs(v.Len()-math.Sqrt(0.5)) > 1e-12 {
		t.Errorf("speed = %f", v.Len())
	}
	if v[2] != 0 {
		t.Errorf("velocity should be perpendicular to z, got %v", v)
	}
}

func TestSimConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxStepsPerTick = 8
	sc := cfg.SimConfig()
	if sc.GravitationalConstant != cfg.G || sc.MinDistance != cfg.MinDistance ||
		sc.FixedTimeStep != cfg.Dt || sc.MaxStepsPerTick != 8 {
		t.Errorf("got %+v", sc)
	}
	if cfg.FrameDt() != 1.0/60 {
		t.Errorf("frame dt = %f", cfg.FrameDt())
	}
	cfg.FrameRate, cfg.TimeScale = 50, 10
	if got := cfg.SimFrameDt(); math.Abs(got-0.2) > 1e-15 {
		t.Errorf("sim frame dt = %f", got)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("figure8")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	cfg.Bodies[0].Mass = 99
	if Presets["figure8"].Bodies[0].Mass != 1 {
		t.Error("GetPreset should return a copy")
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsBuild(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
		if _, err := cfg.Build(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestListPresets(t *testing.T) {
	got := ListPresets()
	want := []string{"binary", "figure8", "solar", "three"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

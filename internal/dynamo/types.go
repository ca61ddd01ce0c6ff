package dynamo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec is a 3-vector in simulation units.
type Vec = mgl64.Vec3

// Body is a point mass. Its name and mass are identity; position and velocity
// are mutated by the simulator's integration step or by the owner between runs.
type Body struct {
	name     string
	mass     float64
	radius   float64
	position Vec
	velocity Vec
}

// NewBody validates mass and radius and returns a body at the given state.
func NewBody(name string, mass, radius float64, position, velocity Vec) (*Body, error) {
	if !validMass(mass) {
		return nil, &BodyError{Name: name, Wrapped: ErrInvalidMass}
	}
	if !validRadius(radius) {
		return nil, &BodyError{Name: name, Wrapped: ErrInvalidRadius}
	}
	return &Body{
		name:     name,
		mass:     mass,
		radius:   radius,
		position: position,
		velocity: velocity,
	}, nil
}

func (b *Body) Name() string    { return b.name }
func (b *Body) Mass() float64   { return b.mass }
func (b *Body) Radius() float64 { return b.radius }
func (b *Body) Position() Vec   { return b.position }
func (b *Body) Velocity() Vec   { return b.velocity }

func (b *Body) SetName(name string) { b.name = name }
func (b *Body) SetPosition(p Vec)   { b.position = p }
func (b *Body) SetVelocity(v Vec)   { b.velocity = v }

// SetMass leaves the body unchanged when mass is not positive.
func (b *Body) SetMass(mass float64) error {
	if !validMass(mass) {
		return &BodyError{Name: b.name, Wrapped: ErrInvalidMass}
	}
	b.mass = mass
	return nil
}

func (b *Body) SetRadius(radius float64) error {
	if !validRadius(radius) {
		return &BodyError{Name: b.name, Wrapped: ErrInvalidRadius}
	}
	b.radius = radius
	return nil
}

// Valid reports whether the body may take part in force computation.
func (b *Body) Valid() bool {
	return b != nil && validMass(b.mass)
}

// IsFinite reports whether position and velocity hold no NaN or Inf.
func (b *Body) IsFinite() bool {
	for i := 0; i < 3; i++ {
		if !finite(b.position[i]) || !finite(b.velocity[i]) {
			return false
		}
	}
	return true
}

func (b *Body) Clone() *Body {
	c := *b
	return &c
}

// CloneAll deep-copies a body slice, preserving nil entries.
func CloneAll(bodies []*Body) []*Body {
	out := make([]*Body, len(bodies))
	for i, b := range bodies {
		if b != nil {
			out[i] = b.Clone()
		}
	}
	return out
}

func validMass(m float64) bool {
	return m > 0 && finite(m)
}

func validRadius(r float64) bool {
	return r >= 0 && finite(r)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

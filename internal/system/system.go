// Package system holds the ordered, name-addressable body registry that a
// scenario builds and the simulator consumes.
package system

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/san-kum/gravsim/internal/dynamo"
)

// DefaultTimeStep is the nominal step a new registry advertises.
const DefaultTimeStep = 1.0

// SolarSystem owns its bodies exclusively. Insertion order defines the
// iteration order seen by the simulator. Names are unique.
//
// The registry's timestep is advisory: a simulator bound with an explicit
// step ignores it.
type SolarSystem struct {
	name     string
	timeStep float64
	bodies   *orderedmap.OrderedMap[string, *dynamo.Body]
}

func New(name string) *SolarSystem {
	return &SolarSystem{
		name:     name,
		timeStep: DefaultTimeStep,
		bodies:   orderedmap.NewOrderedMap[string, *dynamo.Body](),
	}
}

func (s *SolarSystem) Name() string        { return s.name }
func (s *SolarSystem) SetName(name string) { s.name = name }
func (s *SolarSystem) Len() int            { return s.bodies.Len() }
func (s *SolarSystem) TimeStep() float64   { return s.timeStep }

// SetTimeStep ignores non-positive values.
func (s *SolarSystem) SetTimeStep(dt float64) {
	if dt > 0 {
		s.timeStep = dt
	}
}

// AddBody appends b. Nil or massless bodies are rejected with
// dynamo.ErrInvalidMass, a repeated name with dynamo.ErrDuplicateName.
func (s *SolarSystem) AddBody(b *dynamo.Body) error {
	if !b.Valid() {
		name := ""
		if b != nil {
			name = b.Name()
		}
		return &dynamo.BodyError{Name: name, Wrapped: dynamo.ErrInvalidMass}
	}
	if _, ok := s.bodies.Get(b.Name()); ok {
		return &dynamo.BodyError{Name: b.Name(), Wrapped: dynamo.ErrDuplicateName}
	}
	s.bodies.Set(b.Name(), b)
	return nil
}

// RemoveBody deletes the named body, keeping the order of the rest.
func (s *SolarSystem) RemoveBody(name string) error {
	if !s.bodies.Delete(name) {
		return &dynamo.BodyError{Name: name, Wrapped: dynamo.ErrNotFound}
	}
	return nil
}

// Body returns the registered body itself, not a copy.
func (s *SolarSystem) Body(name string) (*dynamo.Body, error) {
	b, ok := s.bodies.Get(name)
	if !ok {
		return nil, &dynamo.BodyError{Name: name, Wrapped: dynamo.ErrNotFound}
	}
	return b, nil
}

func (s *SolarSystem) BodyAt(index int) (*dynamo.Body, error) {
	if index < 0 || index >= s.bodies.Len() {
		return nil, fmt.Errorf("index %d of %d: %w", index, s.bodies.Len(), dynamo.ErrIndexOutOfRange)
	}
	i := 0
	for el := s.bodies.Front(); el != nil; el = el.Next() {
		if i == index {
			return el.Value, nil
		}
		i++
	}
	return nil, dynamo.ErrIndexOutOfRange
}

// Bodies returns the bodies in insertion order. The slice is fresh; the
// bodies are shared. A nil registry has no bodies.
func (s *SolarSystem) Bodies() []*dynamo.Body {
	if s == nil {
		return nil
	}
	out := make([]*dynamo.Body, 0, s.bodies.Len())
	for el := s.bodies.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

func (s *SolarSystem) Names() []string {
	out := make([]string, 0, s.bodies.Len())
	for el := s.bodies.Front(); el != nil; el = el.Next() {
		out = append(out, el.Key)
	}
	return out
}

// Clone returns a registry with copies of every body.
func (s *SolarSystem) Clone() *SolarSystem {
	c := New(s.name)
	c.timeStep = s.timeStep
	for el := s.bodies.Front(); el != nil; el = el.Next() {
		c.bodies.Set(el.Key, el.Value.Clone())
	}
	return c
}

package stream

import (
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/sim"
)

const (
	MessageFrame = "frame"
	MessageError = "error"

	ControlPause  = "pause"
	ControlResume = "resume"
	ControlStart  = "start"
	ControlStop   = "stop"
)

type BodyState struct {
	Name     string     `json:"name"`
	Mass     float64    `json:"mass"`
	Position [3]float64 `json:"position"`
	Velocity [3]float64 `json:"velocity"`
}

// Frame is the snapshot broadcast to every client after each frame.
type Frame struct {
	Type   string      `json:"type"`
	Time   float64     `json:"time"`
	Step   int         `json:"step"`
	State  string      `json:"state"`
	Bodies []BodyState `json:"bodies"`
}

// Control is sent by clients to drive the lifecycle.
type Control struct {
	Type string `json:"type"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func snapshot(s *sim.Simulator) *Frame {
	f := &Frame{
		Type:   MessageFrame,
		Time:   s.SimTime(),
		Step:   s.Steps(),
		State:  s.State().String(),
		Bodies: make([]BodyState, 0, len(s.Bodies())),
	}
	for _, b := range s.Bodies() {
		if b == nil {
			continue
		}
		f.Bodies = append(f.Bodies, bodyState(b))
	}
	return f
}

func bodyState(b *dynamo.Body) BodyState {
	return BodyState{
		Name:     b.Name(),
		Mass:     b.Mass(),
		Position: [3]float64(b.Position()),
		Velocity: [3]float64(b.Velocity()),
	}
}

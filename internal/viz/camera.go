package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/dynamo"
)

// Camera maps world positions onto the canvas. The default view looks down
// the z axis at the x/y plane.
type Camera struct {
	RotX, RotY, RotZ float64
	Zoom             float64
	Center           dynamo.Vec
	// Scale is canvas pixels per world unit at Zoom 1.
	Scale float64
}

func NewCamera() *Camera {
	return &Camera{Zoom: 1, Scale: 1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(50, c.Zoom*1.25) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.02, c.Zoom/1.25) }

func (c *Camera) Reset() {
	c.RotX, c.RotY, c.RotZ = 0, 0, 0
	c.Zoom = 1
}

// Fit centres the camera on the bodies and picks a scale so the farthest one
// lands at 80% of the smaller half-extent of a w by h pixel canvas.
func (c *Camera) Fit(bodies []*dynamo.Body, w, h int) {
	var sum dynamo.Vec
	n := 0
	for _, b := range bodies {
		if b != nil {
			sum = sum.Add(b.Position())
			n++
		}
	}
	if n == 0 {
		return
	}
	c.Center = sum.Mul(1 / float64(n))

	extent := 0.0
	for _, b := range bodies {
		if b != nil {
			extent = math.Max(extent, b.Position().Sub(c.Center).Len())
		}
	}
	if extent == 0 {
		extent = 1
	}
	c.Scale = 0.8 * float64(min(w, h)) / 2 / extent
}

func (c *Camera) rotation() mgl64.Mat3 {
	return mgl64.Rotate3DZ(c.RotZ).Mul3(mgl64.Rotate3DY(c.RotY)).Mul3(mgl64.Rotate3DX(c.RotX))
}

// Project returns the pixel for p on a w by h canvas and whether it is
// visible.
func (c *Camera) Project(p dynamo.Vec, w, h int) (int, int, bool) {
	r := c.rotation().Mul3x1(p.Sub(c.Center))
	s := c.Scale * c.Zoom
	x := w/2 + int(math.Round(r.X()*s))
	y := h/2 - int(math.Round(r.Y()*s))
	return x, y, x >= 0 && x < w && y >= 0 && y < h
}

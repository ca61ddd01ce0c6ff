package analysis

import (
	"strings"
)

type Point struct{ X, Y float64 }

// OrbitPortrait is the path of one body projected onto the x/y plane.
type OrbitPortrait struct {
	Name   string
	Points []Point
}

func NewOrbitPortrait(name string, xs, ys []float64) *OrbitPortrait {
	n := min(len(xs), len(ys))
	p := &OrbitPortrait{Name: name, Points: make([]Point, n)}
	for i := 0; i < n; i++ {
		p.Points[i] = Point{xs[i], ys[i]}
	}
	return p
}

// ToASCII draws one or more orbits on a shared grid. Each orbit uses its
// own glyph; the origin axes are drawn when visible.
func ToASCII(orbits []*OrbitPortrait, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	first := true
	var minX, maxX, minY, maxY float64
	for _, o := range orbits {
		for _, p := range o.Points {
			if first {
				minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
				first = false
				continue
			}
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
	}
	if first {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			canvas[row][col] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == '│' {
				canvas[row][col] = '┼'
			} else {
				canvas[row][col] = '─'
			}
		}
	}

	glyphs := []rune{'•', '○', '◆', '◇', '▪', '▫'}
	for i, o := range orbits {
		g := glyphs[i%len(glyphs)]
		for _, p := range o.Points {
			col := int((p.X - minX) / rangeX * float64(width-1))
			row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
			if row >= 0 && row < height && col >= 0 && col < width {
				canvas[row][col] = g
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

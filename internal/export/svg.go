package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/san-kum/gravsim/internal/storage"
)

var palette = []string{"#00d4ff", "#ff9f1c", "#7cff6b", "#ff4f8b", "#b388ff", "#ffe066"}

// OrbitsToSVG draws every body's x-y path from traj on one shared scale,
// with a dot at each body's final position.
func OrbitsToSVG(traj *storage.Trajectory, width, height int) string {
	if traj == nil || traj.Len() < 2 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, s := range traj.Samples {
		for _, p := range s.Positions {
			minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
			minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
		}
	}

	// keep the aspect ratio so circular orbits stay circular
	rangeX := maxX - minX
	rangeY := maxY - minY
	span := math.Max(rangeX, rangeY)
	if span == 0 {
		span = 1
	}
	span *= 1.2
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	size := float64(min(width, height))
	project := func(x, y float64) (float64, float64) {
		px := float64(width)/2 + (x-cx)/span*size
		py := float64(height)/2 - (y-cy)/span*size
		return px, py
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, name := range traj.Names {
		colour := palette[i%len(palette)]
		sb.WriteString(fmt.Sprintf(`<path id="%s" fill="none" stroke="%s" stroke-width="1.5" d="M`, name, colour))

		var lastX, lastY float64
		for j, s := range traj.Samples {
			x, y := project(s.Positions[i][0], s.Positions[i][1])
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
			lastX, lastY = x, y
		}
		sb.WriteString("\"/>\n")
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>
`, lastX, lastY, colour))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func WriteOrbitsSVG(w io.Writer, traj *storage.Trajectory, width, height int) error {
	svg := OrbitsToSVG(traj, width, height)
	if svg == "" {
		return fmt.Errorf("export: need at least 2 samples to draw orbits")
	}
	_, err := io.WriteString(w, svg)
	return err
}

func WriteOrbitsSVGFile(path string, traj *storage.Trajectory, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteOrbitsSVG(f, traj, width, height); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

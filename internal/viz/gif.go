package viz

import (
	"image"
	"image/color"
	"image/gif"
	"os"
)

const (
	cellW = 8
	cellH = 16
)

// gifRecorder rasterises canvas frames so a live session can be saved as
// an animation.
type gifRecorder struct {
	path   string
	frames []*image.Paletted
}

func newGIFRecorder(path string) *gifRecorder {
	return &gifRecorder{path: path}
}

func (g *gifRecorder) capture(c *Canvas) {
	img := image.NewPaletted(image.Rect(0, 0, c.Width*cellW, c.Height*cellH), color.Palette{color.Black, color.White})
	dotW, dotH := cellW/2, cellH/4

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			cell := c.Grid[row][col]
			if cell == blank {
				continue
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if cell&dotBits[dy][dx] == 0 {
						continue
					}
					x0, y0 := col*cellW+dx*dotW, row*cellH+dy*dotH
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(x0+px, y0+py, 1)
						}
					}
				}
			}
		}
	}
	g.frames = append(g.frames, img)
}

func (g *gifRecorder) save() error {
	if len(g.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range g.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}

	f, err := os.Create(g.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}

package paintbynumbers

import (
	"image"
	"image/color"
)

// BorderMask marks pixels that touch a differently labeled 4-neighbor.
type BorderMask struct {
	W, H int
	Pix  []bool // len = W*H, row-major
}

func (m *BorderMask) At(x, y int) bool {
	return m.Pix[y*m.W+x]
}

// Image renders the mask as a single-channel outline: border pixels 0, the rest 255.
func (m *BorderMask) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.W, m.H))
	for y := range m.H {
		for x := range m.W {
			v := uint8(255)
			if m.Pix[y*m.W+x] {
				v = 0
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

// Count returns the number of border pixels.
func (m *BorderMask) Count() int {
	n := 0
	for _, b := range m.Pix {
		if b {
			n++
		}
	}
	return n
}

// FindBorders marks both cells of every vertically or horizontally adjacent
// pair with different labels. It looks only at label changes, not at regions.
func FindBorders(g *LabelGrid) (*BorderMask, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	w, h := g.W, g.H
	m := &BorderMask{W: w, H: h, Pix: make([]bool, w*h)}

	// vertical pairs (x,y)-(x,y+1)
	for y := 0; y < h-1; y++ {
		for x := range w {
			a, b := g.offset(x, y), g.offset(x, y+1)
			if g.Labels[a] != g.Labels[b] {
				m.Pix[a] = true
				m.Pix[b] = true
			}
		}
	}
	// horizontal pairs (x,y)-(x+1,y)
	for y := range h {
		for x := 0; x < w-1; x++ {
			a, b := g.offset(x, y), g.offset(x+1, y)
			if g.Labels[a] != g.Labels[b] {
				m.Pix[a] = true
				m.Pix[b] = true
			}
		}
	}
	return m, nil
}

package paintbynumbers

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"

	"github.com/setanarut/paintbynumbers/utils"
)

// Quantize extracts a k-color palette from img, sorted darkest first, and
// labels every pixel with the index of its nearest palette color.
func Quantize(img image.Image, k int, method utils.PaletteMethod) (*LabelGrid, []colorful.Color, error) {
	if k <= 0 {
		return nil, nil, ErrEmptyPalette
	}
	palette := utils.ExtractPalette(img, k, method)
	if len(palette) == 0 {
		return nil, nil, ErrEmptyPalette
	}
	utils.SortPaletteByBrightness(palette)
	g, err := AssignLabels(img, palette)
	if err != nil {
		return nil, nil, err
	}
	return g, palette, nil
}

// AssignLabels maps each pixel to the palette index closest in CIE Lab.
// Equal distances go to the lower index.
func AssignLabels(img image.Image, palette []colorful.Color) (*LabelGrid, error) {
	if len(palette) == 0 {
		return nil, ErrEmptyPalette
	}
	b := img.Bounds()
	g := NewLabelGrid(b.Dx(), b.Dy())
	if err := g.validate(); err != nil {
		return nil, err
	}

	labs := make([][]float64, len(palette))
	for i, c := range palette {
		l, a, bb := c.Lab()
		labs[i] = []float64{l, a, bb}
	}
	// Photos repeat colors heavily; remember the answer per 8-bit RGB.
	memo := make(map[uint32]int)
	px := make([]float64, 3)

	for y := range g.H {
		for x := range g.W {
			r, gr, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			key := (r>>8)<<16 | (gr>>8)<<8 | bl>>8
			label, ok := memo[key]
			if !ok {
				c := colorful.Color{R: float64(r>>8) / 255, G: float64(gr>>8) / 255, B: float64(bl>>8) / 255}
				px[0], px[1], px[2] = c.Lab()
				best := -1.0
				for i, lab := range labs {
					if d := floats.Distance(px, lab, 2); best < 0 || d < best {
						best, label = d, i
					}
				}
				memo[key] = label
			}
			g.Set(x, y, label)
		}
	}
	return g, nil
}

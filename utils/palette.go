package utils

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/rs/zerolog/log"
)

type PaletteMethod int

const (
	PaletteMethodKMeans PaletteMethod = iota
	PaletteMethodDominantColor
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodDominantColor:
		return "dominantcolor"
	default:
		return "kmeans"
	}
}

// ParsePaletteMethod accepts the names produced by PaletteMethod.String.
func ParsePaletteMethod(s string) (PaletteMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "kmeans":
		return PaletteMethodKMeans, nil
	case "dominantcolor", "dominant":
		return PaletteMethodDominantColor, nil
	}
	return 0, fmt.Errorf("unknown palette method %q", s)
}

// PaletteEntry describes one paint color as printed on the legend.
type PaletteEntry struct {
	Number int      `json:"number"` // 1-based, equals label+1
	RGB    [3]uint8 `json:"rgb"`
	Hex    string   `json:"hex"`
}

type weightedColor struct {
	col colorful.Color
	w   float64
}

func to8(c colorful.Color) (uint8, uint8, uint8) {
	c = c.Clamped()
	return uint8(math.Round(c.R * 255)), uint8(math.Round(c.G * 255)), uint8(math.Round(c.B * 255))
}

// PaletteMetadata numbers the palette from 1 in palette order.
func PaletteMetadata(palette []colorful.Color) []PaletteEntry {
	out := make([]PaletteEntry, len(palette))
	for i, c := range palette {
		r, g, b := to8(c)
		out[i] = PaletteEntry{
			Number: i + 1,
			RGB:    [3]uint8{r, g, b},
			Hex:    strings.ToUpper(colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Hex()),
		}
	}
	return out
}

// RGBA converts a palette color to an opaque 8-bit color.
func RGBA(c colorful.Color) color.RGBA {
	r, g, b := to8(c)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// SortPaletteByBrightness orders colors by relative luminance, darkest first.
func SortPaletteByBrightness(palette []colorful.Color) {
	luminance := func(c colorful.Color) float64 {
		r, g, b := c.LinearRgb()
		return 0.2126*r + 0.7152*g + 0.0722*b
	}
	slices.SortStableFunc(palette, func(a, b colorful.Color) int {
		la, lb := luminance(a), luminance(b)
		switch {
		case la < lb:
			return -1
		case la > lb:
			return 1
		}
		return 0
	})
}

// ExtractPalette returns up to k colors. The k-means method falls back to the
// dominant-color method when clustering yields nothing.
func ExtractPalette(img image.Image, k int, method PaletteMethod) []colorful.Color {
	if method == PaletteMethodKMeans {
		if p := ExtractKMeansPalette(img, k); len(p) != 0 {
			return p
		}
		log.Warn().Int("k", k).Msg("kmeans returned an empty palette, falling back to dominantcolor")
	}
	return ExtractDominantPalette(img, k)
}

// ExtractDominantPalette over-samples dominant colors and keeps the k that are
// both heavy and far apart in Lab.
func ExtractDominantPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	found := dominantcolor.FindWeight(img, max(24, k*8))
	if len(found) == 0 {
		found = []dominantcolor.Color{{RGBA: color.RGBA{R: 128, G: 128, B: 128, A: 255}, Weight: 1}}
	}
	cands := make([]weightedColor, 0, len(found))
	for _, f := range found {
		col, _ := colorful.MakeColor(f.RGBA)
		cands = append(cands, weightedColor{col: col.Clamped(), w: max(f.Weight, 1e-6)})
	}
	return selectDiverse(cands, k)
}

// selectDiverse is a greedy farthest-point pick seeded with the heaviest
// candidate; each step scores distance to the chosen set, damped by weight.
func selectDiverse(cands []weightedColor, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	k = min(k, len(cands))
	labs := make([][3]float64, len(cands))
	heaviest, maxW := 0, 0.0
	for i, c := range cands {
		l, a, b := c.col.Lab()
		labs[i] = [3]float64{l, a, b}
		if c.w > maxW {
			heaviest, maxW = i, c.w
		}
	}

	// nearest[i] is the squared Lab distance from i to the closest chosen color.
	nearest := make([]float64, len(cands))
	for i := range nearest {
		nearest[i] = math.MaxFloat64
	}
	chosen := make([]bool, len(cands))
	out := make([]colorful.Color, 0, k)
	pick := heaviest
	for {
		chosen[pick] = true
		out = append(out, cands[pick].col)
		if len(out) == k {
			return out
		}
		for i := range cands {
			d0 := labs[i][0] - labs[pick][0]
			d1 := labs[i][1] - labs[pick][1]
			d2 := labs[i][2] - labs[pick][2]
			nearest[i] = min(nearest[i], d0*d0+d1*d1+d2*d2)
		}
		pick = -1
		bestScore := -1.0
		for i := range cands {
			if chosen[i] {
				continue
			}
			score := math.Sqrt(nearest[i]) * (0.55 + 0.45*math.Sqrt(cands[i].w/maxW))
			if score > bestScore {
				pick, bestScore = i, score
			}
		}
		if pick < 0 {
			return out
		}
	}
}

// ExtractKMeansPalette clusters a subsample of opaque pixels into k groups and
// returns the cluster centers, most populated first.
func ExtractKMeansPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	const maxSamples = 12000
	step := 1
	if w*h > maxSamples {
		step = int(math.Sqrt(float64(w*h)/maxSamples)) + 1
	}
	dataset := make(clusters.Observations, 0, min(w*h, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r) / 65535, float64(g) / 65535, float64(bl) / 65535,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	cc, err := kmeans.New().Partition(dataset, min(k, len(dataset)))
	if err != nil {
		log.Warn().Err(err).Int("k", k).Msg("kmeans partition")
		return nil
	}
	slices.SortStableFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})
	out := make([]colorful.Color, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		out = append(out, colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped())
	}
	return out
}

// PaletteSwatch draws the palette as a row of tileSize squares.
func PaletteSwatch(palette []colorful.Color, tileSize int) (*image.RGBA, error) {
	if len(palette) == 0 {
		return nil, fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	img := image.NewRGBA(image.Rect(0, 0, tileSize*len(palette), tileSize))
	for i, c := range palette {
		fill := RGBA(c)
		for y := range tileSize {
			for x := i * tileSize; x < (i+1)*tileSize; x++ {
				img.SetRGBA(x, y, fill)
			}
		}
	}
	return img, nil
}

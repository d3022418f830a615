package utils

import (
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaletteMethod(t *testing.T) {
	for in, want := range map[string]PaletteMethod{
		"":              PaletteMethodKMeans,
		"kmeans":        PaletteMethodKMeans,
		" KMeans ":      PaletteMethodKMeans,
		"dominantcolor": PaletteMethodDominantColor,
		"dominant":      PaletteMethodDominantColor,
	} {
		got, err := ParsePaletteMethod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParsePaletteMethod("octree")
	assert.Error(t, err)

	for _, m := range []PaletteMethod{PaletteMethodKMeans, PaletteMethodDominantColor} {
		got, err := ParsePaletteMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func TestPaletteMetadata(t *testing.T) {
	entries := PaletteMetadata([]colorful.Color{
		{R: 1},
		{R: 0.2, G: 0.4, B: 0.6},
	})
	require.Len(t, entries, 2)
	assert.Equal(t, PaletteEntry{Number: 1, RGB: [3]uint8{255, 0, 0}, Hex: "#FF0000"}, entries[0])
	assert.Equal(t, PaletteEntry{Number: 2, RGB: [3]uint8{51, 102, 153}, Hex: "#336699"}, entries[1])
}

func TestSortPaletteByBrightness(t *testing.T) {
	white := colorful.Color{R: 1, G: 1, B: 1}
	black := colorful.Color{}
	green := colorful.Color{G: 1}
	blue := colorful.Color{B: 1}
	p := []colorful.Color{white, green, black, blue}
	SortPaletteByBrightness(p)
	assert.Equal(t, []colorful.Color{black, blue, green, white}, p)
}

func TestSelectDiverse(t *testing.T) {
	red := colorful.Color{R: 1}
	nearRed := colorful.Color{R: 0.97, G: 0.02}
	blue := colorful.Color{B: 1}
	cands := []weightedColor{
		{col: nearRed, w: 5},
		{col: red, w: 10},
		{col: blue, w: 1},
	}
	got := selectDiverse(cands, 2)
	// heaviest first, then the farthest rather than the heavier near-duplicate
	assert.Equal(t, []colorful.Color{red, blue}, got)

	assert.Len(t, selectDiverse(cands, 10), 3)
	assert.Nil(t, selectDiverse(cands, 0))
	assert.Nil(t, selectDiverse(nil, 3))
}

func TestExtractPalette_Empty(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	assert.Nil(t, ExtractKMeansPalette(img, 0))
	assert.Nil(t, ExtractDominantPalette(img, 0))
	// fully transparent pixels are skipped
	assert.Nil(t, ExtractKMeansPalette(img, 2))
	assert.Nil(t, ExtractKMeansPalette(image.NewRGBA(image.Rectangle{}), 2))
}

func TestExtractKMeansPalette_SingleColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0, 128, 255, 255
	}
	p := ExtractKMeansPalette(img, 1)
	require.Len(t, p, 1)
	assert.Equal(t, color.RGBA{G: 128, B: 255, A: 255}, RGBA(p[0]))
}

func TestPaletteSwatch(t *testing.T) {
	_, err := PaletteSwatch(nil, 8)
	assert.Error(t, err)

	img, err := PaletteSwatch([]colorful.Color{{R: 1}, {B: 1}}, 8)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(7, 7))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, img.RGBAAt(8, 0))

	img, err = PaletteSwatch([]colorful.Color{{}}, 0)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

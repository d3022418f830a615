// Package render turns segmentation results into printable artifacts:
// the numbered outline, the flat-color preview and the palette legend.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Label is a numeral centered on At.
type Label struct {
	At   image.Point
	Text string
}

// haloOffsets are drawn in white under the black numeral so it stays readable
// on top of outline strokes.
var haloOffsets = [4]image.Point{{X: -1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: -1}, {X: 1, Y: 1}}

// FontSize scales numerals with the image width, never below 24pt.
func FontSize(width int) float64 {
	return float64(max(24, width/50))
}

// NumberedImage copies the outline into an RGBA canvas and draws every label
// on it with a face from cache.
func NumberedImage(outline image.Image, labels []Label, cache *FaceCache) (*image.RGBA, error) {
	b := outline.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), outline, b.Min, draw.Src)
	if len(labels) == 0 {
		return dst, nil
	}
	err := cache.WithFace(FontSize(b.Dx()), func(face font.Face) {
		DrawLabels(dst, face, labels)
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// DrawLabels draws each label centered on its point, black over a white halo.
func DrawLabels(dst draw.Image, face font.Face, labels []Label) {
	white := image.NewUniform(color.White)
	black := image.NewUniform(color.Black)
	m := face.Metrics()
	for _, l := range labels {
		adv := font.MeasureString(face, l.Text)
		dot := fixed.Point26_6{
			X: fixed.I(l.At.X) - adv/2,
			Y: fixed.I(l.At.Y) + (m.Ascent-m.Descent)/2,
		}
		d := font.Drawer{Dst: dst, Src: white, Face: face}
		for _, o := range haloOffsets {
			d.Dot = dot.Add(fixed.P(o.X, o.Y))
			d.DrawString(l.Text)
		}
		d.Src = black
		d.Dot = dot
		d.DrawString(l.Text)
	}
}

// Preview paints every pixel with its label's palette color.
// at returns the label of (x,y); labels outside the palette are left white.
func Preview(w, h int, at func(x, y int) int, palette []color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := color.RGBA{R: 255, G: 255, B: 255, A: 255}
			if l := at(x, y); l >= 0 && l < len(palette) {
				c = palette[l]
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

package paintbynumbers

import (
	"image"
	"image/color"
	"strconv"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog/log"

	"github.com/setanarut/paintbynumbers/render"
	"github.com/setanarut/paintbynumbers/utils"
)

type Options struct {
	// Number of paint colors.
	// Ideal start: 8-12. More colors => more, smaller regions.
	NumColors int
	// Input images wider than this are scaled down before quantizing.
	// Letter paper at 300 DPI is 2550 px wide.
	MaxWidth int
	// Regions with fewer pixels are merged into their dominant neighbor and are
	// not numbered. 0 disables merging.
	// Ideal start: ~area/20000. Too low => unpaintable specks.
	MinRegionSize int
	// Merge sweeps. 1 is a single pass; higher values repeat until the
	// grid stops changing.
	MergePasses   int
	PaletteMethod utils.PaletteMethod
}

func DefaultOptions() Options {
	return Options{
		NumColors:     10,
		MaxWidth:      2550,
		MinRegionSize: 300,
		MergePasses:   1,
		PaletteMethod: utils.PaletteMethodKMeans,
	}
}

// OptionsFromSize scales MinRegionSize with the image area.
func OptionsFromSize(size image.Point) Options {
	if size.X <= 0 || size.Y <= 0 {
		return DefaultOptions()
	}
	pixels := size.X * size.Y
	divisor := 20000
	if pixels <= 512*512 {
		divisor = 4000
	} else if pixels > 1920*1080 {
		divisor = 28000
	}
	opt := DefaultOptions()
	opt.MinRegionSize = max(50, min(5000, pixels/divisor))
	return opt
}

// Builder runs the paint-by-numbers pipeline for one image. A Builder is not
// safe for concurrent use; create one per image.
type Builder struct {
	InputImage image.Image
	Image      image.Image // InputImage after resizing
	Palette    []colorful.Color
	Labels     *LabelGrid // quantizer output, before merging
	Seg        *Segmentation
	Faces      *render.FaceCache

	minRegionSize int
}

func NewBuilder(input image.Image) *Builder {
	return &Builder{InputImage: input}
}

// Build resizes, quantizes and segments the input image.
func (b *Builder) Build(opt Options) error {
	if b.InputImage == nil {
		return ErrNoImage
	}
	start := time.Now()
	b.Image = utils.FitWidth(b.InputImage, opt.MaxWidth)
	labels, palette, err := Quantize(b.Image, opt.NumColors, opt.PaletteMethod)
	if err != nil {
		return err
	}
	log.Debug().
		Int("colors", len(palette)).
		Str("method", opt.PaletteMethod.String()).
		Dur("took", time.Since(start)).
		Msg("quantized")
	return b.BuildFromLabels(labels, palette, opt)
}

// BuildFromLabels segments a label grid produced by an external quantizer.
// Only MinRegionSize and MergePasses are read from opt.
func (b *Builder) BuildFromLabels(labels *LabelGrid, palette []colorful.Color, opt Options) error {
	start := time.Now()
	seg, err := segment(labels, opt.MinRegionSize, opt.MergePasses)
	if err != nil {
		return err
	}
	b.Labels = labels
	b.Palette = palette
	b.Seg = seg
	b.minRegionSize = opt.MinRegionSize
	log.Debug().
		Int("width", labels.W).
		Int("height", labels.H).
		Int("regions", len(seg.Regions)).
		Int("min_region_size", opt.MinRegionSize).
		Dur("took", time.Since(start)).
		Msg("segmented")
	return nil
}

func (b *Builder) paletteRGBA() []color.RGBA {
	out := make([]color.RGBA, len(b.Palette))
	for i, c := range b.Palette {
		out[i] = utils.RGBA(c)
	}
	return out
}

// Preview paints the merged grid with the palette colors.
func (b *Builder) Preview() *image.RGBA {
	if b.Seg == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	g := b.Seg.Merged
	return render.Preview(g.W, g.H, g.At, b.paletteRGBA())
}

// LabelLayers returns one layer per palette color: opaque where the merged
// grid holds that color, transparent elsewhere.
func (b *Builder) LabelLayers() []*image.NRGBA {
	if b.Seg == nil || len(b.Palette) == 0 {
		return nil
	}
	g := b.Seg.Merged
	out := make([]*image.NRGBA, len(b.Palette))
	for ch, c := range b.paletteRGBA() {
		layer := image.NewNRGBA(image.Rect(0, 0, g.W, g.H))
		for y := range g.H {
			for x := range g.W {
				if g.At(x, y) == ch {
					layer.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
				}
			}
		}
		out[ch] = layer
	}
	return out
}

func (b *Builder) Outline() *image.Gray {
	if b.Seg == nil {
		return image.NewGray(image.Rectangle{})
	}
	return b.Seg.Borders.Image()
}

// NumberLabels places "label+1" at the anchor of every region that is at
// least MinRegionSize pixels.
func (b *Builder) NumberLabels() []render.Label {
	if b.Seg == nil {
		return nil
	}
	var out []render.Label
	for _, a := range b.Seg.Anchors {
		if b.minRegionSize > 0 && b.Seg.Regions[a.Region].Size() < b.minRegionSize {
			continue
		}
		out = append(out, render.Label{At: a.Point, Text: strconv.Itoa(a.Label + 1)})
	}
	return out
}

// Numbered draws the region numbers over the outline.
func (b *Builder) Numbered() (*image.RGBA, error) {
	faces := b.Faces
	if faces == nil {
		var err error
		if faces, err = render.DefaultFaceCache(); err != nil {
			return nil, err
		}
	}
	return render.NumberedImage(b.Outline(), b.NumberLabels(), faces)
}

func (b *Builder) PaletteEntries() []utils.PaletteEntry {
	return utils.PaletteMetadata(b.Palette)
}

func (b *Builder) Legend() ([]byte, error) {
	return render.LegendPDF(b.PaletteEntries())
}

func (b *Builder) Stats() RegionStats {
	if b.Seg == nil {
		return RegionStats{}
	}
	return ComputeRegionStats(b.Seg.Regions, b.minRegionSize)
}

package paintbynumbers

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrInvalidGrid reports a label grid that is empty or not rectangular.
	ErrInvalidGrid = errors.New("paintbynumbers: label grid must be a non-empty rectangle")
	// ErrEmptyPalette reports that no palette colors could be produced.
	ErrEmptyPalette = errors.New("paintbynumbers: palette is empty")
	// ErrNoImage reports a builder without an input image.
	ErrNoImage = errors.New("paintbynumbers: no input image")
)

// LabelGrid holds one palette index per pixel, row-major: Labels[y*W+x].
type LabelGrid struct {
	W, H   int
	Labels []int // len = W*H
}

// 4-neighbors in probe order: +row, -row, +col, -col.
// Vote and anchor tie-breaks depend on this order.
var neighbors = [4]image.Point{{X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 0}, {X: -1, Y: 0}}

func NewLabelGrid(w, h int) *LabelGrid {
	return &LabelGrid{W: w, H: h, Labels: make([]int, max(w, 0)*max(h, 0))}
}

// LabelGridFrom2D copies rows[y][x] into a new grid.
func LabelGridFrom2D(rows [][]int) (*LabelGrid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: no rows or no columns", ErrInvalidGrid)
	}
	h, w := len(rows), len(rows[0])
	g := NewLabelGrid(w, h)
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidGrid, y, len(row), w)
		}
		copy(g.Labels[y*w:(y+1)*w], row)
	}
	return g, nil
}

func (g *LabelGrid) validate() error {
	if g == nil || g.W <= 0 || g.H <= 0 {
		return fmt.Errorf("%w: zero width or height", ErrInvalidGrid)
	}
	if len(g.Labels) != g.W*g.H {
		return fmt.Errorf("%w: %d labels for %dx%d", ErrInvalidGrid, len(g.Labels), g.W, g.H)
	}
	return nil
}

func (g *LabelGrid) offset(x, y int) int {
	return y*g.W + x
}

func (g *LabelGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

func (g *LabelGrid) At(x, y int) int {
	return g.Labels[g.offset(x, y)]
}

func (g *LabelGrid) Set(x, y, label int) {
	g.Labels[g.offset(x, y)] = label
}

func (g *LabelGrid) Clone() *LabelGrid {
	out := &LabelGrid{W: g.W, H: g.H, Labels: make([]int, len(g.Labels))}
	copy(out.Labels, g.Labels)
	return out
}

// Rows returns the grid as [y][x] slices.
func (g *LabelGrid) Rows() [][]int {
	rows := make([][]int, g.H)
	for y := range g.H {
		rows[y] = make([]int, g.W)
		copy(rows[y], g.Labels[y*g.W:(y+1)*g.W])
	}
	return rows
}

func (g *LabelGrid) Equal(o *LabelGrid) bool {
	if g.W != o.W || g.H != o.H || len(g.Labels) != len(o.Labels) {
		return false
	}
	for i, l := range g.Labels {
		if o.Labels[i] != l {
			return false
		}
	}
	return true
}

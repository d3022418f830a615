package paintbynumbers

import "image"

// Region is a maximal 4-connected set of cells sharing one label.
// Pixels are kept in breadth-first discovery order; X is the column, Y the row.
type Region struct {
	Label  int
	Pixels []image.Point
}

func (r Region) Size() int {
	return len(r.Pixels)
}

// FindRegions partitions g into 4-connected regions of equal label.
// Seeds are taken in row-major order, so for a given grid the region order is
// always the same; merge tie-breaks and numbering rely on it.
//
// Time:   O(W·H).
// Memory: O(W·H) for the visited buffer and output.
func FindRegions(g *LabelGrid) ([]Region, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	w, h := g.W, g.H
	seen := make([]bool, w*h)
	var regions []Region
	var queue []int

	for y := range h {
		for x := range w {
			i0 := g.offset(x, y)
			if seen[i0] {
				continue
			}
			label := g.Labels[i0]
			seen[i0] = true
			queue = append(queue[:0], i0)
			var pixels []image.Point

			for qi := 0; qi < len(queue); qi++ {
				u := queue[qi]
				ux, uy := u%w, u/w
				pixels = append(pixels, image.Point{X: ux, Y: uy})
				for _, d := range neighbors {
					vx, vy := ux+d.X, uy+d.Y
					if !g.InBounds(vx, vy) {
						continue
					}
					vi := g.offset(vx, vy)
					if !seen[vi] && g.Labels[vi] == label {
						seen[vi] = true
						queue = append(queue, vi)
					}
				}
			}
			regions = append(regions, Region{Label: label, Pixels: pixels})
		}
	}
	return regions, nil
}

package paintbynumbers

import "image"

// Anchor is the point inside a region where its number is placed.
type Anchor struct {
	Region int // index into the region list
	Label  int
	Point  image.Point
}

// runLength counts consecutive cells with the same label as (x,y), stepping by
// (dx,dy) and stopping at the grid edge or a different label. (x,y) itself is
// not counted.
func runLength(g *LabelGrid, x, y, dx, dy int) int {
	label := g.At(x, y)
	n := 0
	for nx, ny := x+dx, y+dy; g.InBounds(nx, ny) && g.At(nx, ny) == label; nx, ny = nx+dx, ny+dy {
		n++
	}
	return n
}

// AnchorPoint picks the pixel of r whose product of axis runs
// (left+1)(right+1)(up+1)(down+1) is largest; the first such pixel in r.Pixels
// wins ties. This favors points deep inside the region along both axes but is
// not a centroid, so L-shaped or diagonal regions may get off-center anchors.
//
// Each probe walks up to max(W,H) cells, so a one-pixel-wide stripe spanning the
// grid costs O(n·max(W,H)). Compact regions are close to O(n).
func AnchorPoint(g *LabelGrid, r Region) image.Point {
	if len(r.Pixels) == 0 {
		return image.Point{}
	}
	best := r.Pixels[0]
	bestScore := -1
	for _, p := range r.Pixels {
		left := runLength(g, p.X, p.Y, -1, 0)
		right := runLength(g, p.X, p.Y, 1, 0)
		up := runLength(g, p.X, p.Y, 0, -1)
		down := runLength(g, p.X, p.Y, 0, 1)
		score := (left + 1) * (right + 1) * (up + 1) * (down + 1)
		if score > bestScore {
			bestScore = score
			best = p
		}
	}
	return best
}

// FindAnchors returns one anchor per region, in region order.
// regions must come from FindRegions on the same grid.
func FindAnchors(g *LabelGrid, regions []Region) ([]Anchor, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	anchors := make([]Anchor, len(regions))
	for i, r := range regions {
		anchors[i] = Anchor{Region: i, Label: r.Label, Point: AnchorPoint(g, r)}
	}
	return anchors, nil
}

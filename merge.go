package paintbynumbers

// adjacencyVote counts boundary edges per neighboring label and remembers the
// order labels were first seen, so ties go to the earliest one.
type adjacencyVote struct {
	order  []int
	counts map[int]int
}

func (v *adjacencyVote) add(label int) {
	if _, ok := v.counts[label]; !ok {
		v.order = append(v.order, label)
	}
	v.counts[label]++
}

func (v *adjacencyVote) winner() (int, bool) {
	if len(v.order) == 0 {
		return 0, false
	}
	best := v.order[0]
	for _, l := range v.order[1:] {
		if v.counts[l] > v.counts[best] {
			best = l
		}
	}
	return best, true
}

func (v *adjacencyVote) reset() {
	v.order = v.order[:0]
	clear(v.counts)
}

// MergeSmallRegions relabels every region smaller than minSize with the label
// it shares the most edges with. It is a single sweep over the regions of the
// input grid: a region absorbed early is not revisited, so chains of small
// regions can survive one call. Neighbor labels are read from the output grid,
// which already carries the merges made earlier in the sweep.
//
// For minSize <= 0 the input grid itself is returned. Otherwise the result is a
// new grid and g is left untouched.
func MergeSmallRegions(g *LabelGrid, minSize int) (*LabelGrid, error) {
	if minSize <= 0 {
		return g, nil
	}
	regions, err := FindRegions(g)
	if err != nil {
		return nil, err
	}
	out := g.Clone()
	vote := &adjacencyVote{counts: make(map[int]int)}

	for _, r := range regions {
		if r.Size() >= minSize {
			continue
		}
		vote.reset()
		for _, p := range r.Pixels {
			for _, d := range neighbors {
				nx, ny := p.X+d.X, p.Y+d.Y
				if !out.InBounds(nx, ny) {
					continue
				}
				if l := out.At(nx, ny); l != r.Label {
					vote.add(l)
				}
			}
		}
		replacement, ok := vote.winner()
		if !ok {
			continue
		}
		for _, p := range r.Pixels {
			out.Set(p.X, p.Y, replacement)
		}
	}
	return out, nil
}

// MergeUntilStable repeats MergeSmallRegions until the grid stops changing or
// maxPasses sweeps have run, and reports how many sweeps changed the grid.
// Convergence to zero small regions is not guaranteed.
func MergeUntilStable(g *LabelGrid, minSize, maxPasses int) (*LabelGrid, int, error) {
	if err := g.validate(); err != nil {
		return nil, 0, err
	}
	cur := g
	passes := 0
	for passes < maxPasses {
		next, err := MergeSmallRegions(cur, minSize)
		if err != nil {
			return nil, passes, err
		}
		if next.Equal(cur) {
			break
		}
		cur = next
		passes++
	}
	return cur, passes, nil
}

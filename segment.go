package paintbynumbers

// Segmentation is everything the renderer needs from a label grid.
type Segmentation struct {
	Merged  *LabelGrid
	Borders *BorderMask
	Regions []Region
	Anchors []Anchor
}

// Segment merges regions smaller than minSize, then extracts the border mask
// and one anchor per region of the merged grid. The input grid is not modified.
func Segment(g *LabelGrid, minSize int) (*Segmentation, error) {
	return segment(g, minSize, 1)
}

func segment(g *LabelGrid, minSize, passes int) (*Segmentation, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	var merged *LabelGrid
	var err error
	if passes <= 1 {
		merged, err = MergeSmallRegions(g, minSize)
	} else {
		merged, _, err = MergeUntilStable(g, minSize, passes)
	}
	if err != nil {
		return nil, err
	}
	borders, err := FindBorders(merged)
	if err != nil {
		return nil, err
	}
	regions, err := FindRegions(merged)
	if err != nil {
		return nil, err
	}
	anchors, err := FindAnchors(merged, regions)
	if err != nil {
		return nil, err
	}
	return &Segmentation{
		Merged:  merged,
		Borders: borders,
		Regions: regions,
		Anchors: anchors,
	}, nil
}

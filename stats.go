package paintbynumbers

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// RegionStats summarizes region sizes of a segmentation.
type RegionStats struct {
	Count    int     `json:"count"`
	Smallest int     `json:"smallest"`
	Largest  int     `json:"largest"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Median   float64 `json:"median"`
	// Below counts regions still smaller than the merge threshold.
	Below int `json:"below_min_size"`
}

func ComputeRegionStats(regions []Region, minSize int) RegionStats {
	if len(regions) == 0 {
		return RegionStats{}
	}
	sizes := make([]float64, len(regions))
	st := RegionStats{Count: len(regions), Smallest: regions[0].Size()}
	for i, r := range regions {
		n := r.Size()
		sizes[i] = float64(n)
		st.Smallest = min(st.Smallest, n)
		st.Largest = max(st.Largest, n)
		if n < minSize {
			st.Below++
		}
	}
	st.Mean, st.StdDev = stat.MeanStdDev(sizes, nil)
	if len(sizes) < 2 {
		st.StdDev = 0
	}
	slices.Sort(sizes)
	st.Median = stat.Quantile(0.5, stat.Empirical, sizes, nil)
	return st
}

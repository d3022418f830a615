package paintbynumbers

import "testing"

// BenchmarkFindRegions measures labeling on a 1000×1000 grid with 5 labels.
func BenchmarkFindRegions(b *testing.B) {
	g := randomGrid(42, 1000, 1000, 5)
	b.ResetTimer()
	for b.Loop() {
		_, _ = FindRegions(g)
	}
}

// BenchmarkMergeSmallRegions uses a noisy grid where most regions are small.
func BenchmarkMergeSmallRegions(b *testing.B) {
	g := randomGrid(42, 500, 500, 5)
	b.ResetTimer()
	for b.Loop() {
		_, _ = MergeSmallRegions(g, 20)
	}
}

func BenchmarkFindBorders(b *testing.B) {
	g := randomGrid(42, 1000, 1000, 5)
	b.ResetTimer()
	for b.Loop() {
		_, _ = FindBorders(g)
	}
}

// BenchmarkAnchorPoint_Stripe is the slow case: every probe of a one-pixel
// row spanning the grid walks the whole row.
func BenchmarkAnchorPoint_Stripe(b *testing.B) {
	const n = 2000
	g := NewLabelGrid(n, 3)
	for x := range n {
		g.Set(x, 1, 1)
	}
	regions, err := FindRegions(g)
	if err != nil {
		b.Fatalf("FindRegions: %v", err)
	}
	stripe := regions[1]
	b.ResetTimer()
	for b.Loop() {
		_ = AnchorPoint(g, stripe)
	}
}

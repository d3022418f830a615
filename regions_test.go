package paintbynumbers

import (
	"image"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t testing.TB, rows [][]int) *LabelGrid {
	t.Helper()
	g, err := LabelGridFrom2D(rows)
	require.NoError(t, err)
	return g
}

// randomGrid fills a w×h grid with labels in [0,k) from a fixed seed.
func randomGrid(seed uint64, w, h, k int) *LabelGrid {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	g := NewLabelGrid(w, h)
	for i := range g.Labels {
		g.Labels[i] = r.IntN(k)
	}
	return g
}

func TestLabelGridFrom2D_Invalid(t *testing.T) {
	_, err := LabelGridFrom2D(nil)
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = LabelGridFrom2D([][]int{{}})
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = LabelGridFrom2D([][]int{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrInvalidGrid)
}

func TestLabelGrid_RowsRoundTrip(t *testing.T) {
	rows := [][]int{{0, 1, 2}, {3, 4, 5}}
	g := mustGrid(t, rows)
	assert.Equal(t, 3, g.W)
	assert.Equal(t, 2, g.H)
	assert.Equal(t, 5, g.At(2, 1))
	assert.Equal(t, rows, g.Rows())

	c := g.Clone()
	c.Set(0, 0, 9)
	assert.Equal(t, 0, g.At(0, 0), "clone must not alias")
	assert.False(t, g.Equal(c))
}

func TestFindRegions_InvalidGrid(t *testing.T) {
	cases := map[string]*LabelGrid{
		"nil":        nil,
		"zero width": {W: 0, H: 3},
		"short":      {W: 2, H: 2, Labels: []int{1, 2, 3}},
	}
	for name, g := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FindRegions(g)
			assert.ErrorIs(t, err, ErrInvalidGrid)
		})
	}
}

func TestFindRegions_ThreeRegions(t *testing.T) {
	g := mustGrid(t, [][]int{
		{0, 0, 1},
		{0, 0, 1},
		{2, 2, 1},
	})
	regions, err := FindRegions(g)
	require.NoError(t, err)
	require.Len(t, regions, 3)

	// seed order is row-major
	assert.Equal(t, 0, regions[0].Label)
	assert.Equal(t, 1, regions[1].Label)
	assert.Equal(t, 2, regions[2].Label)
	assert.Equal(t, []int{4, 3, 2}, []int{regions[0].Size(), regions[1].Size(), regions[2].Size()})
}

func TestFindRegions_SameLabelNotConnected(t *testing.T) {
	// diagonal contact does not connect
	g := mustGrid(t, [][]int{
		{1, 0},
		{0, 1},
	})
	regions, err := FindRegions(g)
	require.NoError(t, err)
	assert.Len(t, regions, 4)
}

func TestFindRegions_DiscoveryOrder(t *testing.T) {
	g := mustGrid(t, [][]int{
		{7, 7, 7},
		{7, 7, 7},
	})
	regions, err := FindRegions(g)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	// BFS from (0,0) probing +row, -row, +col, -col.
	want := []image.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}, {X: 2, Y: 1}}
	assert.Equal(t, want, regions[0].Pixels)
}

func TestFindRegions_UniformGrid(t *testing.T) {
	g := NewLabelGrid(5, 4)
	regions, err := FindRegions(g)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, 20, regions[0].Size())
}

func TestFindRegions_Partition(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		g := randomGrid(seed, 17, 11, 3)
		regions, err := FindRegions(g)
		require.NoError(t, err)

		owner := make([]int, len(g.Labels))
		for i := range owner {
			owner[i] = -1
		}
		for ri, r := range regions {
			for _, p := range r.Pixels {
				i := g.offset(p.X, p.Y)
				require.Equal(t, -1, owner[i], "pixel %v in two regions", p)
				owner[i] = ri
				assert.Equal(t, r.Label, g.Labels[i])
			}
		}
		for i, o := range owner {
			assert.NotEqual(t, -1, o, "pixel %d not covered", i)
		}
	}
}

func TestFindRegions_LongStripe(t *testing.T) {
	// a serpentine path spanning the grid must not blow the stack
	const n = 400
	g := NewLabelGrid(n, n)
	for y := range n {
		for x := range n {
			if y%2 == 1 && !(y%4 == 1 && x == n-1) && !(y%4 == 3 && x == 0) {
				g.Set(x, y, 1)
			}
		}
	}
	regions, err := FindRegions(g)
	require.NoError(t, err)
	assert.Equal(t, 0, regions[0].Label)
	total := 0
	for _, r := range regions {
		total += r.Size()
	}
	assert.Equal(t, n*n, total)
}

package kdtree

import (
	"math"
	"math/rand"
	"slices"
	"testing"
)

// subtreeCount counts the ids of the subtree rooted at id in a complete
// binary tree of n nodes.
func subtreeCount(id, n int) int {
	if id > n {
		return 0
	}
	return 1 + subtreeCount(2*id, n) + subtreeCount(2*id+1, n)
}

func TestLeftSubtreeSize_Table(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{1, 0},
		{2, 1},
		{3, 1},
		{4, 2},
		{5, 3},
		{6, 3},
		{7, 3},
		{8, 4},
		{9, 5},
		{10, 6},
		{11, 7},
		{12, 7},
		{15, 7},
		{16, 8},
	}
	for _, tt := range tests {
		if got := leftSubtreeSize(tt.n); got != tt.want {
			t.Errorf("leftSubtreeSize(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestLeftSubtreeSize_MatchesLayout(t *testing.T) {
	for n := 1; n <= 2048; n++ {
		if got, want := leftSubtreeSize(n), subtreeCount(2, n); got != want {
			t.Fatalf("leftSubtreeSize(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestSplitAxis(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi []float64
		want   int
	}{
		{"widest y", []float64{0, 0}, []float64{1, 5}, 1},
		{"widest x", []float64{-10, 0}, []float64{10, 5}, 0},
		{"tie goes low", []float64{0, 0, 0}, []float64{3, 3, 3}, 0},
		{"tie after first", []float64{0, 0, 0}, []float64{1, 3, 3}, 1},
		{"flat", []float64{2, 2}, []float64{2, 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitAxis(tt.lo, tt.hi); got != tt.want {
				t.Errorf("splitAxis = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	pts := []Vec2[float64]{{1, 5}, {-2, 3}, {4, -1}}
	lo, hi := bounds[float64](pts, 2)
	if !slices.Equal(lo, []float64{-2, -1}) {
		t.Errorf("lo = %v, want [-2 -1]", lo)
	}
	if !slices.Equal(hi, []float64{4, 5}) {
		t.Errorf("hi = %v, want [4 5]", hi)
	}
}

func TestBounds_InfiniteSeeds(t *testing.T) {
	// Coordinates beyond any finite seed must still widen the box.
	pts := []Vec2[float64]{{-math.MaxFloat64, 0}, {math.MaxFloat64, 0}}
	lo, hi := bounds[float64](pts, 2)
	if lo[0] != -math.MaxFloat64 || hi[0] != math.MaxFloat64 {
		t.Errorf("bounds = %v, %v, want +-MaxFloat64 on axis 0", lo, hi)
	}
}

// --- Selection tests ---

func newTestBuilder(pts []Vec2[float64]) *builder[float64, Vec2[float64], int] {
	ids := make([]int, len(pts))
	for i := range ids {
		ids[i] = i
	}
	return &builder[float64, Vec2[float64], int]{points: pts, ids: ids}
}

func checkSelected(t *testing.T, b *builder[float64, Vec2[float64], int], orig []Vec2[float64], start, end, k, axis int) {
	t.Helper()
	pivot := b.points[k].Coord(axis)
	for i := start; i < k; i++ {
		if b.points[i].Coord(axis) > pivot {
			t.Fatalf("k=%d: points[%d] = %v > pivot %v", k, i, b.points[i].Coord(axis), pivot)
		}
	}
	for i := k + 1; i < end; i++ {
		if b.points[i].Coord(axis) < pivot {
			t.Fatalf("k=%d: points[%d] = %v < pivot %v", k, i, b.points[i].Coord(axis), pivot)
		}
	}
	for i := start; i < end; i++ {
		if b.points[i] != orig[b.ids[i]] {
			t.Fatalf("k=%d: points[%d] = %v no longer paired with id %d", k, i, b.points[i], b.ids[i])
		}
	}

	sorted := make([]float64, 0, end-start)
	for _, p := range orig[start:end] {
		sorted = append(sorted, p.Coord(axis))
	}
	slices.Sort(sorted)
	if pivot != sorted[k-start] {
		t.Fatalf("k=%d: pivot = %v, want %v", k, pivot, sorted[k-start])
	}
}

func TestSelectNth_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	for _, n := range []int{1, 2, 5, 11, 12, 13, 50, 257} {
		for _, axis := range []int{0, 1} {
			for trial := 0; trial < 5; trial++ {
				orig := randomVec2(rng, n)
				k := rng.Intn(n)
				b := newTestBuilder(slices.Clone(orig))
				b.selectNth(0, n, k, axis)
				checkSelected(t, b, orig, 0, n, k, axis)
			}
		}
	}
}

func TestSelectNth_Duplicates(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, side := range []int{1, 2, 5} {
		orig := gridVec2(rng, 300, side)
		for _, k := range []int{0, 1, 149, 150, 298, 299} {
			b := newTestBuilder(slices.Clone(orig))
			b.selectNth(0, len(orig), k, 0)
			checkSelected(t, b, orig, 0, len(orig), k, 0)
		}
	}
}

func TestSelectNth_SubRange(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	orig := randomVec2(rng, 100)
	b := newTestBuilder(slices.Clone(orig))
	b.selectNth(20, 80, 50, 1)

	// Outside the range nothing moves.
	for i := range 20 {
		if b.points[i] != orig[i] || b.points[99-i] != orig[99-i] {
			t.Fatalf("selectNth touched index %d or %d outside [20, 80)", i, 99-i)
		}
	}
	checkSelected(t, b, orig, 20, 80, 50, 1)
}

func TestSelectNth_Sorted(t *testing.T) {
	orig := make([]Vec2[float64], 200)
	for i := range orig {
		orig[i] = Vec2[float64]{float64(i), 0}
	}
	for _, in := range [][]Vec2[float64]{orig, reversed(orig)} {
		b := newTestBuilder(slices.Clone(in))
		b.selectNth(0, len(in), 100, 0)
		if b.points[100][0] != 100 {
			t.Errorf("points[100] = %v, want x=100", b.points[100])
		}
	}
}

func reversed(pts []Vec2[float64]) []Vec2[float64] {
	out := slices.Clone(pts)
	slices.Reverse(out)
	return out
}

func TestMedianOfThree(t *testing.T) {
	b := newTestBuilder([]Vec2[float64]{{3, 0}, {1, 0}, {2, 0}})
	perms := [][3]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for _, p := range perms {
		if got := b.medianOfThree(p[0], p[1], p[2], 0); got != 2 {
			t.Errorf("medianOfThree(%v) = %v, want 2", p, got)
		}
	}
}

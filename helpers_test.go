package kdtree

import (
	"math"
	"math/rand"
	"slices"
)

const floatTol = 1e-10

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// scenarioPoints is the five-point layout used across the query tests.
func scenarioPoints() []Vec2[float64] {
	return []Vec2[float64]{{0, 0}, {10, 0}, {0, 10}, {10, 10}, {5, 5}}
}

func randomVec2(rng *rand.Rand, n int) []Vec2[float64] {
	pts := make([]Vec2[float64], n)
	for i := range pts {
		pts[i] = Vec2[float64]{rng.Float64() * 100, rng.Float64() * 100}
	}
	return pts
}

func randomVec3(rng *rand.Rand, n int) []Vec3[float64] {
	pts := make([]Vec3[float64], n)
	for i := range pts {
		pts[i] = Vec3[float64]{rng.Float64() * 100, rng.Float64() * 100, rng.Float64() * 100}
	}
	return pts
}

func randomVecN(rng *rand.Rand, n, dims int) []VecN[float64] {
	pts := make([]VecN[float64], n)
	for i := range pts {
		pts[i] = make(VecN[float64], dims)
		for d := range pts[i] {
			pts[i][d] = rng.Float64() * 100
		}
	}
	return pts
}

// gridVec2 returns points on a small integer grid, so many coordinates are
// equal along every axis.
func gridVec2(rng *rand.Rand, n, side int) []Vec2[float64] {
	pts := make([]Vec2[float64], n)
	for i := range pts {
		pts[i] = Vec2[float64]{float64(rng.Intn(side)), float64(rng.Intn(side))}
	}
	return pts
}

// buildPair builds a tree and a linear scan over the same points. The tree
// gets its own copy, since building reorders the input.
func buildPair[S Scalar, P Point[S]](pts []P, cfg Config) (*Tree[S, P, int], *Linear[S, P, int]) {
	lin, err := NewLinear[S, P, int](pts, nil)
	if err != nil {
		panic(err)
	}
	tree, err := New[S, P, int](slices.Clone(pts), nil, cfg)
	if err != nil {
		panic(err)
	}
	return tree, lin
}

// collect returns every index search reports for query, sorted.
func collect[S Scalar, P Point[S]](search func(P, S, Visitor[S, P, int]), query P, radiusSq S) []int {
	var ids []int
	search(query, radiusSq, func(index int, _ P, _ S, _ *S) {
		ids = append(ids, index)
	})
	slices.Sort(ids)
	return ids
}

func neighborIndices[S Scalar, P Point[S]](ns []Neighbor[S, P, int]) []int {
	ids := make([]int, len(ns))
	for i, nb := range ns {
		ids[i] = nb.Index
	}
	slices.Sort(ids)
	return ids
}

// bruteForceKNN returns the sorted k nearest neighbors of query by scanning
// every point.
func bruteForceKNN[S Scalar, P Point[S]](pts []P, query P, k int) []Neighbor[S, P, int] {
	all := make([]Neighbor[S, P, int], len(pts))
	for i, p := range pts {
		all[i] = Neighbor[S, P, int]{Index: i, Pos: p, DistSq: DistSq[S](query, p)}
	}
	SortNeighbors(all)
	return all[:min(k, len(all))]
}

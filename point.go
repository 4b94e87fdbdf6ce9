package kdtree

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// MaxDims is the largest dimensionality a tree accepts. The split axis of a
// node is stored in a single byte.
const MaxDims = 256

// Scalar is the coordinate type of a point.
type Scalar interface {
	~float32 | ~float64
}

// Index is the type used to identify points: their position in the input,
// or an identifier supplied by the caller.
type Index interface {
	constraints.Integer
}

// Point is a position with a fixed number of dimensions. All points given to
// a tree must report the same Dims.
type Point[S Scalar] interface {
	Dims() int
	Coord(axis int) S
}

// Vec2 is a two-dimensional point.
type Vec2[S Scalar] [2]S

func (Vec2[S]) Dims() int          { return 2 }
func (v Vec2[S]) Coord(axis int) S { return v[axis] }

// Vec3 is a three-dimensional point.
type Vec3[S Scalar] [3]S

func (Vec3[S]) Dims() int          { return 3 }
func (v Vec3[S]) Coord(axis int) S { return v[axis] }

// VecN is a point of any dimensionality backed by a slice. The tree stores
// the slice header, not a copy of the coordinates; callers must not modify
// the backing array after building.
type VecN[S Scalar] []S

func (v VecN[S]) Dims() int        { return len(v) }
func (v VecN[S]) Coord(axis int) S { return v[axis] }

// R2 adapts a gonum r2.Vec to the Point interface.
type R2 r2.Vec

func (R2) Dims() int { return 2 }

func (p R2) Coord(axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	}
	panic(fmt.Sprintf("kdtree: axis %d out of range for R2", axis))
}

// Vec returns p as a gonum vector.
func (p R2) Vec() r2.Vec { return r2.Vec(p) }

// R3 adapts a gonum r3.Vec to the Point interface.
type R3 r3.Vec

func (R3) Dims() int { return 3 }

func (p R3) Coord(axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	case 2:
		return p.Z
	}
	panic(fmt.Sprintf("kdtree: axis %d out of range for R3", axis))
}

// Vec returns p as a gonum vector.
func (p R3) Vec() r3.Vec { return r3.Vec(p) }

// R2Points converts gonum vectors to tree points.
func R2Points(vs []r2.Vec) []R2 {
	pts := make([]R2, len(vs))
	for i, v := range vs {
		pts[i] = R2(v)
	}
	return pts
}

// R3Points converts gonum vectors to tree points.
func R3Points(vs []r3.Vec) []R3 {
	pts := make([]R3, len(vs))
	for i, v := range vs {
		pts[i] = R3(v)
	}
	return pts
}

// DistSq returns the squared Euclidean distance between a and b.
func DistSq[S Scalar, P Point[S]](a, b P) S {
	var sum S
	for d := range a.Dims() {
		diff := a.Coord(d) - b.Coord(d)
		sum += diff * diff
	}
	return sum
}

// inf returns +Inf in the scalar type.
func inf[S Scalar]() S {
	return S(math.Inf(1))
}

// Package geom provides the geometric primitives the quadrature engine
// needs from a mesh: measures, centroids and simplex decompositions of
// cells and faces. Entities are value types built from vertex
// coordinates so they can be constructed directly from any mesh
// representation.
package geom

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Point is a position in physical space.
type Point [3]float64

func (p Point) X() float64 { return p[0] }
func (p Point) Y() float64 { return p[1] }
func (p Point) Z() float64 { return p[2] }

func (p Point) Add(q Point) Point {
	return Point{p[0] + q[0], p[1] + q[1], p[2] + q[2]}
}

func (p Point) Sub(q Point) Point {
	return Point{p[0] - q[0], p[1] - q[1], p[2] - q[2]}
}

func (p Point) Scale(a float64) Point {
	return Point{a * p[0], a * p[1], a * p[2]}
}

// Cross returns the cross product p × q.
func (p Point) Cross(q Point) Point {
	return Point{
		p[1]*q[2] - p[2]*q[1],
		p[2]*q[0] - p[0]*q[2],
		p[0]*q[1] - p[1]*q[0],
	}
}

func (p Point) Norm() float64 {
	return math.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
}

// Entity is a geometric object that quadrature can integrate over.
// Measure returns the entity's area (faces) or volume (cells); a valid
// mesh yields strictly positive measures.
type Entity interface {
	Measure() float64
	Centroid() Point
	// Simplices decomposes the entity into simplices (tetrahedra for
	// volumes, triangles for surfaces) whose measures sum to the
	// entity measure. Simplicial entities return themselves.
	Simplices() []Simplex
}

// Simplex is a tetrahedron or triangle produced by decomposition.
type Simplex interface {
	Entity
	Vertices() []Point
}

// Tet is a tetrahedron given by its four vertices.
type Tet struct {
	V [4]Point
}

func NewTet(a, b, c, d Point) Tet {
	return Tet{V: [4]Point{a, b, c, d}}
}

// Measure returns the signed volume; it is positive when the vertices
// are positively oriented (right-handed).
func (t Tet) Measure() float64 {
	e1 := t.V[1].Sub(t.V[0])
	e2 := t.V[2].Sub(t.V[0])
	e3 := t.V[3].Sub(t.V[0])
	j := mat.NewDense(3, 3, []float64{
		e1[0], e1[1], e1[2],
		e2[0], e2[1], e2[2],
		e3[0], e3[1], e3[2],
	})
	return mat.Det(j) / 6.0
}

func (t Tet) Centroid() Point {
	return t.V[0].Add(t.V[1]).Add(t.V[2]).Add(t.V[3]).Scale(0.25)
}

func (t Tet) Simplices() []Simplex {
	return []Simplex{t}
}

func (t Tet) Vertices() []Point {
	return t.V[:]
}

// Tri is a planar triangle in 3D space.
type Tri struct {
	V [3]Point
}

func NewTri(a, b, c Point) Tri {
	return Tri{V: [3]Point{a, b, c}}
}

// Measure returns the triangle area (always non-negative).
func (t Tri) Measure() float64 {
	e1 := t.V[1].Sub(t.V[0])
	e2 := t.V[2].Sub(t.V[0])
	return 0.5 * e1.Cross(e2).Norm()
}

func (t Tri) Centroid() Point {
	return t.V[0].Add(t.V[1]).Add(t.V[2]).Scale(1.0 / 3.0)
}

func (t Tri) Simplices() []Simplex {
	return []Simplex{t}
}

func (t Tri) Vertices() []Point {
	return t.V[:]
}

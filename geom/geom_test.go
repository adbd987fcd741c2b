package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTetMeasure(t *testing.T) {
	// Unit right tetrahedron has volume 1/6.
	tet := NewTet(
		Point{0, 0, 0}, Point{1, 0, 0}, Point{0, 1, 0}, Point{0, 0, 1},
	)
	assert.InDelta(t, 1.0/6.0, tet.Measure(), 1e-14)

	// Swapping two vertices flips the orientation.
	flipped := NewTet(
		Point{0, 0, 0}, Point{0, 1, 0}, Point{1, 0, 0}, Point{0, 0, 1},
	)
	assert.InDelta(t, -1.0/6.0, flipped.Measure(), 1e-14)

	// Coplanar vertices give a degenerate tet.
	flat := NewTet(
		Point{0, 0, 0}, Point{1, 0, 0}, Point{0, 1, 0}, Point{1, 1, 0},
	)
	assert.InDelta(t, 0.0, flat.Measure(), 1e-14)
}

func TestTetCentroid(t *testing.T) {
	tet := NewTet(
		Point{0, 0, 0}, Point{1, 0, 0}, Point{0, 1, 0}, Point{0, 0, 1},
	)
	c := tet.Centroid()
	assert.InDelta(t, 0.25, c.X(), 1e-14)
	assert.InDelta(t, 0.25, c.Y(), 1e-14)
	assert.InDelta(t, 0.25, c.Z(), 1e-14)
}

func TestTriMeasure(t *testing.T) {
	tri := NewTri(Point{0, 0, 0}, Point{1, 0, 0}, Point{0, 1, 0})
	assert.InDelta(t, 0.5, tri.Measure(), 1e-14)

	// Area is orientation independent.
	rev := NewTri(Point{0, 1, 0}, Point{1, 0, 0}, Point{0, 0, 0})
	assert.InDelta(t, 0.5, rev.Measure(), 1e-14)
}

func TestFaceDecomposition(t *testing.T) {
	// Unit square face in the z=0 plane.
	f := NewFace(Point{0, 0, 0}, Point{1, 0, 0}, Point{1, 1, 0}, Point{0, 1, 0})

	assert.InDelta(t, 1.0, f.Measure(), 1e-14)
	c := f.Centroid()
	assert.InDelta(t, 0.5, c.X(), 1e-14)
	assert.InDelta(t, 0.5, c.Y(), 1e-14)

	var sum float64
	for _, tri := range f.Simplices() {
		sum += tri.Measure()
	}
	assert.InDelta(t, f.Measure(), sum, 1e-14)
}

func TestHexCellDecomposition(t *testing.T) {
	c := NewHexCell(0, 0, 0, 1, 1, 1)

	assert.InDelta(t, 1.0, c.Measure(), 1e-13)

	ctr := c.Centroid()
	assert.InDelta(t, 0.5, ctr.X(), 1e-13)
	assert.InDelta(t, 0.5, ctr.Y(), 1e-13)
	assert.InDelta(t, 0.5, ctr.Z(), 1e-13)

	var sum float64
	for _, tet := range c.Simplices() {
		vol := tet.Measure()
		if vol <= 0 {
			t.Fatalf("sub-tet with non-positive volume %g", vol)
		}
		sum += vol
	}
	assert.InDelta(t, c.Measure(), sum, 1e-13)
}

func TestStretchedHexCell(t *testing.T) {
	c := NewHexCell(-1, 0, 2, 3, 0.5, 4)
	assert.InDelta(t, 4*0.5*2, c.Measure(), 1e-12)
}

func TestPointOps(t *testing.T) {
	p := Point{1, 2, 3}
	q := Point{4, 5, 6}

	assert.Equal(t, Point{5, 7, 9}, p.Add(q))
	assert.Equal(t, Point{-3, -3, -3}, p.Sub(q))
	assert.Equal(t, Point{2, 4, 6}, p.Scale(2))
	assert.Equal(t, Point{-3, 6, -3}, p.Cross(q))
	assert.InDelta(t, math.Sqrt(14), p.Norm(), 1e-14)
}

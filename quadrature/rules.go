package quadrature

import "math"

// A gaussRule holds quadrature nodes in barycentric coordinates of the
// reference simplex together with weights relative to the simplex
// measure. Weights sum to exactly 1 so that integrating a constant
// reproduces value × measure.
type gaussRule struct {
	coords  [][4]float64 // barycentric; triangles use the first three
	weights []float64
}

// tet4 is the 4-point tetrahedron rule, exact for polynomials of
// degree <= 2.
var tet4 = func() gaussRule {
	a := (5.0 - math.Sqrt(5)) / 20.0
	b := (5.0 + 3.0*math.Sqrt(5)) / 20.0
	return gaussRule{
		coords: [][4]float64{
			{b, a, a, a},
			{a, b, a, a},
			{a, a, b, a},
			{a, a, a, b},
		},
		weights: []float64{0.25, 0.25, 0.25, 0.25},
	}
}()

// tet5 is the 5-point tetrahedron rule (barycenter plus four points),
// exact for polynomials of degree <= 3.
var tet5 = gaussRule{
	coords: [][4]float64{
		{0.25, 0.25, 0.25, 0.25},
		{0.5, 1.0 / 6.0, 1.0 / 6.0, 1.0 / 6.0},
		{1.0 / 6.0, 0.5, 1.0 / 6.0, 1.0 / 6.0},
		{1.0 / 6.0, 1.0 / 6.0, 0.5, 1.0 / 6.0},
		{1.0 / 6.0, 1.0 / 6.0, 1.0 / 6.0, 0.5},
	},
	weights: []float64{-0.8, 0.45, 0.45, 0.45, 0.45},
}

// tri3 is the 3-point edge-midpoint triangle rule, exact for
// polynomials of degree <= 2.
var tri3 = gaussRule{
	coords: [][4]float64{
		{0.5, 0.5, 0},
		{0, 0.5, 0.5},
		{0.5, 0, 0.5},
	},
	weights: []float64{1.0 / 3.0, 1.0 / 3.0, 1.0 / 3.0},
}

// tri4 is the 4-point triangle rule (barycenter plus three points),
// exact for polynomials of degree <= 3.
var tri4 = gaussRule{
	coords: [][4]float64{
		{1.0 / 3.0, 1.0 / 3.0, 1.0 / 3.0},
		{0.6, 0.2, 0.2},
		{0.2, 0.6, 0.2},
		{0.2, 0.2, 0.6},
	},
	weights: []float64{-27.0 / 48.0, 25.0 / 48.0, 25.0 / 48.0, 25.0 / 48.0},
}

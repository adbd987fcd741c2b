package geom

// Face is a planar polygon given by its vertices in winding order.
// Non-triangular faces are decomposed into triangles fanned from the
// face centroid, so the decomposition is valid for any star-shaped
// polygon.
type Face struct {
	verts    []Point
	tris     []Simplex
	area     float64
	centroid Point
}

// NewFace builds a face from at least three vertices in winding order.
func NewFace(verts ...Point) Face {
	f := Face{verts: verts}

	// Provisional apex: vertex mean. Exact for triangles; for general
	// polygons the area-weighted centroid is recomputed below.
	apex := Point{}
	for _, v := range verts {
		apex = apex.Add(v)
	}
	apex = apex.Scale(1.0 / float64(len(verts)))

	if len(verts) == 3 {
		tri := NewTri(verts[0], verts[1], verts[2])
		f.tris = []Simplex{tri}
		f.area = tri.Measure()
		f.centroid = tri.Centroid()
		return f
	}

	f.tris = make([]Simplex, 0, len(verts))
	var wc Point
	for i := range verts {
		tri := NewTri(apex, verts[i], verts[(i+1)%len(verts)])
		a := tri.Measure()
		f.tris = append(f.tris, tri)
		f.area += a
		wc = wc.Add(tri.Centroid().Scale(a))
	}
	if f.area > 0 {
		f.centroid = wc.Scale(1.0 / f.area)
	} else {
		f.centroid = apex
	}
	return f
}

func (f Face) Measure() float64 {
	return f.area
}

func (f Face) Centroid() Point {
	return f.centroid
}

func (f Face) Simplices() []Simplex {
	return f.tris
}

func (f Face) Vertices() []Point {
	return f.verts
}

// Cell is a polyhedron bounded by planar faces. It decomposes into
// tetrahedra anchored at the cell centroid over each face triangle,
// the decomposition used by cell-based quadrature for non-simplicial
// cells.
type Cell struct {
	faces    []Face
	tets     []Simplex
	volume   float64
	centroid Point
}

// NewCell builds a cell from its bounding faces. Face winding does not
// need to be globally consistent: sub-tetrahedra with negative signed
// volume are reoriented.
func NewCell(faces ...Face) Cell {
	c := Cell{faces: faces}

	// Provisional apex: mean of all face vertices.
	var apex Point
	var n int
	for _, f := range faces {
		for _, v := range f.Vertices() {
			apex = apex.Add(v)
			n++
		}
	}
	if n > 0 {
		apex = apex.Scale(1.0 / float64(n))
	}

	var wc Point
	for _, f := range faces {
		for _, tri := range f.Simplices() {
			v := tri.Vertices()
			tet := NewTet(apex, v[0], v[1], v[2])
			if tet.Measure() < 0 {
				tet = NewTet(apex, v[1], v[0], v[2])
			}
			vol := tet.Measure()
			c.tets = append(c.tets, tet)
			c.volume += vol
			wc = wc.Add(tet.Centroid().Scale(vol))
		}
	}
	if c.volume > 0 {
		c.centroid = wc.Scale(1.0 / c.volume)
	} else {
		c.centroid = apex
	}
	return c
}

// NewHexCell builds the hexahedral cell with extents [x0,x1]×[y0,y1]×[z0,z1].
func NewHexCell(x0, y0, z0, x1, y1, z1 float64) Cell {
	v := [8]Point{
		{x0, y0, z0}, {x1, y0, z0}, {x1, y1, z0}, {x0, y1, z0},
		{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1},
	}
	return NewCell(
		NewFace(v[0], v[3], v[2], v[1]), // bottom
		NewFace(v[4], v[5], v[6], v[7]), // top
		NewFace(v[0], v[1], v[5], v[4]),
		NewFace(v[1], v[2], v[6], v[5]),
		NewFace(v[2], v[3], v[7], v[6]),
		NewFace(v[3], v[0], v[4], v[7]),
	)
}

func (c Cell) Measure() float64 {
	return c.volume
}

func (c Cell) Centroid() Point {
	return c.centroid
}

func (c Cell) Simplices() []Simplex {
	return c.tets
}

func (c Cell) Faces() []Face {
	return c.faces
}

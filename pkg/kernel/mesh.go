package kernel

// Mesh is a triangle mesh suitable for export or rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // which part this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// BoundingBox returns the axis-aligned bounds of the mesh vertices.
// Zero boxes are returned for an empty mesh.
func (m *Mesh) BoundingBox() (min, max [3]float64) {
	if m.IsEmpty() {
		return min, max
	}
	for a := 0; a < 3; a++ {
		min[a] = float64(m.Vertices[a])
		max[a] = float64(m.Vertices[a])
	}
	for i := 3; i+2 < len(m.Vertices); i += 3 {
		for a := 0; a < 3; a++ {
			v := float64(m.Vertices[i+a])
			if v < min[a] {
				min[a] = v
			}
			if v > max[a] {
				max[a] = v
			}
		}
	}
	return min, max
}

// vertex returns the position of vertex i.
func (m *Mesh) vertex(i uint32) [3]float64 {
	j := int(i) * 3
	return [3]float64{
		float64(m.Vertices[j]),
		float64(m.Vertices[j+1]),
		float64(m.Vertices[j+2]),
	}
}

// Volume returns the enclosed volume of the mesh by the signed
// tetrahedron sum (divergence theorem). The result is only meaningful
// for a closed, consistently oriented mesh; check Manifold first. The
// sign convention is positive for outward-facing triangles.
func (m *Mesh) Volume() float64 {
	var v float64
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.vertex(m.Indices[i])
		b := m.vertex(m.Indices[i+1])
		c := m.vertex(m.Indices[i+2])
		// a . (b x c)
		v += a[0]*(b[1]*c[2]-b[2]*c[1]) +
			a[1]*(b[2]*c[0]-b[0]*c[2]) +
			a[2]*(b[0]*c[1]-b[1]*c[0])
	}
	return v / 6
}

// Manifold reports whether the mesh is a closed, consistently oriented
// surface: every directed edge is matched by exactly one opposite
// directed edge. Vertices are merged by exact position, which holds for
// meshers that emit shared edge crossings bit-identically (marching
// cubes does).
func (m *Mesh) Manifold() bool {
	if m.IsEmpty() || len(m.Indices)%3 != 0 {
		return false
	}
	type vkey [3]float32
	type ekey struct{ a, b vkey }

	keyOf := func(i uint32) vkey {
		j := int(i) * 3
		return vkey{m.Vertices[j], m.Vertices[j+1], m.Vertices[j+2]}
	}

	edges := make(map[ekey]int)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		v := [3]vkey{keyOf(m.Indices[i]), keyOf(m.Indices[i+1]), keyOf(m.Indices[i+2])}
		for j := 0; j < 3; j++ {
			a, b := v[j], v[(j+1)%3]
			if a == b {
				return false // degenerate edge
			}
			edges[ekey{a, b}]++
		}
	}
	for e, n := range edges {
		if n != 1 || edges[ekey{e.b, e.a}] != 1 {
			return false
		}
	}
	return true
}

package kernel

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// stlHeaderSize is the fixed byte length of a binary STL header.
const stlHeaderSize = 80

// WriteSTL writes the mesh as binary STL. STL carries no units; the
// coordinates are emitted as-is (millimetres throughout this system,
// which is what slicers assume). The mesh should be closed and
// consistently oriented; WriteSTL does not check.
func WriteSTL(w io.Writer, m *Mesh) error {
	if m.IsEmpty() {
		return fmt.Errorf("write stl: empty mesh")
	}

	var header [stlHeaderSize]byte
	copy(header[:], m.PartName)
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write stl header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(m.TriangleCount())); err != nil {
		return fmt.Errorf("write stl count: %w", err)
	}

	// 50 bytes per facet: normal, three vertices, attribute count.
	// Hand-assembled meshes may omit per-vertex normals; those facets
	// get a computed face normal instead.
	hasNormals := len(m.Normals) == len(m.Vertices)
	buf := make([]float32, 0, 12)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		buf = buf[:0]
		if hasNormals {
			ni := int(m.Indices[i]) * 3
			buf = append(buf, m.Normals[ni], m.Normals[ni+1], m.Normals[ni+2])
		} else {
			n := faceNormal(m.vertex(m.Indices[i]), m.vertex(m.Indices[i+1]), m.vertex(m.Indices[i+2]))
			buf = append(buf, n[0], n[1], n[2])
		}
		for j := 0; j < 3; j++ {
			vi := int(m.Indices[i+j]) * 3
			buf = append(buf, m.Vertices[vi], m.Vertices[vi+1], m.Vertices[vi+2])
		}
		if err := binary.Write(w, binary.LittleEndian, buf); err != nil {
			return fmt.Errorf("write stl facet: %w", err)
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
			return fmt.Errorf("write stl facet: %w", err)
		}
	}
	return nil
}

// faceNormal returns the unit normal of the counter-clockwise triangle
// (a, b, c), or the zero vector for a degenerate one.
func faceNormal(a, b, c [3]float64) [3]float32 {
	u := [3]float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	v := [3]float64{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
	n := [3]float64{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
	l := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
	if l == 0 {
		return [3]float32{}
	}
	return [3]float32{float32(n[0] / l), float32(n[1] / l), float32(n[2] / l)}
}

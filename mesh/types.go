package mesh

import (
	"errors"

	"golang.org/x/image/math/f64"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrIndexOutOfRange is returned when a face references a vertex that does not exist.
	ErrIndexOutOfRange = errors.New("vertex index out of range")
	// ErrDuplicateFixedVertex is returned when two constraints pin the same mesh vertex.
	ErrDuplicateFixedVertex = errors.New("fixed vertices resolve to the same mesh vertex")
)

// Mesh is a polygon mesh with per-vertex texture coordinates.
type Mesh struct {
	Vertices []Vertex
	Faces    []Face
}

// Vertex stores the 3D position and the flattened 2D coordinates of a mesh vertex.
type Vertex struct {
	Position r3.Vec
	UV       f64.Vec2
	// Fixed marks vertices whose UV is pinned rather than solved for.
	Fixed bool
}

// Face lists zero-based vertex indices in winding order.
type Face []int

// NumVertices returns the vertex count.
func (m *Mesh) NumVertices() int {
	if m == nil {
		return 0
	}
	return len(m.Vertices)
}

// NumFaces returns the face (cell) count.
func (m *Mesh) NumFaces() int {
	if m == nil {
		return 0
	}
	return len(m.Faces)
}

// FixedIndices returns the indices of pinned vertices in ascending order.
func (m *Mesh) FixedIndices() []int {
	var out []int
	for i, v := range m.Vertices {
		if v.Fixed {
			out = append(out, i)
		}
	}
	return out
}

// FixedVertex is a constraint that pins the mesh vertex nearest to Position.
// Target is only meaningful when HasTarget is set.
type FixedVertex struct {
	Position  r3.Vec   `json:"position"`
	Target    f64.Vec2 `json:"target"`
	HasTarget bool     `json:"hasTarget"`
}

// NewFixedVertex returns a constraint at the given position without a texture target.
func NewFixedVertex(x, y, z float64) FixedVertex {
	return FixedVertex{Position: r3.Vec{X: x, Y: y, Z: z}}
}

// SetTarget attaches the flattened coordinates the vertex is pinned to.
func (f *FixedVertex) SetTarget(u, v float64) {
	f.Target = f64.Vec2{u, v}
	f.HasTarget = true
}

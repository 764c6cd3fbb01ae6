package mesh

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
	"gonum.org/v1/gonum/spatial/r3"
)

// defaultTargets are used for constraints that were never given texture coordinates.
var defaultTargets = []f64.Vec2{{0, 0}, {1, 0}}

// ApplyFixedVertices pins, for every constraint, the mesh vertex closest to
// its position (lowest index on ties). Previously pinned vertices are released.
func ApplyFixedVertices(m *Mesh, fixed []FixedVertex) error {
	if m.NumVertices() == 0 {
		return fmt.Errorf("cannot apply fixed vertices to an empty mesh")
	}
	for i := range m.Vertices {
		m.Vertices[i].Fixed = false
	}

	seen := make(map[int]int, len(fixed))
	for ci, c := range fixed {
		idx := m.Nearest(c.Position)
		if prev, ok := seen[idx]; ok {
			return fmt.Errorf("constraints #%d and #%d both select vertex %d: %w", prev, ci, idx, ErrDuplicateFixedVertex)
		}
		seen[idx] = ci

		target := c.Target
		if !c.HasTarget {
			target = defaultTarget(ci)
		}
		m.Vertices[idx].Fixed = true
		m.Vertices[idx].UV = target
	}
	return nil
}

// Nearest returns the index of the vertex closest to p, or -1 for an empty mesh.
func (m *Mesh) Nearest(p r3.Vec) int {
	best := -1
	bestDist := math.Inf(1)
	for i, v := range m.Vertices {
		if d := r3.Norm2(r3.Sub(v.Position, p)); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func defaultTarget(i int) f64.Vec2 {
	if i < len(defaultTargets) {
		return defaultTargets[i]
	}
	return f64.Vec2{float64(i), 0}
}

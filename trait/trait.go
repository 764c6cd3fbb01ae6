// Package trait derives per-triangle geometric data (local frames, areas)
// that the conformal map solver works on.
package trait

import (
	"errors"
	"fmt"

	"golang.org/x/image/math/f64"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ByLCY/conformal/mesh"
)

// minArea is the area below which a triangle is treated as degenerate.
const minArea = 1e-12

// ErrNoTriangles is returned when a mesh has no non-degenerate triangle.
var ErrNoTriangles = errors.New("mesh has no usable triangles")

// Triangle is one triangle of the fan-triangulated mesh expressed in its own
// orthonormal 2D frame: corner 0 at the origin, corner 1 on the +x axis.
type Triangle struct {
	Face    int
	Indices [3]int
	Local   [3]f64.Vec2
	Area    float64
}

// Traits holds the derived data for a mesh.
type Traits struct {
	Triangles []Triangle
	// Degenerate counts triangles skipped because of zero area.
	Degenerate int
}

// Build fan-triangulates every face of m and computes local frames.
func Build(m *mesh.Mesh) (*Traits, error) {
	t := &Traits{}
	for fi, f := range m.Faces {
		for k := 1; k+1 < len(f); k++ {
			idx := [3]int{f[0], f[k], f[k+1]}
			for _, i := range idx {
				if i < 0 || i >= len(m.Vertices) {
					return nil, fmt.Errorf("face %d references vertex %d: %w", fi, i, mesh.ErrIndexOutOfRange)
				}
			}
			tri, ok := localTriangle(
				m.Vertices[idx[0]].Position,
				m.Vertices[idx[1]].Position,
				m.Vertices[idx[2]].Position,
			)
			if !ok {
				t.Degenerate++
				continue
			}
			tri.Face = fi
			tri.Indices = idx
			t.Triangles = append(t.Triangles, tri)
		}
	}
	if len(t.Triangles) == 0 {
		return nil, ErrNoTriangles
	}
	return t, nil
}

func localTriangle(p0, p1, p2 r3.Vec) (Triangle, bool) {
	e1 := r3.Sub(p1, p0)
	e2 := r3.Sub(p2, p0)
	n := r3.Cross(e1, e2)
	area := r3.Norm(n) / 2
	l1 := r3.Norm(e1)
	if area <= minArea || l1 == 0 {
		return Triangle{}, false
	}
	x := r3.Scale(1/l1, e1)
	// y = n̂ × x lies in the triangle plane, orthogonal to x.
	y := r3.Cross(r3.Scale(1/(2*area), n), x)
	return Triangle{
		Local: [3]f64.Vec2{
			{0, 0},
			{l1, 0},
			{r3.Dot(e2, x), r3.Dot(e2, y)},
		},
		Area: area,
	}, true
}

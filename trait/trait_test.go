package trait

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ByLCY/conformal/mesh"
)

func TestBuildLocalFrame(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []mesh.Vertex{
			{Position: r3.Vec{X: 0, Y: 0, Z: 0}},
			{Position: r3.Vec{X: 0, Y: 0, Z: 2}},
			{Position: r3.Vec{X: 0, Y: 3, Z: 0}},
		},
		Faces: []mesh.Face{{0, 1, 2}},
	}

	tr, err := Build(m)
	require.NoError(t, err)
	require.Len(t, tr.Triangles, 1)

	tri := tr.Triangles[0]
	assert.Equal(t, [3]int{0, 1, 2}, tri.Indices)
	assert.InDelta(t, 3.0, tri.Area, 1e-12)
	assert.InDelta(t, 2.0, tri.Local[1][0], 1e-12)
	assert.InDelta(t, 0.0, tri.Local[2][0], 1e-12)
	// counter-clockwise corners keep a positive y in the local frame
	assert.InDelta(t, 3.0, tri.Local[2][1], 1e-12)
}

func TestBuildFanTriangulatesAndSkipsDegenerate(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []mesh.Vertex{
			{Position: r3.Vec{X: 0, Y: 0, Z: 0}},
			{Position: r3.Vec{X: 1, Y: 0, Z: 0}},
			{Position: r3.Vec{X: 1, Y: 1, Z: 0}},
			{Position: r3.Vec{X: 0, Y: 1, Z: 0}},
			{Position: r3.Vec{X: 2, Y: 0, Z: 0}},
		},
		Faces: []mesh.Face{{0, 1, 2, 3}, {0, 1, 4}},
	}

	tr, err := Build(m)
	require.NoError(t, err)
	assert.Len(t, tr.Triangles, 2)
	assert.Equal(t, 1, tr.Degenerate)
	for _, tri := range tr.Triangles {
		assert.Equal(t, 0, tri.Face)
		assert.InDelta(t, 0.5, tri.Area, 1e-12)
		assert.False(t, math.IsNaN(tri.Local[2][1]))
	}
}

func TestBuildNoTriangles(t *testing.T) {
	m := &mesh.Mesh{Vertices: []mesh.Vertex{{}, {}}}
	_, err := Build(m)
	assert.ErrorIs(t, err, ErrNoTriangles)
}

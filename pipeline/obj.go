package pipeline

import (
	"github.com/ByLCY/conformal/mesh"
	"github.com/ByLCY/conformal/trait"
)

// OBJ implements Loader, Writer, Constrainer and TraitBuilder with the
// mesh and trait packages.
type OBJ struct{}

var (
	_ Loader       = OBJ{}
	_ Writer       = OBJ{}
	_ Constrainer  = OBJ{}
	_ TraitBuilder = OBJ{}
)

func (OBJ) Load(path string) (*mesh.Mesh, error) { return mesh.LoadOBJ(path) }

func (OBJ) Write(m *mesh.Mesh, path string) error { return mesh.WriteOBJ(m, path) }

func (OBJ) ApplyFixedVertices(m *mesh.Mesh, fixed []mesh.FixedVertex) error {
	return mesh.ApplyFixedVertices(m, fixed)
}

func (OBJ) Build(m *mesh.Mesh) (*trait.Traits, error) { return trait.Build(m) }

// NewOBJCollaborators wires OBJ file I/O around the given flattener.
func NewOBJCollaborators(f Flattener) Collaborators {
	return Collaborators{
		Loader:      OBJ{},
		Constrainer: OBJ{},
		Traits:      OBJ{},
		Flattener:   f,
		Writer:      OBJ{},
	}
}

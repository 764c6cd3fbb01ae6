// Package pipeline runs one flattening job: load mesh, apply fixed vertices,
// compute the conformal map, write mesh. Steps run once, in order; the first
// failure ends the run.
package pipeline

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/ByLCY/conformal/mesh"
	"github.com/ByLCY/conformal/trait"
)

// ErrMeshLoadFailure is returned when the input mesh cannot be read or has no vertices.
var ErrMeshLoadFailure = errors.New("mesh load failure")

// State is the last step a Pipeline completed.
type State int

const (
	Idle State = iota
	MeshLoaded
	ConstraintsApplied
	Flattened
	Written
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case MeshLoaded:
		return "mesh-loaded"
	case ConstraintsApplied:
		return "constraints-applied"
	case Flattened:
		return "flattened"
	case Written:
		return "written"
	default:
		return "unknown"
	}
}

// Loader reads a mesh from a file.
type Loader interface {
	Load(path string) (*mesh.Mesh, error)
}

// Constrainer pins mesh vertices from fixed-vertex constraints.
type Constrainer interface {
	ApplyFixedVertices(m *mesh.Mesh, fixed []mesh.FixedVertex) error
}

// TraitBuilder derives the per-triangle data the flattener needs.
type TraitBuilder interface {
	Build(m *mesh.Mesh) (*trait.Traits, error)
}

// Flattener assigns texture coordinates to the free vertices of m.
type Flattener interface {
	Project(m *mesh.Mesh, t *trait.Traits) error
}

// Writer persists a mesh.
type Writer interface {
	Write(m *mesh.Mesh, path string) error
}

// Collaborators are the steps driven by a Pipeline.
type Collaborators struct {
	Loader      Loader
	Constrainer Constrainer
	Traits      TraitBuilder
	Flattener   Flattener
	Writer      Writer
}

// Pipeline is single use and not safe for concurrent use.
type Pipeline struct {
	c      Collaborators
	out    io.Writer
	log    zerolog.Logger
	state  State
	mesh   *mesh.Mesh
	traits *trait.Traits
}

// New returns an idle pipeline. Progress lines go to out.
func New(c Collaborators, out io.Writer, log zerolog.Logger) *Pipeline {
	if out == nil {
		out = io.Discard
	}
	return &Pipeline{c: c, out: out, log: log}
}

// State returns the last completed step.
func (p *Pipeline) State() State { return p.state }

// Mesh returns the mesh owned by the run, nil before MeshLoaded.
func (p *Pipeline) Mesh() *mesh.Mesh { return p.mesh }

// Traits returns the traits computed for the mesh, nil before Flattened.
func (p *Pipeline) Traits() *trait.Traits { return p.traits }

// Run executes every step once. fixed must already be limited to the
// eligible constraints; an empty list skips constraint application.
func (p *Pipeline) Run(input, output string, fixed []mesh.FixedVertex) error {
	if p.state != Idle {
		return fmt.Errorf("pipeline already ran (state %s)", p.state)
	}

	fmt.Fprintln(p.out, "--> Reading mesh...")
	m, err := p.c.Loader.Load(input)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMeshLoadFailure, err)
	}
	if m.NumVertices() == 0 {
		return fmt.Errorf("failed to read mesh from file %s: %w", input, ErrMeshLoadFailure)
	}
	fmt.Fprintf(p.out, "Mesh read successfully. %d vertices and %d cells.\n", m.NumVertices(), m.NumFaces())
	p.mesh = m
	p.advance(MeshLoaded)

	if len(fixed) > 0 {
		fmt.Fprintln(p.out, "--> Applying fixed vertices...")
		if err := p.c.Constrainer.ApplyFixedVertices(m, fixed); err != nil {
			return fmt.Errorf("apply fixed vertices: %w", err)
		}
	}
	p.advance(ConstraintsApplied)

	traits, err := p.c.Traits.Build(m)
	if err != nil {
		return fmt.Errorf("compute form traits: %w", err)
	}
	if traits.Degenerate > 0 {
		p.log.Warn().Int("triangles", traits.Degenerate).Msg("skipped degenerate triangles")
	}
	p.traits = traits

	fmt.Fprintln(p.out, "--> Computing conformal map...")
	if err := p.c.Flattener.Project(m, traits); err != nil {
		return fmt.Errorf("compute conformal map: %w", err)
	}
	p.advance(Flattened)

	fmt.Fprintln(p.out, "--> Writing mesh...")
	if err := p.c.Writer.Write(m, output); err != nil {
		return fmt.Errorf("write mesh: %w", err)
	}
	p.advance(Written)
	return nil
}

func (p *Pipeline) advance(s State) {
	p.log.Debug().Stringer("from", p.state).Stringer("to", s).Msg("pipeline step")
	p.state = s
}

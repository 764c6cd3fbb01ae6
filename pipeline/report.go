package pipeline

import (
	"encoding/json"
	"os"

	"github.com/ByLCY/conformal/mesh"
)

// Report summarizes a run for debugging or tooling.
type Report struct {
	Input       string             `json:"input"`
	Output      string             `json:"output"`
	State       string             `json:"state"`
	Vertices    int                `json:"vertices"`
	Faces       int                `json:"faces"`
	Triangles   int                `json:"triangles"`
	Degenerate  int                `json:"degenerateTriangles"`
	Constraints []mesh.FixedVertex `json:"constraints"`
	Ignored     []mesh.FixedVertex `json:"ignoredConstraints,omitempty"`
	Pinned      []int              `json:"pinnedVertices"`
	Solver      any                `json:"solver,omitempty"`
}

// Report collects what the pipeline knows about the run so far.
func (p *Pipeline) Report(input, output string, fixed, ignored []mesh.FixedVertex) *Report {
	r := &Report{
		Input:       input,
		Output:      output,
		State:       p.state.String(),
		Constraints: fixed,
		Ignored:     ignored,
	}
	if p.mesh != nil {
		r.Vertices = p.mesh.NumVertices()
		r.Faces = p.mesh.NumFaces()
		r.Pinned = p.mesh.FixedIndices()
	}
	if p.traits != nil {
		r.Triangles = len(p.traits.Triangles)
		r.Degenerate = p.traits.Degenerate
	}
	return r
}

// WriteReportJSON writes the report as indented JSON.
func WriteReportJSON(r *Report, path string) error {
	if r == nil {
		return nil
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

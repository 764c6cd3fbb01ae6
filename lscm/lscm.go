// Package lscm computes least-squares conformal maps (Lévy et al. 2002).
//
// Each triangle contributes the complex residual
//
//	(1/sqrt(2A)) * Σ_j W_j U_j,  W_1 = z3-z2, W_2 = z1-z3, W_3 = z2-z1
//
// where z_j are the corners in the triangle's local frame and U_j = u_j + i v_j
// the unknown texture coordinates. The residual vanishes for similarity maps,
// so at least two pinned vertices are needed for a unique solution.
package lscm

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"golang.org/x/image/math/f64"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ByLCY/conformal/mesh"
	"github.com/ByLCY/conformal/trait"
)

// Options tunes the iterative least-squares solve.
type Options struct {
	Tolerance     float64
	MaxIterations int
}

// DefaultOptions returns the solver settings used when no configuration is given.
func DefaultOptions() Options {
	return Options{Tolerance: 1e-10, MaxIterations: 20000}
}

// Result describes the last projection.
type Result struct {
	Iterations int     `json:"iterations"`
	Residual   float64 `json:"residual"`
	Converged  bool    `json:"converged"`
	Pinned     []int   `json:"pinned"`
	AutoPinned []int   `json:"autoPinned,omitempty"`
}

// Solver flattens meshes. It is not safe for concurrent use.
type Solver struct {
	opts Options
	log  zerolog.Logger
	last Result
}

// New returns a solver with the given options.
func New(opts Options, log zerolog.Logger) *Solver {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultOptions().MaxIterations
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultOptions().Tolerance
	}
	return &Solver{opts: opts, log: log}
}

// Result returns the statistics of the last Project call.
func (s *Solver) Result() Result { return s.last }

// Project assigns texture coordinates to every free vertex of m. Pinned
// vertices keep their UV; extra pins are added when fewer than two exist.
func (s *Solver) Project(m *mesh.Mesh, t *trait.Traits) error {
	if t == nil || len(t.Triangles) == 0 {
		return trait.ErrNoTriangles
	}
	s.last = Result{}

	auto := autoPin(m, t)
	s.last.AutoPinned = auto
	s.last.Pinned = m.FixedIndices()
	if len(auto) > 0 {
		s.log.Debug().Ints("vertices", auto).Msg("added pins")
	}

	// two columns (u, v) per free vertex
	col := make([]int, len(m.Vertices))
	n := 0
	for i, v := range m.Vertices {
		if v.Fixed {
			col[i] = -1
			continue
		}
		col[i] = n
		n += 2
	}

	sys := assemble(m, t, col)
	x, res := sys.cgls(n, s.opts)
	s.last.Iterations = res.Iterations
	s.last.Residual = res.Residual
	s.last.Converged = res.Converged
	if !res.Converged {
		s.log.Warn().
			Int("iterations", res.Iterations).
			Float64("residual", res.Residual).
			Msg("conformal map did not reach tolerance")
	}

	for i := range m.Vertices {
		if c := col[i]; c >= 0 {
			m.Vertices[i].UV = f64.Vec2{x[c], x[c+1]}
		}
	}
	s.log.Debug().
		Int("unknowns", n).
		Int("rows", len(sys.b)).
		Int("iterations", res.Iterations).
		Msg("conformal map solved")
	return nil
}

// autoPin pins the missing vertices so that at least two are fixed and
// returns their indices. Only vertices used by a triangle are considered.
func autoPin(m *mesh.Mesh, t *trait.Traits) []int {
	pinned := m.FixedIndices()
	if len(pinned) >= 2 {
		return nil
	}
	used := usedVertices(len(m.Vertices), t)

	if len(pinned) == 1 {
		p := pinned[0]
		far, dist := p, -1.0
		for _, i := range used {
			if d := r3.Norm2(r3.Sub(m.Vertices[i].Position, m.Vertices[p].Position)); d > dist {
				far, dist = i, d
			}
		}
		uv := m.Vertices[p].UV
		m.Vertices[far].Fixed = true
		m.Vertices[far].UV = f64.Vec2{uv[0] + math.Sqrt(dist), uv[1]}
		return []int{far}
	}

	axis := longestAxis(m, used)
	lo, hi := used[0], used[0]
	for _, i := range used {
		p := component(m.Vertices[i].Position, axis)
		if p < component(m.Vertices[lo].Position, axis) {
			lo = i
		}
		if p > component(m.Vertices[hi].Position, axis) {
			hi = i
		}
	}
	d := r3.Norm(r3.Sub(m.Vertices[lo].Position, m.Vertices[hi].Position))
	m.Vertices[lo].Fixed = true
	m.Vertices[lo].UV = f64.Vec2{0, 0}
	m.Vertices[hi].Fixed = true
	m.Vertices[hi].UV = f64.Vec2{d, 0}
	return []int{lo, hi}
}

func usedVertices(n int, t *trait.Traits) []int {
	seen := make([]bool, n)
	for _, tri := range t.Triangles {
		for _, i := range tri.Indices {
			seen[i] = true
		}
	}
	var out []int
	for i, ok := range seen {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

func longestAxis(m *mesh.Mesh, used []int) int {
	lo := m.Vertices[used[0]].Position
	hi := lo
	for _, i := range used {
		p := m.Vertices[i].Position
		lo = r3.Vec{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = r3.Vec{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	size := r3.Sub(hi, lo)
	axis := 0
	for a := 1; a < 3; a++ {
		if component(size, a) > component(size, axis) {
			axis = a
		}
	}
	return axis
}

// component returns the x, y or z coordinate of p for axis 0, 1 or 2.
func component(p r3.Vec, axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	}
	return p.Z
}

// String implements fmt.Stringer for log output.
func (r Result) String() string {
	return fmt.Sprintf("iterations=%d residual=%g converged=%t pinned=%v", r.Iterations, r.Residual, r.Converged, r.Pinned)
}

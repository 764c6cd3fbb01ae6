package lscm

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ByLCY/conformal/mesh"
	"github.com/ByLCY/conformal/trait"
)

// system is the sparse least-squares problem min |A x - b|.
// Row r spans entries start[r] .. start[r+1].
type system struct {
	start []int
	cols  []int
	vals  []float64
	b     []float64
}

type solveStats struct {
	Iterations int
	Residual   float64
	Converged  bool
}

// assemble builds two rows per triangle. Pinned vertices (col < 0) move to b.
func assemble(m *mesh.Mesh, t *trait.Traits, col []int) *system {
	sys := &system{start: []int{0}}
	for _, tri := range t.Triangles {
		z := tri.Local
		// W_j as (real, imag)
		w := [3][2]float64{
			{z[2][0] - z[1][0], z[2][1] - z[1][1]},
			{z[0][0] - z[2][0], z[0][1] - z[2][1]},
			{z[1][0] - z[0][0], z[1][1] - z[0][1]},
		}
		scale := 1 / math.Sqrt(2*tri.Area)

		// real part: Wr u - Wi v ; imaginary part: Wi u + Wr v
		for part := 0; part < 2; part++ {
			rhs := 0.0
			for j, vi := range tri.Indices {
				wr, wi := w[j][0]*scale, w[j][1]*scale
				cu, cv := wr, -wi
				if part == 1 {
					cu, cv = wi, wr
				}
				if c := col[vi]; c >= 0 {
					sys.cols = append(sys.cols, c, c+1)
					sys.vals = append(sys.vals, cu, cv)
					continue
				}
				uv := m.Vertices[vi].UV
				rhs -= cu*uv[0] + cv*uv[1]
			}
			sys.b = append(sys.b, rhs)
			sys.start = append(sys.start, len(sys.cols))
		}
	}
	return sys
}

// mul computes out = A x.
func (s *system) mul(x, out []float64) {
	for r := range s.b {
		sum := 0.0
		for k := s.start[r]; k < s.start[r+1]; k++ {
			sum += s.vals[k] * x[s.cols[k]]
		}
		out[r] = sum
	}
}

// mulT computes out = Aᵀ y.
func (s *system) mulT(y, out []float64) {
	for i := range out {
		out[i] = 0
	}
	for r := range s.b {
		for k := s.start[r]; k < s.start[r+1]; k++ {
			out[s.cols[k]] += s.vals[k] * y[r]
		}
	}
}

// cgls solves the normal equations AᵀA x = Aᵀb with conjugate gradients
// without forming AᵀA. It stops once |Aᵀr| <= tol * |Aᵀb|.
func (s *system) cgls(n int, opts Options) ([]float64, solveStats) {
	x := make([]float64, n)
	r := append([]float64(nil), s.b...)
	g := make([]float64, n)
	s.mulT(r, g)
	p := append([]float64(nil), g...)
	q := make([]float64, len(r))

	gamma := floats.Dot(g, g)
	stop := opts.Tolerance * math.Sqrt(gamma)
	stats := solveStats{Residual: math.Sqrt(gamma)}
	if gamma == 0 {
		stats.Converged = true
		return x, stats
	}

	for it := 1; it <= opts.MaxIterations; it++ {
		s.mul(p, q)
		qq := floats.Dot(q, q)
		if qq == 0 {
			break
		}
		alpha := gamma / qq
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, q)
		s.mulT(r, g)
		next := floats.Dot(g, g)

		stats.Iterations = it
		stats.Residual = math.Sqrt(next)
		if stats.Residual <= stop {
			stats.Converged = true
			break
		}
		beta := next / gamma
		// p = g + beta*p
		floats.Scale(beta, p)
		floats.Add(p, g)
		gamma = next
	}
	return x, stats
}

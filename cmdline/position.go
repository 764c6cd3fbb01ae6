package cmdline

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ByLCY/conformal/mesh"
)

// ParsePosition parses an "x,y,z" token. Missing trailing fields are 0. A
// field that is not a number is also 0 and reported in the returned warnings.
func ParsePosition(token string) (mesh.FixedVertex, []Warning) {
	parts := Split(token, ',', 3)
	var (
		pos      [3]float64
		warnings []Warning
	)
	for i := range pos {
		if i >= len(parts) {
			break
		}
		v, err := parseNumber(parts[i])
		if err != nil {
			warnings = append(warnings, Warning{Token: token, Field: i, Err: err})
		}
		pos[i] = v
	}
	return mesh.NewFixedVertex(pos[0], pos[1], pos[2]), warnings
}

// parseNumber returns 0 and an error wrapping ErrMalformedNumber for
// anything that is not a finite real number.
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, s)
	}
	return v, nil
}

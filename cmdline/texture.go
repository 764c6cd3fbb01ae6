package cmdline

import (
	"fmt"
	"strings"
)

const combinedSeparator = ' '

// fixedTextureCoords reads 2*n texture values for the n eligible fixed
// vertices, either as 2*n tokens or as one space-separated token, and
// assigns them pairwise in collector order. In the combined form every
// space separates two fields, so repeated spaces yield empty fields.
func (p *parser) fixedTextureCoords(flag string) error {
	first, err := p.stream.Peek(0)
	if err != nil {
		return fmt.Errorf("%s expects texture coordinates: %w", flag, err)
	}

	c := p.inv.Constraints
	n := c.EligibleCount()
	var fields []string
	if !strings.ContainsRune(first, combinedSeparator) {
		fmt.Fprintln(p.out, "Fixed texture coordinates given separately in individual arguments")
		for i := 0; i < 2*n; i++ {
			tok, err := p.stream.Next()
			if err != nil {
				return fmt.Errorf("%s expects %d values, got %d: %w", flag, 2*n, i, err)
			}
			fields = append(fields, tok)
		}
	} else {
		fmt.Fprintln(p.out, "Fixed texture coordinates given together in a single argument")
		if _, err := p.stream.Next(); err != nil {
			return err
		}
		fields = Split(first, combinedSeparator, -1)
		// a single trailing separator does not start another field
		if last := len(fields) - 1; last > 0 && fields[last] == "" {
			fields = fields[:last]
		}
	}

	if len(fields) != 2*n {
		return fmt.Errorf("%s: %d values for %d fixed vertices: %w", flag, len(fields), n, ErrCoordinateCountMismatch)
	}

	var warnings []Warning
	for i := 0; i < n; i++ {
		var uv [2]float64
		for k := range uv {
			raw := fields[2*i+k]
			v, err := parseNumber(raw)
			if err != nil {
				warnings = append(warnings, Warning{Token: raw, Field: 2*i + k, Err: err})
			}
			uv[k] = v
		}
		fmt.Fprintf(p.out, "Fixed texture coordinates #%d: %g, %g\n", i, uv[0], uv[1])
		c.setTarget(i, uv[0], uv[1])
	}
	p.warn(flag, warnings)
	return nil
}

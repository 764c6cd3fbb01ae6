package cmdline

import "github.com/ByLCY/conformal/mesh"

// DefaultEligibleLimit is the number of leading fixed vertices that are
// forwarded to the flattening step. Later ones are kept for reference only.
const DefaultEligibleLimit = 2

// Collector accumulates fixed vertices in input order.
type Collector struct {
	limit    int
	fixed    []mesh.FixedVertex
	warnings []Warning
}

// NewCollector returns a collector that forwards at most limit constraints.
// A non-positive limit selects DefaultEligibleLimit.
func NewCollector(limit int) *Collector {
	if limit <= 0 {
		limit = DefaultEligibleLimit
	}
	return &Collector{limit: limit}
}

// Limit returns the eligible cap.
func (c *Collector) Limit() int { return c.limit }

// Add appends a constraint.
func (c *Collector) Add(f mesh.FixedVertex) { c.fixed = append(c.fixed, f) }

// Len returns the number of collected constraints, eligible or not.
func (c *Collector) Len() int { return len(c.fixed) }

// EligibleCount returns how many constraints are forwarded downstream.
func (c *Collector) EligibleCount() int { return min(len(c.fixed), c.limit) }

// Eligible returns a copy of the first EligibleCount constraints.
func (c *Collector) Eligible() []mesh.FixedVertex {
	return append([]mesh.FixedVertex(nil), c.fixed[:c.EligibleCount()]...)
}

// Overflow returns a copy of the constraints beyond the eligible cap.
func (c *Collector) Overflow() []mesh.FixedVertex {
	return append([]mesh.FixedVertex(nil), c.fixed[c.EligibleCount():]...)
}

// Warnings returns the values that were defaulted while parsing.
func (c *Collector) Warnings() []Warning { return c.warnings }

func (c *Collector) warn(w ...Warning) { c.warnings = append(c.warnings, w...) }

func (c *Collector) setTarget(i int, u, v float64) { c.fixed[i].SetTarget(u, v) }

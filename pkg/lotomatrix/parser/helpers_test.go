package parser

import "math"

func nan() float64 { return math.NaN() }

func inf(sign int) float64 { return math.Inf(sign) }

// sheet builds a MemoryGrid from A1-style references.
func sheet(cells map[string]interface{}) *MemoryGrid {
	g := NewMemoryGrid()
	for ref, v := range cells {
		if err := g.SetCell(ref, v); err != nil {
			panic(err)
		}
	}
	return g
}

func deref(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

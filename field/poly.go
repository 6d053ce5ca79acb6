package field

import "fmt"

// Polynomials are coefficient slices in ascending degree order, so
// x^2 + 3x + 2 is [2, 3, 1]. The zero polynomial is the empty slice.

// PolyDiv divides the polynomial f by g and returns quotient and remainder.
// The divisor must have an invertible leading coefficient. Trailing zero
// coefficients are trimmed from the remainder, so an exact division comes
// back with an empty one.
func PolyDiv(f, g []Element, fld Field) ([]Element, []Element, error) {
	if len(g) == 0 {
		return nil, nil, fmt.Errorf("cannot divide by the zero polynomial")
	}
	if g[len(g)-1].IsZero() {
		return nil, nil, fmt.Errorf("divisor has a zero leading coefficient")
	}

	rem := make([]Element, len(f))
	for i, c := range f {
		rem[i] = c.Clone()
	}
	if len(f) < len(g) {
		return nil, trimPoly(rem), nil
	}

	// classic long division from the top term down; each step cancels the
	// current top of the remainder against the divisor's leading coefficient
	quot := make([]Element, len(f)-len(g)+1)
	lead := g[len(g)-1]
	for i := len(quot) - 1; i >= 0; i-- {
		factor := rem[i+len(g)-1].Div(lead)
		quot[i] = factor
		for j, gc := range g {
			rem[i+j] = rem[i+j].Sub(factor.Mul(gc))
		}
	}
	return quot, trimPoly(rem[:len(g)-1]), nil
}

// trimPoly drops trailing zero coefficients.
func trimPoly(p []Element) []Element {
	end := len(p)
	for end > 0 && p[end-1].IsZero() {
		end--
	}
	return p[:end]
}

// PolyEval evaluates the polynomial at x by Horner's scheme.
func PolyEval(p []Element, x Element, fld Field) Element {
	if len(p) == 0 {
		return fld.Zero()
	}
	acc := p[len(p)-1].Clone()
	for i := len(p) - 2; i >= 0; i-- {
		acc = acc.Mul(x).Add(p[i])
	}
	return acc
}

// Interpolate recovers the unique polynomial of degree below len(points)
// passing through the given point/value pairs by solving the Vandermonde
// system. Duplicate points make the system singular and surface as a Solve
// error.
func Interpolate(points, values []Element, fld Field) ([]Element, error) {
	n := len(points)
	if n == 0 {
		return nil, fmt.Errorf("cannot interpolate through zero points")
	}
	if len(values) != n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(values))
	}

	vandermonde := make([][]Element, n)
	for i, x := range points {
		vandermonde[i] = make([]Element, n)
		power := fld.One()
		for j := 0; j < n; j++ {
			vandermonde[i][j] = power
			power = power.Mul(x)
		}
	}
	return Solve(vandermonde, values, fld)
}

package field

import (
	"math"
	"strconv"
)

// Real adapts plain float64 arithmetic to the Element interface so the
// matrix and polynomial routines can run over ordinary numbers. Zero tests
// compare against 0 exactly, which suits the integer-valued cross checks
// this type exists for; it is not a numerically hardened linear algebra kit.
type Real float64

// RealField constructs Real elements.
type RealField struct{}

// Reals is the shared RealField instance.
var Reals = RealField{}

// Zero returns the additive identity of the field
func (RealField) Zero() Element {
	return Real(0)
}

// One returns the multiplicative identity of the field
func (RealField) One() Element {
	return Real(1)
}

// FromInt lifts the integer v into the field
func (RealField) FromInt(v int) Element {
	return Real(v)
}

// Element interface implementation for Real

func mustReal(b Element) Real {
	r, ok := b.(Real)
	if !ok {
		panic("incompatible field elements")
	}
	return r
}

// Add returns r + b
func (r Real) Add(b Element) Element {
	return r + mustReal(b)
}

// Sub returns r - b
func (r Real) Sub(b Element) Element {
	return r - mustReal(b)
}

// Mul returns r * b
func (r Real) Mul(b Element) Element {
	return r * mustReal(b)
}

// Div returns r / b
func (r Real) Div(b Element) Element {
	other := mustReal(b)
	if other == 0 {
		panic("division by zero")
	}
	return r / other
}

// Neg returns -r
func (r Real) Neg() Element {
	return -r
}

// Inv returns 1 / r
func (r Real) Inv() Element {
	if r == 0 {
		panic("element is not invertible")
	}
	return 1 / r
}

// Pow returns r raised to the integer power k
func (r Real) Pow(k int) Element {
	if r == 0 && k < 0 {
		panic("element is not invertible")
	}
	return Real(math.Pow(float64(r), float64(k)))
}

// IsZero returns true if r is exactly zero
func (r Real) IsZero() bool {
	return r == 0
}

// Equal returns true if b is a Real with the same value
func (r Real) Equal(b Element) bool {
	other, ok := b.(Real)
	return ok && r == other
}

// Clone returns r itself; Real values are immutable
func (r Real) Clone() Element {
	return r
}

// String formats r with the shortest representation that round-trips
func (r Real) String() string {
	return strconv.FormatFloat(float64(r), 'g', -1, 64)
}

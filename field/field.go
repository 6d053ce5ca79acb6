package field

// Element represents an element of a field. Elements are immutable: every
// operation returns a fresh element and leaves its operands untouched, so
// values can be shared freely.
type Element interface {
	// Add returns a + b in the field
	Add(b Element) Element

	// Sub returns a - b in the field
	Sub(b Element) Element

	// Mul returns a * b in the field
	Mul(b Element) Element

	// Div returns a / b in the field
	Div(b Element) Element

	// Neg returns -a in the field
	Neg() Element

	// Inv returns the multiplicative inverse of a in the field
	Inv() Element

	// Pow returns a raised to the integer power k
	Pow(k int) Element

	// IsZero returns true if the element is the zero element
	IsZero() bool

	// Equal returns true if two elements are equal
	Equal(b Element) bool

	// Clone returns a copy of the element
	Clone() Element

	// String returns the string representation of the element
	String() string
}

// Field supplies the distinguished elements the generic matrix and
// polynomial routines need. Arithmetic lives on the elements themselves.
type Field interface {
	// Zero returns the additive identity of the field
	Zero() Element

	// One returns the multiplicative identity of the field
	One() Element

	// FromInt lifts the integer v into the field
	FromInt(v int) Element
}

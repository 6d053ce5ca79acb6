package field

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"sync"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("field")

// FiniteField is the Galois field GF(p^m) of order q = p^m. Its elements are
// polynomials over F_p of degree below m, reduced modulo a monic degree-m
// reduction polynomial. For m = 1 no reduction polynomial is involved and
// the field is plain integer arithmetic mod p.
//
// A field is safe for concurrent use once its log table is built; call
// FindPrimitiveElement before sharing the field across goroutines.
type FiniteField struct {
	p         int   // prime characteristic
	m         int   // extension degree
	q         int   // field order p^m
	reduction []int // monic reduction polynomial, constant term first, length m+1, nil for m = 1

	mu        sync.Mutex
	primitive *FiniteFieldElement   // generator of the multiplicative group, nil until found
	expTable  []*FiniteFieldElement // exponent -> element, length q-1
	logTable  []int                 // element rank -> exponent, length q
}

// FiniteFieldElement is an element of a FiniteField, stored as its m
// polynomial coefficients in ascending degree order, each in [0, p-1].
type FiniteFieldElement struct {
	coefs []int
	field *FiniteField
}

// NewField creates GF(p^m). The reduction polynomial is given as m+1
// coefficients in ascending degree order and must be monic; it is required
// for m > 1 and ignored for m = 1. p is trusted to be prime, but a reduction
// polynomial that is not irreducible is caught later by the primitive
// element search.
func NewField(p, m int, reduction []int) (*FiniteField, error) {
	if p < 2 {
		return nil, fmt.Errorf("field characteristic must be at least 2, got %d", p)
	}
	if m < 1 {
		return nil, fmt.Errorf("field extension degree must be at least 1, got %d", m)
	}

	q := 1
	for i := 0; i < m; i++ {
		if q > math.MaxInt/p {
			return nil, fmt.Errorf("field order %d^%d overflows", p, m)
		}
		q *= p
	}

	f := &FiniteField{p: p, m: m, q: q}
	if m == 1 {
		return f, nil
	}

	if reduction == nil {
		return nil, fmt.Errorf("a reduction polynomial is required for extension degree %d", m)
	}
	if len(reduction) != m+1 {
		return nil, fmt.Errorf("expected a reduction polynomial of length %d, got %d", m+1, len(reduction))
	}
	f.reduction = make([]int, m+1)
	for i, c := range reduction {
		f.reduction[i] = mod(c, p)
	}
	if f.reduction[m] != 1 {
		return nil, fmt.Errorf("reduction polynomial must be monic, got leading coefficient %d", reduction[m])
	}
	return f, nil
}

// FieldConfig bundles the parameters accepted by NewFieldFromConfig.
type FieldConfig struct {
	// P is the prime characteristic of the field.
	P int
	// M is the extension degree.
	M int
	// Reduction is the monic reduction polynomial as M+1 coefficients in
	// ascending degree order. Required for M > 1, ignored for M = 1.
	Reduction []int
	// Primitive optionally names a known primitive element by its
	// coefficients, skipping the search. The log table is still built, which
	// validates that the element really generates the whole group.
	Primitive []int
	// EagerPrimitive runs the primitive element search during construction
	// instead of waiting for an explicit FindPrimitiveElement call.
	EagerPrimitive bool
}

// NewFieldFromConfig creates a field and optionally prepares its log table
// up front, so that the first division does not have to pay for it.
func NewFieldFromConfig(config *FieldConfig) (*FiniteField, error) {
	f, err := NewField(config.P, config.M, config.Reduction)
	if err != nil {
		return nil, err
	}
	if config.Primitive != nil {
		elem, err := f.NewElement(config.Primitive)
		if err != nil {
			return nil, err
		}
		if err := f.SetPrimitiveElement(elem); err != nil {
			return nil, err
		}
	} else if config.EagerPrimitive {
		if _, err := f.FindPrimitiveElement(); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// NewElement creates a field element from exactly m coefficients in
// ascending degree order. Coefficients are reduced mod p, so negative and
// oversized values are welcome.
func (f *FiniteField) NewElement(coefs []int) (Element, error) {
	if len(coefs) != f.m {
		return nil, fmt.Errorf("expected %d coefficients, got %d", f.m, len(coefs))
	}
	reduced := make([]int, f.m)
	for i, c := range coefs {
		reduced[i] = mod(c, f.p)
	}
	return &FiniteFieldElement{coefs: reduced, field: f}, nil
}

// FromInt lifts the integer v into the field as a constant polynomial,
// reduced mod p.
func (f *FiniteField) FromInt(v int) Element {
	coefs := make([]int, f.m)
	coefs[0] = mod(v, f.p)
	return &FiniteFieldElement{coefs: coefs, field: f}
}

// Zero returns the additive identity of the field
func (f *FiniteField) Zero() Element {
	return &FiniteFieldElement{coefs: make([]int, f.m), field: f}
}

// One returns the multiplicative identity of the field
func (f *FiniteField) One() Element {
	return f.one()
}

func (f *FiniteField) one() *FiniteFieldElement {
	coefs := make([]int, f.m)
	coefs[0] = 1
	return &FiniteFieldElement{coefs: coefs, field: f}
}

// Random returns a uniformly random field element.
func (f *FiniteField) Random() (Element, error) {
	r, err := rand.Int(rand.Reader, big.NewInt(int64(f.q)))
	if err != nil {
		return nil, err
	}
	return f.fromRank(int(r.Int64())), nil
}

// Order returns the number of elements in the field, q = p^m.
func (f *FiniteField) Order() int {
	return f.q
}

// P returns the prime characteristic of the field.
func (f *FiniteField) P() int {
	return f.p
}

// M returns the extension degree of the field.
func (f *FiniteField) M() int {
	return f.m
}

// Reduction returns a copy of the reduction polynomial in ascending degree
// order, or nil for a prime field.
func (f *FiniteField) Reduction() []int {
	if f.reduction == nil {
		return nil
	}
	return append([]int(nil), f.reduction...)
}

// FromRank returns the element whose coefficient vector spells rank in
// base-p digits, least significant digit first. Ranks outside [0, Order)
// panic: they do not name an element.
func (f *FiniteField) FromRank(rank int) Element {
	if rank < 0 || rank >= f.q {
		panic(fmt.Sprintf("rank %d out of range for a field of order %d", rank, f.q))
	}
	return f.fromRank(rank)
}

func (f *FiniteField) fromRank(rank int) *FiniteFieldElement {
	coefs := make([]int, f.m)
	for i := 0; i < f.m && rank > 0; i++ {
		coefs[i] = rank % f.p
		rank /= f.p
	}
	return &FiniteFieldElement{coefs: coefs, field: f}
}

// String returns a short description of the field.
func (f *FiniteField) String() string {
	if f.m == 1 {
		return fmt.Sprintf("GF(%d)", f.q)
	}
	return fmt.Sprintf("GF(%d^%d)", f.p, f.m)
}

// mulDirect multiplies two elements by polynomial convolution followed by
// long division against the reduction polynomial. This path needs no tables
// and is what the primitive element search itself runs on.
func (f *FiniteField) mulDirect(a, b *FiniteFieldElement) *FiniteFieldElement {
	m, p := f.m, f.p

	// coefficient i of the raw product is the sum of a_j * b_(i-j)
	prod := make([]int, 2*m-1)
	for i, ac := range a.coefs {
		if ac == 0 {
			continue
		}
		for j, bc := range b.coefs {
			prod[i+j] = (prod[i+j] + ac*bc) % p
		}
	}

	// eliminate the terms of degree m and above from the top down by
	// subtracting coefficient * reduction * x^(top-m); the reduction
	// polynomial is monic, so each step zeroes exactly the top term
	for top := 2*m - 2; top >= m; top-- {
		c := prod[top]
		if c == 0 {
			continue
		}
		shift := top - m
		for i, rc := range f.reduction {
			prod[shift+i] = mod(prod[shift+i]-c*rc, p)
		}
	}

	return &FiniteFieldElement{coefs: prod[:m], field: f}
}

// mod reduces v into [0, p), mapping negative values the mathematical way.
func mod(v, p int) int {
	v %= p
	if v < 0 {
		v += p
	}
	return v
}

// Element interface implementation for FiniteFieldElement

// compatible returns b as a *FiniteFieldElement, panicking unless both
// elements live in fields of the same order.
func (e *FiniteFieldElement) compatible(b Element) *FiniteFieldElement {
	other, ok := b.(*FiniteFieldElement)
	if !ok || other.field.q != e.field.q {
		panic("incompatible field elements")
	}
	return other
}

// Add returns e + b in the field
func (e *FiniteFieldElement) Add(b Element) Element {
	other := e.compatible(b)
	coefs := make([]int, len(e.coefs))
	for i := range coefs {
		coefs[i] = (e.coefs[i] + other.coefs[i]) % e.field.p
	}
	return &FiniteFieldElement{coefs: coefs, field: e.field}
}

// Sub returns e - b in the field
func (e *FiniteFieldElement) Sub(b Element) Element {
	other := e.compatible(b)
	coefs := make([]int, len(e.coefs))
	for i := range coefs {
		coefs[i] = mod(e.coefs[i]-other.coefs[i], e.field.p)
	}
	return &FiniteFieldElement{coefs: coefs, field: e.field}
}

// Neg returns -e in the field
func (e *FiniteFieldElement) Neg() Element {
	coefs := make([]int, len(e.coefs))
	for i := range coefs {
		coefs[i] = mod(-e.coefs[i], e.field.p)
	}
	return &FiniteFieldElement{coefs: coefs, field: e.field}
}

// Mul returns e * b in the field. With a log table built the product is two
// table lookups; without one it falls back to polynomial multiplication.
func (e *FiniteFieldElement) Mul(b Element) Element {
	other := e.compatible(b)
	if e.field.hasLogTable() {
		return e.field.mulTable(e, other)
	}
	return e.field.mulDirect(e, other)
}

// Div returns e / b in the field. Division requires the log table; call
// FindPrimitiveElement on the field first.
func (e *FiniteFieldElement) Div(b Element) Element {
	other := e.compatible(b)
	if other.IsZero() {
		panic("division by zero")
	}
	if !e.field.hasLogTable() {
		panic(ErrNoLogTable)
	}
	return e.field.divTable(e, other)
}

// Inv returns the multiplicative inverse of e. Like Div it requires the log
// table.
func (e *FiniteFieldElement) Inv() Element {
	if e.IsZero() {
		panic("element is not invertible")
	}
	if !e.field.hasLogTable() {
		panic(ErrNoLogTable)
	}
	n := e.field.q - 1
	return e.field.expTable[(n-e.field.logTable[e.rank()])%n]
}

// Pow returns e raised to the integer power k. Exponent zero yields one for
// every element, including zero. Negative exponents invert and therefore
// require the log table; non-negative ones work on any field.
func (e *FiniteFieldElement) Pow(k int) Element {
	if k == 0 {
		return e.field.One()
	}
	if e.IsZero() {
		if k < 0 {
			panic("element is not invertible")
		}
		return e.field.Zero()
	}
	if e.field.hasLogTable() {
		return e.field.powTable(e, k)
	}
	if k < 0 {
		panic(ErrNoLogTable)
	}
	power := e.Clone()
	for i := 1; i < k; i++ {
		power = power.Mul(e)
	}
	return power
}

// IsZero returns true if e is the zero element
func (e *FiniteFieldElement) IsZero() bool {
	for _, c := range e.coefs {
		if c != 0 {
			return false
		}
	}
	return true
}

// Equal returns true if b is an element of a field of the same order and has
// the same coefficients as e.
func (e *FiniteFieldElement) Equal(b Element) bool {
	other, ok := b.(*FiniteFieldElement)
	if !ok || other.field.q != e.field.q {
		return false
	}
	for i, c := range e.coefs {
		if other.coefs[i] != c {
			return false
		}
	}
	return true
}

// EqualInt reports whether e literally equals the integer v: the constant
// term must match v without any mod-p reduction and every higher coefficient
// must be zero. EqualInt(7) is false in GF(5) even though FromInt(7) equals
// FromInt(2).
func (e *FiniteFieldElement) EqualInt(v int) bool {
	if e.coefs[0] != v {
		return false
	}
	for _, c := range e.coefs[1:] {
		if c != 0 {
			return false
		}
	}
	return true
}

// Clone returns a copy of e
func (e *FiniteFieldElement) Clone() Element {
	return &FiniteFieldElement{
		coefs: append([]int(nil), e.coefs...),
		field: e.field,
	}
}

// String renders a prime field element as a bare integer and an extension
// field element as its coefficient tuple, constant term first.
func (e *FiniteFieldElement) String() string {
	if len(e.coefs) == 1 {
		return strconv.Itoa(e.coefs[0])
	}
	parts := make([]string, len(e.coefs))
	for i, c := range e.coefs {
		parts[i] = strconv.Itoa(c)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Coefficients returns a copy of the coefficient vector in ascending degree
// order.
func (e *FiniteFieldElement) Coefficients() []int {
	return append([]int(nil), e.coefs...)
}

// Rank returns the dense index of e in [0, Order): its coefficients read as
// base-p digits, least significant first. Ranks index the log table and
// serialize elements compactly.
func (e *FiniteFieldElement) Rank() int {
	return e.rank()
}

func (e *FiniteFieldElement) rank() int {
	r := 0
	for i := len(e.coefs) - 1; i >= 0; i-- {
		r = r*e.field.p + e.coefs[i]
	}
	return r
}

// Field returns the field the element belongs to.
func (e *FiniteFieldElement) Field() *FiniteField {
	return e.field
}

package field

import (
	"errors"
	"fmt"
	"math"
)

// LogZero is the symbolic discrete logarithm of the zero element, standing
// in for negative infinity. Zero has no true logarithm, and any exponent
// arithmetic touching LogZero must collapse back to the zero element rather
// than wrap around.
const LogZero = math.MinInt

// ErrNoLogTable reports an operation that needs the discrete log table on a
// field that has not built one yet.
var ErrNoLogTable = errors.New("field has no log table; call FindPrimitiveElement first")

// FindPrimitiveElement locates a generator of the multiplicative group and
// builds the discrete log table from it. The call is idempotent: once a
// primitive element is known, it is returned again without another search.
//
// Candidates are enumerated in rank order. For each one the walk c, c^2,
// c^3, ... continues until it returns to c, which takes exactly ord(c)
// steps. Everything the walk visits lies in the subgroup generated by c, so
// when c falls short none of it can be primitive either; visited ranks are
// skipped as later candidates. The first candidate of order q-1 wins. Worst
// case cost is O(q) multiplications, paid once per field.
func (f *FiniteField) FindPrimitiveElement() (Element, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.primitive != nil {
		return f.primitive, nil
	}

	log.Debugf("searching for a primitive element of %s", f)
	visited := make([]bool, f.q)
	for rank := 1; rank < f.q; rank++ {
		if visited[rank] {
			continue
		}
		cand := f.fromRank(rank)

		cycle := []int{rank}
		cur := f.mulDirect(cand, cand)
		for !cur.Equal(cand) {
			if cur.IsZero() || len(cycle) >= f.q {
				// nonzero elements multiply to zero only in the presence of
				// zero divisors, i.e. a reducible reduction polynomial
				return nil, fmt.Errorf("powers of %s escape the multiplicative group; the reduction polynomial is not irreducible", cand)
			}
			cycle = append(cycle, cur.rank())
			cur = f.mulDirect(cur, cand)
		}

		for _, r := range cycle {
			visited[r] = true
		}
		if len(cycle) == f.q-1 {
			f.primitive = cand
			if err := f.buildLogTable(); err != nil {
				f.primitive = nil
				return nil, err
			}
			log.Debugf("found primitive element %s of %s", cand, f)
			return cand, nil
		}
	}
	return nil, fmt.Errorf("no element of order %d exists; the reduction polynomial is not irreducible", f.q-1)
}

// SetPrimitiveElement installs an already known primitive element instead of
// searching for one, then builds the log table. The build walks all q-1
// powers and rejects an element that repeats early, so a non-generator
// cannot slip through.
func (f *FiniteField) SetPrimitiveElement(e Element) error {
	elem, ok := e.(*FiniteFieldElement)
	if !ok || elem.field.q != f.q {
		return fmt.Errorf("element is not from this field")
	}
	if elem.IsZero() {
		return fmt.Errorf("zero cannot be a primitive element")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	prev := f.primitive
	f.primitive = elem
	if err := f.buildLogTable(); err != nil {
		f.primitive = prev
		return err
	}
	return nil
}

// PrimitiveElement returns the primitive element the log table is built on,
// or nil if none has been found yet.
func (f *FiniteField) PrimitiveElement() Element {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.primitive == nil {
		return nil
	}
	return f.primitive
}

// HasLogTable reports whether the discrete log table has been built.
func (f *FiniteField) HasLogTable() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.expTable != nil
}

func (f *FiniteField) hasLogTable() bool {
	return f.expTable != nil
}

// Log returns the discrete logarithm of e base the primitive element. The
// zero element yields LogZero.
func (f *FiniteField) Log(e Element) (int, error) {
	elem, ok := e.(*FiniteFieldElement)
	if !ok || elem.field.q != f.q {
		return 0, fmt.Errorf("element is not from this field")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.expTable == nil {
		return 0, ErrNoLogTable
	}
	return f.logTable[elem.rank()], nil
}

// Exp returns the element whose discrete logarithm is the given exponent.
// Exponents are reduced mod q-1, so negative exponents address inverses;
// LogZero maps back to the zero element.
func (f *FiniteField) Exp(exponent int) (Element, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.expTable == nil {
		return nil, ErrNoLogTable
	}
	if exponent == LogZero {
		return f.Zero(), nil
	}
	n := f.q - 1
	idx := exponent % n
	if idx < 0 {
		idx += n
	}
	return f.expTable[idx], nil
}

// buildLogTable fills the exponent and logarithm arrays by walking the
// powers of the primitive element. Caller must hold mu and have set
// f.primitive. The walk multiplies through the direct polynomial path, and
// the staging arrays are only installed once the walk has covered the whole
// group, so a failed build leaves the previous table intact.
func (f *FiniteField) buildLogTable() error {
	if f.primitive == nil {
		panic("log table build without a primitive element")
	}

	exp := make([]*FiniteFieldElement, f.q-1)
	lg := make([]int, f.q)
	for i := range lg {
		lg[i] = LogZero
	}

	cur := f.one()
	for i := 0; i < f.q-1; i++ {
		r := cur.rank()
		if lg[r] != LogZero {
			return fmt.Errorf("%s is not a primitive element: its powers repeat after %d steps", f.primitive, i)
		}
		exp[i] = cur
		lg[r] = i
		cur = f.mulDirect(cur, f.primitive)
	}

	f.expTable = exp
	f.logTable = lg
	return nil
}

// mulTable multiplies by adding discrete logarithms mod q-1.
func (f *FiniteField) mulTable(a, b *FiniteFieldElement) Element {
	la, lb := f.logTable[a.rank()], f.logTable[b.rank()]
	if la == LogZero || lb == LogZero {
		return f.Zero()
	}
	return f.expTable[(la+lb)%(f.q-1)]
}

// divTable divides by subtracting discrete logarithms mod q-1. The caller
// has already rejected a zero divisor.
func (f *FiniteField) divTable(a, b *FiniteFieldElement) Element {
	la := f.logTable[a.rank()]
	if la == LogZero {
		return f.Zero()
	}
	n := f.q - 1
	return f.expTable[((la-f.logTable[b.rank()])%n+n)%n]
}

// powTable exponentiates by multiplying the discrete logarithm mod q-1. The
// exponent is reduced before the multiply so the int64 product cannot
// overflow.
func (f *FiniteField) powTable(e *FiniteFieldElement, k int) Element {
	n := int64(f.q - 1)
	idx := int64(f.logTable[e.rank()]) * (int64(k) % n) % n
	if idx < 0 {
		idx += n
	}
	return f.expTable[idx]
}

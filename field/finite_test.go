package field

import (
	"testing"
)

func setupField(t *testing.T, p, m int, reduction []int) *FiniteField {
	t.Helper()
	f, err := NewField(p, m, reduction)
	if err != nil {
		t.Fatalf("failed to create GF(%d^%d): %v", p, m, err)
	}
	return f
}

func setupFieldWithTable(t *testing.T, p, m int, reduction []int) *FiniteField {
	t.Helper()
	f := setupField(t, p, m, reduction)
	if _, err := f.FindPrimitiveElement(); err != nil {
		t.Fatalf("failed to find a primitive element of %s: %v", f, err)
	}
	return f
}

func mustElement(t *testing.T, f *FiniteField, coefs ...int) Element {
	t.Helper()
	e, err := f.NewElement(coefs)
	if err != nil {
		t.Fatalf("failed to create element %v: %v", coefs, err)
	}
	return e
}

func TestNewFieldValidation(t *testing.T) {
	cases := []struct {
		desc      string
		p, m      int
		reduction []int
		wantErr   bool
	}{
		{"characteristic below 2", 1, 1, nil, true},
		{"zero characteristic", 0, 2, []int{1, 1, 1}, true},
		{"zero extension degree", 5, 0, nil, true},
		{"missing reduction polynomial", 2, 2, nil, true},
		{"reduction polynomial too short", 2, 2, []int{1, 1}, true},
		{"reduction polynomial too long", 2, 2, []int{1, 1, 1, 1}, true},
		{"non-monic reduction polynomial", 3, 2, []int{1, 1, 2}, true},
		{"order overflow", 3, 45, nil, true},
		{"prime field", 113, 1, nil, false},
		{"prime field ignores reduction", 5, 1, []int{1, 1}, false},
		{"extension field", 7, 2, []int{1, 0, 1}, false},
		{"leading coefficient monic after reduction", 7, 2, []int{1, 0, 8}, false},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := NewField(tc.p, tc.m, tc.reduction)
			if tc.wantErr && err == nil {
				t.Errorf("expected an error, got none")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestNewElementValidation(t *testing.T) {
	f := setupField(t, 7, 2, []int{1, 0, 1})

	if _, err := f.NewElement([]int{1}); err == nil {
		t.Errorf("expected an error for 1 coefficient in a degree-2 field")
	}
	if _, err := f.NewElement([]int{1, 2, 3}); err == nil {
		t.Errorf("expected an error for 3 coefficients in a degree-2 field")
	}

	e, err := f.NewElement([]int{8, -3})
	if err != nil {
		t.Fatalf("failed to create element: %v", err)
	}
	if want := mustElement(t, f, 1, 4); !e.Equal(want) {
		t.Errorf("expected [8, -3] to reduce to %s, got %s", want, e)
	}
}

func TestFromIntReduction(t *testing.T) {
	f := setupField(t, 5, 1, nil)
	for v := -10; v <= 10; v++ {
		e := f.FromInt(v)
		want := f.FromRank(((v % 5) + 5) % 5)
		if !e.Equal(want) {
			t.Errorf("expected FromInt(%d) = %s, got %s", v, want, e)
		}
		if !e.Add(f.FromInt(-v)).IsZero() {
			t.Errorf("expected FromInt(%d) + FromInt(%d) to be zero", v, -v)
		}
	}
}

func TestPrimeFieldAxioms(t *testing.T) {
	f := setupFieldWithTable(t, 5, 1, nil)

	elems := make([]Element, f.Order())
	for r := range elems {
		elems[r] = f.FromRank(r)
	}
	zero, one := f.Zero(), f.One()

	for _, a := range elems {
		if !a.Add(zero).Equal(a) {
			t.Errorf("expected %s + 0 = %s", a, a)
		}
		if !a.Mul(one).Equal(a) {
			t.Errorf("expected %s * 1 = %s", a, a)
		}
		if !a.Add(a.Neg()).IsZero() {
			t.Errorf("expected %s + (-%s) = 0", a, a)
		}
		if !a.IsZero() {
			if !a.Mul(a.Inv()).Equal(one) {
				t.Errorf("expected %s * %s^-1 = 1", a, a)
			}
		}
		for _, b := range elems {
			if !a.Add(b).Equal(b.Add(a)) {
				t.Errorf("addition is not commutative for %s, %s", a, b)
			}
			if !a.Mul(b).Equal(b.Mul(a)) {
				t.Errorf("multiplication is not commutative for %s, %s", a, b)
			}
			if !b.IsZero() {
				if !a.Div(b).Mul(b).Equal(a) {
					t.Errorf("expected (%s / %s) * %s = %s", a, b, b, a)
				}
			}
			for _, c := range elems {
				if !a.Add(b).Add(c).Equal(a.Add(b.Add(c))) {
					t.Errorf("addition is not associative for %s, %s, %s", a, b, c)
				}
				if !a.Mul(b).Mul(c).Equal(a.Mul(b.Mul(c))) {
					t.Errorf("multiplication is not associative for %s, %s, %s", a, b, c)
				}
				if !a.Mul(b.Add(c)).Equal(a.Mul(b).Add(a.Mul(c))) {
					t.Errorf("multiplication does not distribute for %s, %s, %s", a, b, c)
				}
			}
		}
	}
}

func TestExtensionFieldReduction(t *testing.T) {
	// GF(4) as GF(2)[x] / (x^2 + x + 1)
	f := setupField(t, 2, 2, []int{1, 1, 1})

	a := mustElement(t, f, 1, 1)
	b := mustElement(t, f, 0, 1)
	if got, want := a.Mul(b), mustElement(t, f, 1, 0); !got.Equal(want) {
		t.Errorf("expected (1, 1) * (0, 1) = %s, got %s", want, got)
	}

	// construction reduces coefficients mod p, negatives included
	if got, want := mustElement(t, f, 1, 3), mustElement(t, f, 1, 1); !got.Equal(want) {
		t.Errorf("expected [1, 3] to reduce to %s, got %s", want, got)
	}
	if got, want := mustElement(t, f, 6, -1), mustElement(t, f, 0, 1); !got.Equal(want) {
		t.Errorf("expected [6, -1] to reduce to %s, got %s", want, got)
	}

	if got, want := a.Add(b), mustElement(t, f, 1, 0); !got.Equal(want) {
		t.Errorf("expected (1, 1) + (0, 1) = %s, got %s", want, got)
	}
	if b.Equal(mustElement(t, f, 1, 0)) {
		t.Errorf("expected (0, 1) and (1, 0) to differ")
	}
}

func TestQuadraticExtensionMul(t *testing.T) {
	// GF(49) as GF(7)[x] / (x^2 + 1), multiplication on the direct path
	f := setupField(t, 7, 2, []int{1, 0, 1})

	a := mustElement(t, f, 3, 4)
	b := mustElement(t, f, 1, 3)
	if got, want := a.Mul(b), mustElement(t, f, 5, 6); !got.Equal(want) {
		t.Errorf("expected (3, 4) * (1, 3) = %s, got %s", want, got)
	}
}

func TestSubAndNeg(t *testing.T) {
	f := setupField(t, 7, 2, []int{1, 0, 1})

	a := mustElement(t, f, 3, 4)
	if got, want := a.Neg(), mustElement(t, f, 4, 3); !got.Equal(want) {
		t.Errorf("expected -(3, 4) = %s, got %s", want, got)
	}
	b := mustElement(t, f, 5, 1)
	if got, want := a.Sub(b), mustElement(t, f, 5, 3); !got.Equal(want) {
		t.Errorf("expected (3, 4) - (5, 1) = %s, got %s", want, got)
	}
	if !a.Sub(a).IsZero() {
		t.Errorf("expected %s - %s to be zero", a, a)
	}
}

func TestEqualSemantics(t *testing.T) {
	f5 := setupField(t, 5, 1, nil)
	f7 := setupField(t, 7, 1, nil)

	if f5.FromInt(3).Equal(f7.FromInt(3)) {
		t.Errorf("expected elements of GF(5) and GF(7) to be unequal")
	}

	// fields of the same order compare element-wise even across instances
	g := setupField(t, 5, 1, nil)
	if !f5.FromInt(3).Equal(g.FromInt(3)) {
		t.Errorf("expected 3 in two GF(5) instances to be equal")
	}

	if f5.FromInt(3).Equal(Real(3)) {
		t.Errorf("expected a finite field element and a Real to be unequal")
	}
}

func TestEqualInt(t *testing.T) {
	f := setupField(t, 5, 1, nil)
	e := f.FromInt(3)
	if !e.(*FiniteFieldElement).EqualInt(3) {
		t.Errorf("expected 3 to EqualInt 3")
	}
	// the comparison is literal, no mod-p reduction of the argument
	if e.(*FiniteFieldElement).EqualInt(8) {
		t.Errorf("expected 3 not to EqualInt 8")
	}

	g := setupField(t, 7, 2, []int{1, 0, 1})
	if !mustElement(t, g, 4, 0).(*FiniteFieldElement).EqualInt(4) {
		t.Errorf("expected (4, 0) to EqualInt 4")
	}
	if mustElement(t, g, 4, 1).(*FiniteFieldElement).EqualInt(4) {
		t.Errorf("expected (4, 1) not to EqualInt 4")
	}
}

func TestIncompatibleElements(t *testing.T) {
	f5 := setupField(t, 5, 1, nil)
	f7 := setupField(t, 7, 1, nil)

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic when mixing GF(5) and GF(7) elements")
		}
	}()
	f5.FromInt(1).Add(f7.FromInt(1))
}

func TestSameOrderElementsInteroperate(t *testing.T) {
	f := setupField(t, 7, 2, []int{1, 0, 1})
	g := setupField(t, 7, 2, []int{1, 0, 1})

	got := mustElement(t, f, 3, 4).Add(mustElement(t, g, 1, 1))
	if want := mustElement(t, f, 4, 5); !got.Equal(want) {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestZeroDivisionPanics(t *testing.T) {
	f := setupFieldWithTable(t, 5, 1, nil)
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic when dividing by zero")
		}
	}()
	f.FromInt(3).Div(f.Zero())
}

func TestZeroInversionPanics(t *testing.T) {
	f := setupFieldWithTable(t, 5, 1, nil)
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic when inverting zero")
		}
	}()
	f.Zero().Inv()
}

func TestDivWithoutTablePanics(t *testing.T) {
	f := setupField(t, 5, 1, nil)
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic when dividing without a log table")
		}
	}()
	f.FromInt(3).Div(f.FromInt(2))
}

func TestPow(t *testing.T) {
	bare := setupField(t, 7, 2, []int{1, 0, 1})
	tabled := setupFieldWithTable(t, 7, 2, []int{1, 0, 1})

	for _, f := range []*FiniteField{bare, tabled} {
		a := mustElement(t, f, 3, 4)
		one := f.One()

		if got := a.Pow(0); !got.Equal(one) {
			t.Errorf("expected %s^0 = 1, got %s", a, got)
		}
		if got := f.Zero().Pow(0); !got.Equal(one) {
			t.Errorf("expected 0^0 = 1, got %s", got)
		}
		if got := f.Zero().Pow(5); !got.IsZero() {
			t.Errorf("expected 0^5 = 0, got %s", got)
		}
		if got := a.Pow(1); !got.Equal(a) {
			t.Errorf("expected %s^1 = %s, got %s", a, a, got)
		}
		if got, want := a.Pow(3), a.Mul(a).Mul(a); !got.Equal(want) {
			t.Errorf("expected %s^3 = %s, got %s", a, want, got)
		}
	}

	a := mustElement(t, tabled, 3, 4)
	if got, want := a.Pow(-1), a.Inv(); !got.Equal(want) {
		t.Errorf("expected %s^-1 = %s, got %s", a, want, got)
	}
	if got, want := a.Pow(-3), a.Inv().Pow(3); !got.Equal(want) {
		t.Errorf("expected %s^-3 = %s, got %s", a, want, got)
	}
	// the multiplicative group has order q-1
	if got := a.Pow(tabled.Order() - 1); !got.Equal(tabled.One()) {
		t.Errorf("expected %s^48 = 1, got %s", a, got)
	}
	if got, want := a.Pow(tabled.Order()), a; !got.Equal(want) {
		t.Errorf("expected %s^49 = %s, got %s", a, want, got)
	}
}

func TestNegativePowWithoutTablePanics(t *testing.T) {
	f := setupField(t, 7, 2, []int{1, 0, 1})
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic raising to a negative power without a log table")
		}
	}()
	mustElement(t, f, 3, 4).Pow(-1)
}

func TestZeroNegativePowPanics(t *testing.T) {
	f := setupFieldWithTable(t, 5, 1, nil)
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic raising zero to a negative power")
		}
	}()
	f.Zero().Pow(-2)
}

func TestRankRoundTrip(t *testing.T) {
	f := setupField(t, 7, 2, []int{1, 0, 1})
	for r := 0; r < f.Order(); r++ {
		e := f.FromRank(r)
		if got := e.(*FiniteFieldElement).Rank(); got != r {
			t.Errorf("expected rank %d to round-trip, got %d", r, got)
		}
	}
}

func TestFromRankOutOfRangePanics(t *testing.T) {
	f := setupField(t, 5, 1, nil)
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic for a rank outside the field")
		}
	}()
	f.FromRank(5)
}

func TestRandom(t *testing.T) {
	f := setupField(t, 7, 2, []int{1, 0, 1})
	for i := 0; i < 64; i++ {
		e, err := f.Random()
		if err != nil {
			t.Fatalf("failed to draw a random element: %v", err)
		}
		rank := e.(*FiniteFieldElement).Rank()
		if rank < 0 || rank >= f.Order() {
			t.Fatalf("random element has rank %d, outside [0, %d)", rank, f.Order())
		}
		if !e.Sub(e).IsZero() {
			t.Errorf("expected %s - %s to be zero", e, e)
		}
	}
}

func TestElementString(t *testing.T) {
	f5 := setupField(t, 5, 1, nil)
	if got := f5.FromInt(3).String(); got != "3" {
		t.Errorf("expected \"3\", got %q", got)
	}
	f49 := setupField(t, 7, 2, []int{1, 0, 1})
	if got := mustElement(t, f49, 3, 4).String(); got != "(3, 4)" {
		t.Errorf("expected \"(3, 4)\", got %q", got)
	}
}

func TestCoefficientsCopy(t *testing.T) {
	f := setupField(t, 7, 2, []int{1, 0, 1})
	e := mustElement(t, f, 3, 4)

	coefs := e.(*FiniteFieldElement).Coefficients()
	coefs[0] = 6
	if !e.Equal(mustElement(t, f, 3, 4)) {
		t.Errorf("mutating the returned coefficients changed the element")
	}

	c := e.Clone()
	if !c.Equal(e) {
		t.Errorf("expected the clone %s to equal %s", c, e)
	}
}

func TestReductionCopy(t *testing.T) {
	f := setupField(t, 7, 2, []int{1, 0, 1})
	red := f.Reduction()
	red[0] = 6
	if got := f.Reduction(); got[0] != 1 {
		t.Errorf("mutating the returned reduction polynomial changed the field")
	}

	f5 := setupField(t, 5, 1, nil)
	if f5.Reduction() != nil {
		t.Errorf("expected a prime field to have no reduction polynomial")
	}
}

func TestNewFieldFromConfig(t *testing.T) {
	t.Run("eager primitive", func(t *testing.T) {
		f, err := NewFieldFromConfig(&FieldConfig{P: 7, M: 2, Reduction: []int{1, 0, 1}, EagerPrimitive: true})
		if err != nil {
			t.Fatalf("failed to create field: %v", err)
		}
		if !f.HasLogTable() {
			t.Errorf("expected the log table to be built eagerly")
		}
	})

	t.Run("lazy by default", func(t *testing.T) {
		f, err := NewFieldFromConfig(&FieldConfig{P: 7, M: 2, Reduction: []int{1, 0, 1}})
		if err != nil {
			t.Fatalf("failed to create field: %v", err)
		}
		if f.HasLogTable() {
			t.Errorf("expected no log table without EagerPrimitive")
		}
	})

	t.Run("explicit primitive element", func(t *testing.T) {
		f, err := NewFieldFromConfig(&FieldConfig{P: 113, M: 1, Primitive: []int{3}})
		if err != nil {
			t.Fatalf("failed to create field: %v", err)
		}
		if !f.HasLogTable() {
			t.Errorf("expected the log table to be built from the provided primitive element")
		}
	})

	t.Run("non-primitive element rejected", func(t *testing.T) {
		// 1 generates the trivial subgroup
		if _, err := NewFieldFromConfig(&FieldConfig{P: 113, M: 1, Primitive: []int{1}}); err == nil {
			t.Errorf("expected an error for a non-primitive element")
		}
	})

	t.Run("invalid parameters", func(t *testing.T) {
		if _, err := NewFieldFromConfig(&FieldConfig{P: 4, M: 0}); err == nil {
			t.Errorf("expected an error for a zero extension degree")
		}
	})
}

func BenchmarkMulDirect(b *testing.B) {
	f, err := NewField(2, 8, []int{1, 1, 0, 1, 1, 0, 0, 0, 1})
	if err != nil {
		b.Fatalf("failed to create GF(2^8): %v", err)
	}
	x := f.FromRank(0x57)
	y := f.FromRank(0x83)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.Mul(y)
	}
}

func BenchmarkMulTable(b *testing.B) {
	f, err := NewField(2, 8, []int{1, 1, 0, 1, 1, 0, 0, 0, 1})
	if err != nil {
		b.Fatalf("failed to create GF(2^8): %v", err)
	}
	if _, err := f.FindPrimitiveElement(); err != nil {
		b.Fatalf("failed to find a primitive element: %v", err)
	}
	x := f.FromRank(0x57)
	y := f.FromRank(0x83)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.Mul(y)
	}
}

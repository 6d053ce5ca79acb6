// Package rs implements a Reed-Solomon code over configurable finite
// fields, with Berlekamp-Welch decoding that corrects up to
// floor((n-k)/2) corrupted symbols without being told where they are.
package rs

import (
	"fmt"

	logging "github.com/ipfs/go-log/v2"

	"github.com/wanqizhu/finitefield/field"
)

var log = logging.Logger("rs")

// Config describes a Reed-Solomon code instance.
type Config struct {
	// Field carries the symbol arithmetic. Its log table must already be
	// built: decoding solves linear systems, which divides.
	Field *field.FiniteField
	// N is the codeword length in symbols.
	N int
	// K is the message length in symbols. The code corrects up to
	// floor((N-K)/2) symbol errors.
	K int
	// EvalPoints are the N distinct field elements the message polynomial is
	// evaluated at. They must all come from Field.
	EvalPoints []field.Element
}

// DefaultConfig returns the canonical small code: GF(113) with n = 16,
// k = 8 and evaluation points 1 through 16.
func DefaultConfig() *Config {
	f, err := field.NewFieldFromConfig(&field.FieldConfig{P: 113, M: 1, EagerPrimitive: true})
	if err != nil {
		panic(err)
	}
	points := make([]field.Element, 16)
	for i := range points {
		points[i] = f.FromInt(i + 1)
	}
	return &Config{
		Field:      f,
		N:          16,
		K:          8,
		EvalPoints: points,
	}
}

// Code encodes length-k messages into length-n codewords by treating the
// message as polynomial coefficients and evaluating at the fixed points.
// Any k intact symbols determine the polynomial again, which is what buys
// the error tolerance.
type Code struct {
	field      *field.FiniteField
	n          int
	k          int
	evalPoints []field.Element
}

// NewCode creates a Reed-Solomon code from the config. A nil config gets
// DefaultConfig.
func NewCode(config *Config) (*Code, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Field == nil {
		return nil, fmt.Errorf("field must be provided")
	}
	if config.K < 1 {
		return nil, fmt.Errorf("message length must be positive, got %d", config.K)
	}
	if config.N < config.K {
		return nil, fmt.Errorf("codeword length %d is shorter than message length %d", config.N, config.K)
	}
	if config.N > config.Field.Order() {
		return nil, fmt.Errorf("codeword length %d exceeds the %d distinct evaluation points the field has", config.N, config.Field.Order())
	}
	if len(config.EvalPoints) != config.N {
		return nil, fmt.Errorf("expected %d evaluation points, got %d", config.N, len(config.EvalPoints))
	}
	if !config.Field.HasLogTable() {
		return nil, fmt.Errorf("field has no log table; call FindPrimitiveElement before building a code")
	}

	seen := make(map[int]struct{}, config.N)
	points := make([]field.Element, config.N)
	for i, pt := range config.EvalPoints {
		elem, ok := pt.(*field.FiniteFieldElement)
		if !ok || elem.Field() != config.Field {
			return nil, fmt.Errorf("evaluation point %d is not from the configured field", i)
		}
		rank := elem.Rank()
		if _, dup := seen[rank]; dup {
			return nil, fmt.Errorf("evaluation points must be distinct, %s repeats", pt)
		}
		seen[rank] = struct{}{}
		points[i] = pt.Clone()
	}

	log.Debugf("new rs code over %s: n=%d k=%d, corrects %d errors",
		config.Field, config.N, config.K, (config.N-config.K)/2)
	return &Code{
		field:      config.Field,
		n:          config.N,
		k:          config.K,
		evalPoints: points,
	}, nil
}

// N returns the codeword length in symbols.
func (c *Code) N() int {
	return c.n
}

// K returns the message length in symbols.
func (c *Code) K() int {
	return c.k
}

// MaxErrors returns the number of corrupted symbols decoding is guaranteed
// to correct, floor((n-k)/2).
func (c *Code) MaxErrors() int {
	return (c.n - c.k) / 2
}

// Field returns the field the code's symbols live in.
func (c *Code) Field() *field.FiniteField {
	return c.field
}

// EvalPoints returns a copy of the evaluation points.
func (c *Code) EvalPoints() []field.Element {
	points := make([]field.Element, len(c.evalPoints))
	for i, pt := range c.evalPoints {
		points[i] = pt.Clone()
	}
	return points
}

// Encode maps a length-k message to its length-n codeword by evaluating the
// message polynomial at every evaluation point. The message is the
// polynomial's coefficients in ascending degree order.
func (c *Code) Encode(message []field.Element) ([]field.Element, error) {
	if len(message) != c.k {
		return nil, fmt.Errorf("expected a message of length %d, got %d", c.k, len(message))
	}
	codeword := make([]field.Element, c.n)
	for i, pt := range c.evalPoints {
		codeword[i] = field.PolyEval(message, pt, c.field)
	}
	return codeword, nil
}

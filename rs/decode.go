package rs

import (
	"errors"
	"fmt"

	"github.com/wanqizhu/finitefield/field"
)

// ErrUncorrectable reports a codeword too corrupted for every error budget
// the code can try.
var ErrUncorrectable = errors.New("rs: too many errors to recover the message")

// Decode recovers the message from a codeword with up to MaxErrors
// corrupted symbols, using the Berlekamp-Welch algorithm. The positions of
// the corruptions are not needed. Beyond MaxErrors the call may fail with
// ErrUncorrectable or settle on a wrong message; Reed-Solomon cannot tell
// past that point.
//
// For an error budget e there is a monic degree-e error locator polynomial
// E, zero exactly at the corrupted positions, and Q = E * P for the message
// polynomial P, such that every position i satisfies
//
//	w_i * E(a_i) = Q(a_i)
//
// even where w_i is wrong, because E(a_i) kills those equations. The lower
// e coefficients of E and the e+k coefficients of Q are unknowns; folding
// E's fixed leading 1 onto the right-hand side,
//
//	sum_j E_j * w_i * a_i^j - sum_j Q_j * a_i^j = -w_i * a_i^e
//
// gives one linear equation per position, and the first 2e+k positions make
// the system square. Budgets descend from MaxErrors; a budget whose system
// has no unique solution is retried one smaller, and with fewer actual
// errors than budgeted the locator has roots to spare, so that is the
// common case. Once solved, P = Q / E exactly.
func (c *Code) Decode(codeword []field.Element) ([]field.Element, error) {
	if len(codeword) != c.n {
		return nil, fmt.Errorf("expected a codeword of length %d, got %d", c.n, len(codeword))
	}

	for e := c.MaxErrors(); e >= 0; e-- {
		message, err := c.decodeAttempt(codeword, e)
		if errors.Is(err, field.ErrUnderdetermined) || errors.Is(err, field.ErrInconsistent) {
			log.Debugf("error budget %d has no unique solution, retrying", e)
			continue
		}
		if err != nil {
			return nil, err
		}
		log.Debugf("decoded with error budget %d", e)
		return message, nil
	}
	return nil, ErrUncorrectable
}

// decodeAttempt builds and solves the square system for one error budget,
// then divides the error locator out of the recovered numerator.
func (c *Code) decodeAttempt(codeword []field.Element, e int) ([]field.Element, error) {
	unknowns := 2*e + c.k

	A := make([][]field.Element, unknowns)
	b := make([]field.Element, unknowns)
	for i := 0; i < unknowns; i++ {
		a := c.evalPoints[i]
		w := codeword[i]
		row := make([]field.Element, unknowns)

		// E's unknown coefficients, weighted by the received symbol
		power := c.field.One()
		for j := 0; j < e; j++ {
			row[j] = w.Mul(power)
			power = power.Mul(a)
		}
		// the loop leaves power at a^e, the term owned by E's leading 1
		b[i] = w.Mul(power).Neg()

		// Q's coefficients move across the equality, hence the negation
		power = c.field.One()
		for j := 0; j < e+c.k; j++ {
			row[e+j] = power.Neg()
			power = power.Mul(a)
		}
		A[i] = row
	}

	sol, err := field.Solve(A, b, c.field)
	if err != nil {
		return nil, err
	}

	locator := make([]field.Element, e+1)
	copy(locator, sol[:e])
	locator[e] = c.field.One()
	numerator := sol[e:]

	message, remainder, err := field.PolyDiv(numerator, locator, c.field)
	if err != nil {
		return nil, err
	}
	if len(remainder) != 0 {
		return nil, fmt.Errorf("rs: error locator does not divide the recovered numerator")
	}
	if len(message) != c.k {
		return nil, fmt.Errorf("rs: recovered %d message coefficients, want %d", len(message), c.k)
	}
	return message, nil
}

package field

import (
	"errors"
	"fmt"
)

// Matrices are dense [][]Element slices in row-major order. The routines
// here are generic over any Field implementation, which keeps them usable
// both for exact finite field work and for quick real-valued cross checks.

var (
	// ErrUnderdetermined reports a square system whose reduction lost rank
	// without contradicting any equation: the system has several solutions.
	ErrUnderdetermined = errors.New("linear system has no unique solution")

	// ErrInconsistent reports a square system containing contradictory
	// equations: the system has no solution.
	ErrInconsistent = errors.New("linear system has no solution")
)

// GaussianEliminate reduces A to reduced row echelon form in place and
// returns it together with the row origin permutation: perm[i] is the index
// the row now at position i had in the input. Rectangular and rank
// deficient matrices reduce as far as their rank allows; judging the result
// is the caller's business.
func GaussianEliminate(A [][]Element, f Field) ([][]Element, []int) {
	rows := len(A)
	perm := make([]int, rows)
	for i := range perm {
		perm[i] = i
	}
	if rows == 0 {
		return A, perm
	}
	cols := len(A[0])

	// forward pass: row echelon form with unit pivots
	pivotCols := make([]int, 0, rows)
	row := 0
	for col := 0; col < cols && row < rows; col++ {
		// find the first row at or below the frontier with a nonzero entry
		pivot := -1
		for i := row; i < rows; i++ {
			if !A[i][col].IsZero() {
				pivot = i
				break
			}
		}
		if pivot == -1 {
			// the column is dead below the frontier; move on
			continue
		}

		if pivot != row {
			A[row], A[pivot] = A[pivot], A[row]
			perm[row], perm[pivot] = perm[pivot], perm[row]
		}

		// clear the column below the pivot
		for i := row + 1; i < rows; i++ {
			if A[i][col].IsZero() {
				continue
			}
			factor := A[i][col].Div(A[row][col])
			for j := col; j < cols; j++ {
				A[i][j] = A[i][j].Sub(factor.Mul(A[row][j]))
			}
		}

		// scale the pivot row so the pivot becomes one
		invPivot := A[row][col].Inv()
		for j := col; j < cols; j++ {
			A[row][j] = A[row][j].Mul(invPivot)
		}

		pivotCols = append(pivotCols, col)
		row++
	}

	// backward pass: clear the entries above every pivot, bottom up
	for r := row - 1; r >= 0; r-- {
		col := pivotCols[r]
		for i := 0; i < r; i++ {
			if A[i][col].IsZero() {
				continue
			}
			// the pivot is one, so the factor is the entry itself
			factor := A[i][col].Clone()
			for j := col; j < cols; j++ {
				A[i][j] = A[i][j].Sub(factor.Mul(A[r][j]))
			}
		}
	}

	return A, perm
}

// Solve returns the unique solution x of the square system A x = b. The
// inputs are copied into an augmented matrix first, so A and b survive the
// call. When reduction loses rank the failure mode is reported per row: a
// zeroed diagonal with a zeroed right-hand side means several solutions
// exist (ErrUnderdetermined), with a surviving right-hand side none does
// (ErrInconsistent).
func Solve(A [][]Element, b []Element, f Field) ([]Element, error) {
	n := len(A)
	if n == 0 {
		return nil, fmt.Errorf("cannot solve an empty system")
	}
	if len(b) != n {
		return nil, fmt.Errorf("expected %d right-hand side values, got %d", n, len(b))
	}

	aug := make([][]Element, n)
	for i := range A {
		if len(A[i]) != n {
			return nil, fmt.Errorf("matrix is not square: row %d has %d columns, want %d", i, len(A[i]), n)
		}
		aug[i] = make([]Element, n+1)
		for j, v := range A[i] {
			aug[i][j] = v.Clone()
		}
		aug[i][n] = b[i].Clone()
	}

	reduced, _ := GaussianEliminate(aug, f)

	one := f.One()
	sol := make([]Element, n)
	for i := 0; i < n; i++ {
		diag := reduced[i][i]
		if diag.IsZero() {
			if reduced[i][n].IsZero() {
				return nil, ErrUnderdetermined
			}
			return nil, ErrInconsistent
		}
		if !diag.Equal(one) {
			panic(fmt.Sprintf("diagonal entry %s survived reduction as neither 0 nor 1", diag))
		}
		sol[i] = reduced[i][n]
	}
	return sol, nil
}

// MatrixMultiply computes the matrix product A × B. A is r×n and B is n×c;
// mismatched dimensions panic.
func MatrixMultiply(A, B [][]Element, f Field) [][]Element {
	if len(A) == 0 || len(B) == 0 {
		return nil
	}
	n := len(A[0])
	c := len(B[0])
	if len(B) != n {
		panic(fmt.Sprintf("matrix dimensions mismatch: A is %d×%d, B is %d×%d", len(A), n, len(B), c))
	}

	result := make([][]Element, len(A))
	for i := range result {
		result[i] = make([]Element, c)
		for j := 0; j < c; j++ {
			sum := f.Zero()
			for k := 0; k < n; k++ {
				sum = sum.Add(A[i][k].Mul(B[k][j]))
			}
			result[i][j] = sum
		}
	}
	return result
}

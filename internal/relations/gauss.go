// Package relations implements the exact (and mod-p) linear-algebra
// relation finders of spec §4.7: findlincombo, findhom/findnonhom/
// findhomcombo, findpoly, findcong, findmaxind, findprod. Every finder
// is built on top of a single exact Gaussian-elimination primitive over
// Q, plus a mod-p sibling used to pre-filter candidates cheaply before
// the exact finders confirm them (spec's "...modp" variants).
package relations

import (
	"qkangaroo/internal/bigrat"
)

// Matrix is a dense row-major matrix of exact rationals.
type Matrix struct {
	Rows, Cols int
	A          [][]bigrat.Q
}

// NewMatrix builds a zero-filled r x c matrix.
func NewMatrix(r, c int) Matrix {
	a := make([][]bigrat.Q, r)
	for i := range a {
		row := make([]bigrat.Q, c)
		for j := range row {
			row[j] = bigrat.QZero
		}
		a[i] = row
	}
	return Matrix{Rows: r, Cols: c, A: a}
}

// rowEchelon reduces m in place to reduced row-echelon form, returning
// the column index of the pivot found in each row that has one (-1 when
// the row is entirely zero).
func rowEchelon(m Matrix) []int {
	pivots := make([]int, 0, m.Rows)
	row := 0
	for col := 0; col < m.Cols && row < m.Rows; col++ {
		sel := -1
		for r := row; r < m.Rows; r++ {
			if !m.A[r][col].IsZero() {
				sel = r
				break
			}
		}
		if sel == -1 {
			continue
		}
		m.A[row], m.A[sel] = m.A[sel], m.A[row]
		pivInv, err := m.A[row][col].Recip()
		if err != nil {
			continue
		}
		for j := col; j < m.Cols; j++ {
			m.A[row][j] = m.A[row][j].Mul(pivInv)
		}
		for r := 0; r < m.Rows; r++ {
			if r == row {
				continue
			}
			factor := m.A[r][col]
			if factor.IsZero() {
				continue
			}
			for j := col; j < m.Cols; j++ {
				m.A[r][j] = m.A[r][j].Sub(factor.Mul(m.A[row][j]))
			}
		}
		pivots = append(pivots, col)
		row++
	}
	for len(pivots) < m.Rows {
		pivots = append(pivots, -1)
	}
	return pivots
}

// SolveUnique solves A*x = b for an exact unique solution, returning
// ok=false if the system is inconsistent or underdetermined within the
// given columns (spec §4.7: "never return an arbitrary solution when
// underdetermined").
func SolveUnique(a [][]bigrat.Q, b []bigrat.Q) (x []bigrat.Q, ok bool) {
	rows := len(a)
	if rows == 0 {
		return nil, false
	}
	cols := len(a[0])
	aug := NewMatrix(rows, cols+1)
	for i := 0; i < rows; i++ {
		copy(aug.A[i], a[i])
		aug.A[i][cols] = b[i]
	}
	pivots := rowEchelon(aug)
	x = make([]bigrat.Q, cols)
	assigned := make([]bool, cols)
	for r := 0; r < rows; r++ {
		p := pivots[r]
		if p == -1 {
			// all-zero coefficient row: its augmented entry must also be zero.
			if !aug.A[r][cols].IsZero() {
				return nil, false
			}
			continue
		}
		// Row echelon form leaves zero entries in every other pivot
		// column already, so the augmented value is the solved unknown
		// only if no non-pivot column in this row carries a nonzero
		// coefficient (otherwise the system is underdetermined).
		for j := 0; j < cols; j++ {
			if j == p {
				continue
			}
			if !aug.A[r][j].IsZero() {
				return nil, false
			}
		}
		x[p] = aug.A[r][cols]
		assigned[p] = true
	}
	for _, a := range assigned {
		if !a {
			return nil, false
		}
	}
	return x, true
}

// NullSpace returns a basis for the null space of a (an r x c matrix),
// via reduced row-echelon form and free-variable back substitution.
func NullSpace(a [][]bigrat.Q) [][]bigrat.Q {
	rows := len(a)
	if rows == 0 {
		return nil
	}
	cols := len(a[0])
	m := NewMatrix(rows, cols)
	for i := range a {
		copy(m.A[i], a[i])
	}
	pivots := rowEchelon(m)
	isPivotCol := make([]bool, cols)
	pivotRowOf := make([]int, cols)
	for i := range pivotRowOf {
		pivotRowOf[i] = -1
	}
	for r, p := range pivots {
		if p >= 0 {
			isPivotCol[p] = true
			pivotRowOf[p] = r
		}
	}
	var basis [][]bigrat.Q
	for free := 0; free < cols; free++ {
		if isPivotCol[free] {
			continue
		}
		vec := make([]bigrat.Q, cols)
		for i := range vec {
			vec[i] = bigrat.QZero
		}
		vec[free] = bigrat.QOne
		for col := 0; col < cols; col++ {
			if !isPivotCol[col] {
				continue
			}
			r := pivotRowOf[col]
			vec[col] = m.A[r][free].Neg()
		}
		basis = append(basis, vec)
	}
	return basis
}

// Rank returns the rank of a via row-echelon reduction.
func Rank(a [][]bigrat.Q) int {
	if len(a) == 0 {
		return 0
	}
	m := NewMatrix(len(a), len(a[0]))
	for i := range a {
		copy(m.A[i], a[i])
	}
	pivots := rowEchelon(m)
	n := 0
	for _, p := range pivots {
		if p >= 0 {
			n++
		}
	}
	return n
}

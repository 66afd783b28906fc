package relations

import (
	"qkangaroo/internal/analysis"
	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/fps"
)

// SeriesFromFPS reads off f's coefficients [0, N) as a plain slice, the
// "finite-shift-normalised sequence of rationals" spec §4.7 builds every
// finder on top of.
func SeriesFromFPS(f fps.FPS, n int) ([]bigrat.Q, error) {
	out := make([]bigrat.Q, n)
	for i := 0; i < n; i++ {
		c, err := f.Coeff(i)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func commonLen(series ...[]bigrat.Q) int {
	n := -1
	for _, s := range series {
		if n == -1 || len(s) < n {
			n = len(s)
		}
	}
	if n < 0 {
		return 0
	}
	return n
}

// FindLinCombo seeks lambda in Q^r with target - sum_j lambda_j*cj
// vanishing beyond topshift terms (spec §4.7); ok is false if the window
// is inconsistent or underdetermined.
func FindLinCombo(target []bigrat.Q, candidates [][]bigrat.Q, topshift int) (lambda []bigrat.Q, ok bool) {
	n := commonLen(append([][]bigrat.Q{target}, candidates...)...)
	if topshift >= n || len(candidates) == 0 {
		return nil, false
	}
	rows := n - topshift
	a := make([][]bigrat.Q, rows)
	b := make([]bigrat.Q, rows)
	for i := 0; i < rows; i++ {
		idx := topshift + i
		row := make([]bigrat.Q, len(candidates))
		for j, c := range candidates {
			row[j] = c[idx]
		}
		a[i] = row
		b[i] = target[idx]
	}
	return SolveUnique(a, b)
}

// multiIndices enumerates every k-tuple of nonnegative integers summing
// to exactly degree.
func multiIndices(k, degree int) [][]int {
	if k == 0 {
		if degree == 0 {
			return [][]int{{}}
		}
		return nil
	}
	var out [][]int
	for first := 0; first <= degree; first++ {
		for _, rest := range multiIndices(k-1, degree-first) {
			idx := append([]int{first}, rest...)
			out = append(out, idx)
		}
	}
	return out
}

// monomialSeries computes prod_i series[i][n]^{e[i]} termwise.
func monomialSeries(series [][]bigrat.Q, e []int, n int) []bigrat.Q {
	out := make([]bigrat.Q, n)
	for t := 0; t < n; t++ {
		acc := bigrat.QOne
		for i, ei := range e {
			if ei == 0 {
				continue
			}
			p, err := series[i][t].PowSigned(ei)
			if err != nil {
				acc = bigrat.QZero
				break
			}
			acc = acc.Mul(p)
		}
		out[t] = acc
	}
	return out
}

// Relation is one recovered homogeneous-degree relation: Coeffs[i] is the
// coefficient of the monomial with exponents Exponents[i].
type Relation struct {
	Exponents [][]int
	Coeffs    []bigrat.Q
}

// FindHom returns a basis of all degree-d monomial relations among
// series (spec §4.7): enumerate multi-indices of total degree d, build
// each monomial's product series, stack as rows, and take the null
// space via exact Gauss elimination.
func FindHom(series [][]bigrat.Q, degree, topshift int) []Relation {
	return findRelations(series, []int{degree}, topshift)
}

// FindNonHom is FindHom with every total degree from 0 to d permitted
// (constants allowed), per spec §4.7.
func FindNonHom(series [][]bigrat.Q, d, topshift int) []Relation {
	degrees := make([]int, d+1)
	for i := range degrees {
		degrees[i] = i
	}
	return findRelations(series, degrees, topshift)
}

func findRelations(series [][]bigrat.Q, degrees []int, topshift int) []Relation {
	n := commonLen(series...)
	if topshift >= n {
		return nil
	}
	var exps [][]int
	for _, d := range degrees {
		exps = append(exps, multiIndices(len(series), d)...)
	}
	if len(exps) == 0 {
		return nil
	}
	rows := n - topshift
	a := make([][]bigrat.Q, rows)
	for t := 0; t < rows; t++ {
		a[t] = make([]bigrat.Q, len(exps))
	}
	for j, e := range exps {
		m := monomialSeries(series, e, n)
		for t := 0; t < rows; t++ {
			a[t][j] = m[topshift+t]
		}
	}
	basis := NullSpace(a)
	out := make([]Relation, 0, len(basis))
	for _, v := range basis {
		out = append(out, Relation{Exponents: exps, Coeffs: v})
	}
	return out
}

// FindHomCombo expresses target as a linear combination of degree-d
// monomials built from candidates (spec §4.7).
func FindHomCombo(target []bigrat.Q, candidates [][]bigrat.Q, d, topshift int) ([]bigrat.Q, [][]int, bool) {
	n := commonLen(append([][]bigrat.Q{target}, candidates...)...)
	exps := multiIndices(len(candidates), d)
	if len(exps) == 0 {
		return nil, nil, false
	}
	monos := make([][]bigrat.Q, len(exps))
	for i, e := range exps {
		monos[i] = monomialSeries(candidates, e, n)
	}
	lambda, ok := FindLinCombo(target, monos, topshift)
	return lambda, exps, ok
}

// FindPoly finds coefficients c[i][j] (not all zero) with
// sum_{i<=degX,j<=degY} c[i][j]*x^i*y^j = 0 beyond topshift terms.
func FindPoly(x, y []bigrat.Q, degX, degY, topshift int) (map[[2]int]bigrat.Q, bool) {
	n := commonLen(x, y)
	var exps [][2]int
	series := make([][]bigrat.Q, 0)
	for i := 0; i <= degX; i++ {
		for j := 0; j <= degY; j++ {
			exps = append(exps, [2]int{i, j})
			m := make([]bigrat.Q, n)
			for t := 0; t < n; t++ {
				xi, err := x[t].PowSigned(i)
				if err != nil {
					m[t] = bigrat.QZero
					continue
				}
				yj, err := y[t].PowSigned(j)
				if err != nil {
					m[t] = bigrat.QZero
					continue
				}
				m[t] = xi.Mul(yj)
			}
			series = append(series, m)
		}
	}
	if topshift >= n {
		return nil, false
	}
	rows := n - topshift
	a := make([][]bigrat.Q, rows)
	for t := 0; t < rows; t++ {
		row := make([]bigrat.Q, len(series))
		for j, s := range series {
			row[j] = s[topshift+t]
		}
		a[t] = row
	}
	basis := NullSpace(a)
	if len(basis) == 0 {
		return nil, false
	}
	out := map[[2]int]bigrat.Q{}
	for i, c := range basis[0] {
		if !c.IsZero() {
			out[exps[i]] = c
		}
	}
	return out, true
}

// Congruence is one discovered uniform-divisibility congruence.
type Congruence struct {
	Modulus  int
	Residues []int
}

// FindCong sifts series into each modulus's residue classes and reports
// which residues are uniformly divisible by that modulus (spec §4.7,
// e.g. Ramanujan's p(5n+4) congruence mod 5).
func FindCong(series fps.FPS, moduli []int, N int) []Congruence {
	var out []Congruence
	for _, m := range moduli {
		if m <= 0 {
			continue
		}
		var residues []int
		for k := 0; k < m; k++ {
			sifted, err := analysis.Sift(series, m, k, N)
			if err != nil {
				continue
			}
			uniform := true
			any := false
			for _, t := range sifted.Terms() {
				any = true
				num := t.Coeff.Numer()
				_, r, err := num.DivMod(bigrat.ZFromInt64(int64(m)))
				if err != nil || !r.IsZero() || !t.Coeff.IsInteger() {
					uniform = false
					break
				}
			}
			if any && uniform {
				residues = append(residues, k)
			}
		}
		if len(residues) > 0 {
			out = append(out, Congruence{Modulus: m, Residues: residues})
		}
	}
	return out
}

// FindMaxInd extracts the indices of a maximal linearly independent
// subset of series by incrementally adding series and checking whether
// the stacked-rows rank increases (spec §4.7).
func FindMaxInd(series [][]bigrat.Q, topshift int) []int {
	n := commonLen(series...)
	if topshift >= n {
		return nil
	}
	var kept []int
	var rows [][]bigrat.Q
	for idx, s := range series {
		candidateRows := append(cloneRows(rows), s[topshift:n])
		if Rank(candidateRows) > Rank(rows) {
			rows = candidateRows
			kept = append(kept, idx)
		}
	}
	return kept
}

func cloneRows(rows [][]bigrat.Q) [][]bigrat.Q {
	out := make([][]bigrat.Q, len(rows))
	copy(out, rows)
	return out
}

// ProductCombo is one hit returned by FindProd: an integer linear
// combination of the input series whose result factors cleanly.
type ProductCombo struct {
	Coeffs []int
	Result analysis.ProdResult
}

// FindProd brute-force searches small integer linear combinations of
// series (coefficients in [-maxCoeff, maxCoeff], not all zero) whose
// combination, read back as an FPS, has a clean (integer-exponent,
// bounded-support) product decomposition via Prodmake (spec §4.7).
func FindProd(series []fps.FPS, maxCoeff, N int) []ProductCombo {
	if len(series) == 0 {
		return nil
	}
	variable := series[0].Variable()
	var out []ProductCombo
	combos := integerCombos(len(series), maxCoeff)
	for _, combo := range combos {
		allZero := true
		for _, c := range combo {
			if c != 0 {
				allZero = false
				break
			}
		}
		if allZero {
			continue
		}
		acc := fps.Zero(variable, N)
		ok := true
		for i, c := range combo {
			if c == 0 {
				continue
			}
			scaled := fps.ScalarMul(fps.CapOrder(series[i], N), bigrat.QFromInt64(int64(c)))
			var err error
			acc, err = fps.Add(acc, scaled)
			if err != nil {
				ok = false
				break
			}
		}
		if !ok || acc.IsZero() {
			continue
		}
		c0, err := acc.Coeff(0)
		if err != nil || c0.IsZero() {
			continue
		}
		result, err := analysis.Prodmake(acc, N-1)
		if err != nil {
			continue
		}
		if isClean(result) {
			out = append(out, ProductCombo{Coeffs: combo, Result: result})
		}
	}
	return out
}

func isClean(r analysis.ProdResult) bool {
	for _, e := range r.Exponents {
		if !e.IsInteger() {
			return false
		}
	}
	return len(r.Exponents) > 0
}

func integerCombos(k, maxCoeff int) [][]int {
	if k == 0 {
		return [][]int{{}}
	}
	var out [][]int
	for c := -maxCoeff; c <= maxCoeff; c++ {
		for _, rest := range integerCombos(k-1, maxCoeff) {
			out = append(out, append([]int{c}, rest...))
		}
	}
	return out
}

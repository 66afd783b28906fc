package relations

import "qkangaroo/internal/bigrat"

// DefaultPrime is the modulus the ...Modp finders use to cheaply filter
// candidate relations before the exact Gauss-elimination finders confirm
// them (spec §4.7).
const DefaultPrime = 2147483647 // 2^31 - 1, Mersenne prime

func modInverse(a, p int64) (int64, bool) {
	a = ((a % p) + p) % p
	if a == 0 {
		return 0, false
	}
	// Fermat's little theorem: a^(p-2) mod p, p prime.
	result := int64(1)
	base := a
	exp := p - 2
	for exp > 0 {
		if exp&1 == 1 {
			result = (result * base) % p
		}
		base = (base * base) % p
		exp >>= 1
	}
	return result, true
}

func qToModp(q bigrat.Q, p int64) int64 {
	num := q.Numer().BigInt().Int64() % p
	den := q.Denom().BigInt().Int64() % p
	if num < 0 {
		num += p
	}
	inv, ok := modInverse(den, p)
	if !ok {
		return 0
	}
	return ((num * inv) % p)
}

// rowEchelonModp reduces m (rows of length cols, values already mod p) in
// place and returns the pivot column for each row, or -1 if none.
func rowEchelonModp(rows [][]int64, cols int, p int64) []int {
	n := len(rows)
	pivots := make([]int, 0, n)
	row := 0
	for col := 0; col < cols && row < n; col++ {
		sel := -1
		for r := row; r < n; r++ {
			if rows[r][col]%p != 0 {
				sel = r
				break
			}
		}
		if sel == -1 {
			continue
		}
		rows[row], rows[sel] = rows[sel], rows[row]
		inv, ok := modInverse(rows[row][col], p)
		if !ok {
			continue
		}
		for j := col; j < cols; j++ {
			rows[row][j] = (rows[row][j] * inv) % p
		}
		for r := 0; r < n; r++ {
			if r == row {
				continue
			}
			factor := rows[r][col] % p
			if factor == 0 {
				continue
			}
			for j := col; j < cols; j++ {
				diff := (rows[r][j] - factor*rows[row][j]) % p
				if diff < 0 {
					diff += p
				}
				rows[r][j] = diff
			}
		}
		pivots = append(pivots, col)
		row++
	}
	for len(pivots) < n {
		pivots = append(pivots, -1)
	}
	return pivots
}

// RankModp returns rank(a) computed mod p, used as a cheap pre-filter
// before an exact-Q elimination confirms a candidate relation.
func RankModp(a [][]bigrat.Q, p int64) int {
	if len(a) == 0 {
		return 0
	}
	cols := len(a[0])
	rows := make([][]int64, len(a))
	for i, row := range a {
		r := make([]int64, cols)
		for j, c := range row {
			r[j] = qToModp(c, p)
		}
		rows[i] = r
	}
	pivots := rowEchelonModp(rows, cols, p)
	n := 0
	for _, pv := range pivots {
		if pv >= 0 {
			n++
		}
	}
	return n
}

package qseries

import (
	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/fps"
	"qkangaroo/internal/qprod"
	"qkangaroo/internal/symtab"
)

// PartitionCount returns p(n), the number of partitions of n, via Euler's
// pentagonal number recurrence p(n) = sum_{k!=0} (-1)^{k+1} p(n - k(3k-1)/2).
func PartitionCount(n int) bigrat.Z {
	if n < 0 {
		return bigrat.ZZero
	}
	p := make([]bigrat.Z, n+1)
	p[0] = bigrat.ZOne
	for m := 1; m <= n; m++ {
		sum := bigrat.ZZero
		for k := 1; ; k++ {
			g1 := k * (3*k - 1) / 2
			g2 := k * (3*k + 1) / 2
			if g1 > m && g2 > m {
				break
			}
			sign := bigrat.ZOne
			if k%2 == 0 {
				sign = sign.Neg()
			}
			if g1 <= m {
				sum = sum.Add(sign.Mul(p[m-g1]))
			}
			if g2 <= m {
				sum = sum.Add(sign.Mul(p[m-g2]))
			}
		}
		p[m] = sum
	}
	return p[n]
}

// PartitionGF computes 1/(q;q)_inf, the partition generating function,
// truncated at N.
func PartitionGF(variable symtab.ID, N int) (fps.FPS, error) {
	euler, err := Euler(variable, N)
	if err != nil {
		return fps.FPS{}, err
	}
	return fps.Invert(euler)
}

// Euler computes (q;q)_inf = prod_{k>=1} (1-q^k), truncated at N.
func Euler(variable symtab.ID, N int) (fps.FPS, error) {
	return qprod.NewEulerGenerator(variable, N).Value(N)
}

// DistinctPartsGF computes (-q;q)_inf, the generating function for
// partitions into distinct parts.
func DistinctPartsGF(variable symtab.ID, N int) (fps.FPS, error) {
	g := qprod.NewQPochInfGenerator(bigrat.QOne.Neg(), 1, 1, variable, N)
	return g.Value(N)
}

// OddPartsGF computes prod_{k>=0} 1/(1-q^{2k+1}), partitions into odd parts.
func OddPartsGF(variable symtab.ID, N int) (fps.FPS, error) {
	g := qprod.New(variable, 0, N, func(k int, v symtab.ID, baseTrunc int) (fps.FPS, error) {
		e := 2*k + 1
		if e >= baseTrunc {
			return fps.Constant(bigrat.QOne, v, baseTrunc), nil
		}
		return fps.FromCoeffs(map[int]bigrat.Q{0: bigrat.QOne, e: bigrat.QOne.Neg()}, v, baseTrunc), nil
	})
	prod, err := g.Value(N)
	if err != nil {
		return fps.FPS{}, err
	}
	return fps.Invert(prod)
}

// BoundedPartsGF computes 1/(q;q)_m, partitions into parts <= m.
func BoundedPartsGF(m int, variable symtab.ID, N int) (fps.FPS, error) {
	poly, err := Aqprod(bigrat.QOne, variable, m, N)
	if err != nil {
		return fps.FPS{}, err
	}
	return fps.Invert(fps.CapOrder(poly, N))
}

// Numbpart returns p(n), read off partition_gf at order n+1.
func Numbpart(n int, variable symtab.ID) (bigrat.Z, error) {
	if n < 0 {
		return bigrat.ZZero, nil
	}
	gf, err := PartitionGF(variable, n+1)
	if err != nil {
		return bigrat.Z{}, err
	}
	c, err := gf.Coeff(n)
	if err != nil {
		return bigrat.Z{}, err
	}
	return c.Numer(), nil
}

// NumbpartBounded returns the number of partitions of n into parts <= m,
// read off bounded_parts_gf(m) at order n+1.
func NumbpartBounded(n, m int, variable symtab.ID) (bigrat.Z, error) {
	if n < 0 {
		return bigrat.ZZero, nil
	}
	gf, err := BoundedPartsGF(m, variable, n+1)
	if err != nil {
		return bigrat.Z{}, err
	}
	c, err := gf.Coeff(n)
	if err != nil {
		return bigrat.Z{}, err
	}
	return c.Numer(), nil
}

// RankGF computes the generating function for Dyson's rank statistic,
// sum_{n>=0} sum_m N(m,n) z^m q^n = sum_{n>=0} q^{n^2} / ((zq;q)_n (q/z;q)_n),
// specialised here to z a rational constant (this univariate core has no
// bivariate series -- see spec §3's note on orthogonal bivariate rules).
func RankGF(z bigrat.Q, variable symtab.ID, N int) (fps.FPS, error) {
	out := fps.Zero(variable, N)
	for n := 0; n*n < N; n++ {
		num, err := fps.Monomial(bigrat.QOne, n*n, variable, N)
		if err != nil {
			return fps.FPS{}, err
		}
		den1, err := Aqprod(z, variable, n, N)
		if err != nil {
			return fps.FPS{}, err
		}
		var invZ bigrat.Q
		if !z.IsZero() {
			invZ, err = z.Recip()
			if err != nil {
				return fps.FPS{}, err
			}
		}
		den2, err := Aqprod(invZ, variable, n, N)
		if err != nil {
			return fps.FPS{}, err
		}
		den, err := fps.Mul(fps.CapOrder(den1, N), fps.CapOrder(den2, N))
		if err != nil {
			return fps.FPS{}, err
		}
		term, err := fps.Div(num, den, N)
		if err != nil {
			return fps.FPS{}, err
		}
		out, err = fps.Add(out, term)
		if err != nil {
			return fps.FPS{}, err
		}
	}
	return out, nil
}

// CrankGF computes the Andrews-Garvan crank generating function
// (q;q)_inf / ((zq;q)_inf (q/z;q)_inf), specialised to constant z.
func CrankGF(z bigrat.Q, variable symtab.ID, N int) (fps.FPS, error) {
	num, err := Euler(variable, N)
	if err != nil {
		return fps.FPS{}, err
	}
	d1 := qprod.NewQPochInfGenerator(z, 1, 1, variable, N)
	den1, err := d1.Value(N)
	if err != nil {
		return fps.FPS{}, err
	}
	var invZ bigrat.Q
	if !z.IsZero() {
		invZ, err = z.Recip()
		if err != nil {
			return fps.FPS{}, err
		}
	}
	d2 := qprod.NewQPochInfGenerator(invZ, 1, 1, variable, N)
	den2, err := d2.Value(N)
	if err != nil {
		return fps.FPS{}, err
	}
	den, err := fps.Mul(den1, den2)
	if err != nil {
		return fps.FPS{}, err
	}
	return fps.Div(num, den, N)
}

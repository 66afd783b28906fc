package analysis

import (
	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/fps"
)

// Mprodmake recovers {b_n : 1<=n<=N} assuming f = prod_{n>=1}(1+q^n)^{b_n}
// (spec §4.6's "mixed-sign expansion"). The log-derivative identity
// differs from Prodmake's by an alternating sign: q(1+q^n)'/(1+q^n) =
// n*sum_{k>=1} (-1)^{k-1} q^{nk}, so c_m = sum_{d|m} d*b_d*(-1)^{m/d-1},
// solved by the same triangular divisor recurrence.
func Mprodmake(f fps.FPS, N int) (ProdResult, error) {
	capped := fps.CapOrder(f, N)
	work := fps.Truncate(capped, N+1)
	qfprime := logDerivTimesQ(work)
	logDeriv, err := fps.Div(qfprime, work, N+1)
	if err != nil {
		return ProdResult{}, err
	}
	b := map[int]bigrat.Q{}
	for n := 1; n <= N; n++ {
		cn, err := logDeriv.Coeff(n)
		if err != nil {
			return ProdResult{}, err
		}
		acc := cn
		for d := 1; d < n; d++ {
			if n%d != 0 {
				continue
			}
			bd, ok := b[d]
			if !ok {
				continue
			}
			k := n / d
			sign := bigrat.QOne
			if k%2 == 0 {
				sign = sign.Neg()
			}
			acc = acc.Sub(bigrat.QFromInt64(int64(d)).Mul(bd).Mul(sign))
		}
		bn, err := acc.Div(bigrat.QFromInt64(int64(n)))
		if err != nil {
			return ProdResult{}, err
		}
		if !bn.IsZero() {
			b[n] = bn
		}
	}
	return ProdResult{Exponents: b, TermsUsed: N}, nil
}

package analysis

import (
	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/fps"
)

// ProdResult is the output of Prodmake: the recovered exponents a_n in
// f = prod_{n>=1} (1-q^n)^{a_n}, together with the highest exponent used.
type ProdResult struct {
	Exponents map[int]bigrat.Q
	TermsUsed int
}

// logDerivTimesQ computes q*f'(q), the termwise operator (q d/dq) applied
// to f: coefficient n*f_n at q^n. This is a purely formal transform, not
// a division, so it needs no constant-term precondition.
func logDerivTimesQ(f fps.FPS) fps.FPS {
	out := fps.Zero(f.Variable(), f.TruncationOrder())
	for _, t := range f.Terms() {
		if t.Exp == 0 {
			continue
		}
		scaled := t.Coeff.Mul(bigrat.QFromInt64(int64(t.Exp)))
		added, _ := fps.Add(out, must(fps.Monomial(scaled, t.Exp, f.Variable(), f.TruncationOrder())))
		out = added
	}
	return out
}

func must(f fps.FPS, err error) fps.FPS {
	if err != nil {
		return fps.FPS{}
	}
	return f
}

// Prodmake recovers {a_n : 1<=n<=N} assuming f = prod_{n>=1}(1-q^n)^{a_n}
// (Andrews' algorithm, spec §4.6): take c_n = [q^n](q f'/f) = -sum_{d|n}
// d*a_d, then solve the triangular system for a_n one exponent at a time.
func Prodmake(f fps.FPS, N int) (ProdResult, error) {
	capped := fps.CapOrder(f, N)
	work := fps.Truncate(capped, N+1)
	qfprime := logDerivTimesQ(work)
	logDeriv, err := fps.Div(qfprime, work, N+1)
	if err != nil {
		return ProdResult{}, err
	}
	a := map[int]bigrat.Q{}
	for n := 1; n <= N; n++ {
		cn, err := logDeriv.Coeff(n)
		if err != nil {
			return ProdResult{}, err
		}
		acc := cn.Neg()
		for d := 1; d < n; d++ {
			if n%d != 0 {
				continue
			}
			ad, ok := a[d]
			if !ok {
				continue
			}
			acc = acc.Sub(bigrat.QFromInt64(int64(d)).Mul(ad))
		}
		an, err := acc.Div(bigrat.QFromInt64(int64(n)))
		if err != nil {
			return ProdResult{}, err
		}
		if !an.IsZero() {
			a[n] = an
		}
	}
	return ProdResult{Exponents: a, TermsUsed: N}, nil
}

package analysis

import (
	"sort"

	"qkangaroo/internal/fps"
	"qkangaroo/internal/qseries"
	"qkangaroo/internal/symtab"
)

// JacFactor names one exponent in a Jacprodmake decomposition: the
// two-parameter Jacobi theta product JAC(a,b) raised to Exponent.
type JacFactor struct {
	A, B     int
	Exponent int
}

// JacProduct is the result of Jacprodmake: f = prod of JAC(a,b)^{e}.
type JacProduct struct {
	Factors []JacFactor
}

// divides reports whether b divides p, treating p<=0 as "no restriction".
func divides(b, p int) bool {
	if p <= 0 {
		return true
	}
	return p%b == 0
}

// Jacprodmake expresses f as a product of Jacobi theta factors JAC(a,b)
// (spec §4.6), searching periods b up to N (restricted to divisors of P
// when P > 0) and, for each period, residues 0 <= a < b, by the same
// repeated-exact-division strategy Qfactor uses against (1-q^d): try
// dividing the running residual by JAC(a,b) as many times as it divides
// exactly, record the exponent, and move to the next candidate.
func Jacprodmake(f fps.FPS, reg *symtab.Registry, N, P int) (JacProduct, error) {
	variable := f.Variable()
	residual := fps.CapOrder(f, N)
	var out []JacFactor
	periods := make([]int, 0, N)
	for b := 1; b <= N; b++ {
		if divides(b, P) {
			periods = append(periods, b)
		}
	}
	sort.Ints(periods)
	for _, b := range periods {
		for a := 0; a < b; a++ {
			factor, err := qseries.Jac(a, b, variable, N)
			if err != nil {
				continue
			}
			exp := 0
			for {
				q, ok, err := tryExactQuotient(residual, factor, N)
				if err != nil {
					return JacProduct{}, err
				}
				if !ok {
					break
				}
				residual = q
				exp++
				if exp > N {
					break
				}
			}
			if exp != 0 {
				out = append(out, JacFactor{A: a, B: b, Exponent: exp})
			}
		}
	}
	return JacProduct{Factors: out}, nil
}

// tryExactQuotient divides num by den as formal power series and reports
// whether the result, remultiplied by den, exactly reproduces num up to
// order N -- the FPS analogue of an exact polynomial division check,
// since fps has no remainder operation of its own.
func tryExactQuotient(num, den fps.FPS, N int) (fps.FPS, bool, error) {
	c0, err := den.Coeff(0)
	if err != nil {
		return fps.FPS{}, false, nil
	}
	if c0.IsZero() {
		return fps.FPS{}, false, nil
	}
	quot, err := fps.Div(num, den, N)
	if err != nil {
		return fps.FPS{}, false, nil
	}
	back, err := fps.Mul(quot, den)
	if err != nil {
		return fps.FPS{}, false, nil
	}
	diff, err := fps.Sub(fps.Truncate(num, N), fps.Truncate(back, N))
	if err != nil {
		return fps.FPS{}, false, nil
	}
	if !diff.IsZero() {
		return fps.FPS{}, false, nil
	}
	return quot, true, nil
}

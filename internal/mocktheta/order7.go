package mocktheta

import (
	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/fps"
	"qkangaroo/internal/symtab"
)

// F70 is Ramanujan's order-7 F0(q) = sum_{n>=0} q^{n^2} / (q^{n+1};q)_n.
func F70(variable symtab.ID, N int) (fps.FPS, error) {
	return sumUntilExhausted(variable, N, func(n int) int { return n * n },
		func(n int) (fps.FPS, error) {
			num, err := monomial(n*n, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			den, err := pochFinite(bigrat.QOne, n+1, 1, n, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			return fps.Div(num, den, N)
		})
}

// F71 is Ramanujan's order-7 F1(q) = sum_{n>=0} q^{n(n+1)} / (q^{n+1};q)_n.
func F71(variable symtab.ID, N int) (fps.FPS, error) {
	return sumUntilExhausted(variable, N, func(n int) int { return n * (n + 1) },
		func(n int) (fps.FPS, error) {
			num, err := monomial(n*(n+1), variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			den, err := pochFinite(bigrat.QOne, n+1, 1, n, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			return fps.Div(num, den, N)
		})
}

// F72 is Ramanujan's order-7 F2(q) = sum_{n>=0} q^{n(n+1)} / (q^{n+1};q)_{n+1}.
func F72(variable symtab.ID, N int) (fps.FPS, error) {
	return sumUntilExhausted(variable, N, func(n int) int { return n * (n + 1) },
		func(n int) (fps.FPS, error) {
			num, err := monomial(n*(n+1), variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			den, err := pochFinite(bigrat.QOne, n+1, 1, n+1, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			return fps.Div(num, den, N)
		})
}

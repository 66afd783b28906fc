package mocktheta

import (
	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/fps"
	"qkangaroo/internal/symtab"
)

// F50 is Ramanujan's order-5 f0(q) = sum_{n>=0} q^{n^2} / (-q;q)_n.
func F50(variable symtab.ID, N int) (fps.FPS, error) {
	return sumUntilExhausted(variable, N, func(n int) int { return n * n },
		func(n int) (fps.FPS, error) {
			num, err := monomial(n*n, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			den, err := pochFinite(bigrat.QOne.Neg(), 1, 1, n, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			return fps.Div(num, den, N)
		})
}

// F51 is Ramanujan's order-5 f1(q) = sum_{n>=0} q^{n(n+1)} / (-q;q)_n.
func F51(variable symtab.ID, N int) (fps.FPS, error) {
	return sumUntilExhausted(variable, N, func(n int) int { return n * (n + 1) },
		func(n int) (fps.FPS, error) {
			num, err := monomial(n*(n+1), variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			den, err := pochFinite(bigrat.QOne.Neg(), 1, 1, n, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			return fps.Div(num, den, N)
		})
}

// BigF50 is Ramanujan's order-5 F0(q) = sum_{n>=0} q^{2n^2} / (q;q^2)_n.
func BigF50(variable symtab.ID, N int) (fps.FPS, error) {
	return sumUntilExhausted(variable, N, func(n int) int { return 2 * n * n },
		func(n int) (fps.FPS, error) {
			num, err := monomial(2*n*n, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			den, err := pochFinite(bigrat.QOne, 1, 2, n, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			return fps.Div(num, den, N)
		})
}

// BigF51 is Ramanujan's order-5 F1(q) = sum_{n>=0} q^{2n(n+1)} / (q;q^2)_{n+1}.
func BigF51(variable symtab.ID, N int) (fps.FPS, error) {
	return sumUntilExhausted(variable, N, func(n int) int { return 2 * n * (n + 1) },
		func(n int) (fps.FPS, error) {
			num, err := monomial(2*n*(n+1), variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			den, err := pochFinite(bigrat.QOne, 1, 2, n+1, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			return fps.Div(num, den, N)
		})
}

// Phi50 is Ramanujan's order-5 phi0(q) = sum_{n>=0} q^{n^2} (-q;q^2)_n.
func Phi50(variable symtab.ID, N int) (fps.FPS, error) {
	return sumUntilExhausted(variable, N, func(n int) int { return n * n },
		func(n int) (fps.FPS, error) {
			num, err := monomial(n*n, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			mult, err := pochFinite(bigrat.QOne.Neg(), 1, 2, n, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			return fps.Mul(num, fps.CapOrder(mult, N))
		})
}

// Phi51 is Ramanujan's order-5 phi1(q) = sum_{n>=0} q^{(n+1)^2} (-q;q^2)_n.
func Phi51(variable symtab.ID, N int) (fps.FPS, error) {
	return sumUntilExhausted(variable, N, func(n int) int { return (n + 1) * (n + 1) },
		func(n int) (fps.FPS, error) {
			num, err := monomial((n+1)*(n+1), variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			mult, err := pochFinite(bigrat.QOne.Neg(), 1, 2, n, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			return fps.Mul(num, fps.CapOrder(mult, N))
		})
}

// Psi50 is Ramanujan's order-5 psi0(q) = sum_{n>=0} q^{n(n+1)} / (q;q)_{2n+1}.
func Psi50(variable symtab.ID, N int) (fps.FPS, error) {
	return sumUntilExhausted(variable, N, func(n int) int { return n * (n + 1) },
		func(n int) (fps.FPS, error) {
			num, err := monomial(n*(n+1), variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			den, err := pochFinite(bigrat.QOne, 1, 1, 2*n+1, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			return fps.Div(num, den, N)
		})
}

// Psi51 is Ramanujan's order-5 psi1(q) = sum_{n>=0} q^{n(n+1)} / (q;q)_{2n}.
func Psi51(variable symtab.ID, N int) (fps.FPS, error) {
	return sumUntilExhausted(variable, N, func(n int) int { return n * (n + 1) },
		func(n int) (fps.FPS, error) {
			num, err := monomial(n*(n+1), variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			den, err := pochFinite(bigrat.QOne, 1, 1, 2*n, variable, N)
			if err != nil {
				return fps.FPS{}, err
			}
			return fps.Div(num, den, N)
		})
}

// Package analysis implements the series reverse-engineering toolkit of
// spec §4.6: sift, qdegree/lqdegree, qfactor, prodmake, etamake/qetamake,
// jacprodmake and mprodmake. Everything here reads an internal/fps.FPS
// (or an internal/qseries construction) and recovers the combinatorial
// structure that produced it.
package analysis

import (
	"errors"
	"fmt"

	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/fps"
)

// ErrOutOfRange is returned when a residue class or index is out of bounds.
var ErrOutOfRange = errors.New("analysis: argument out of range")

// Sift extracts the arithmetic-progression subsequence g[i] = f[m*i+k]
// for 0 <= k < m, truncated at N (spec §4.6). Fails with ErrOutOfRange
// if m <= 0 or k is not in [0, m).
func Sift(f fps.FPS, m, k, N int) (fps.FPS, error) {
	if m <= 0 {
		return fps.FPS{}, fmt.Errorf("analysis: sift modulus must be positive, got %d: %w", m, ErrOutOfRange)
	}
	if k < 0 || k >= m {
		return fps.FPS{}, fmt.Errorf("analysis: sift residue %d not in [0,%d): %w", k, m, ErrOutOfRange)
	}
	limit := N
	if f.TruncationOrder() < limit {
		limit = f.TruncationOrder()
	}
	coeffs := map[int]bigrat.Q{}
	for i := 0; m*i+k < limit; i++ {
		c, err := f.Coeff(m*i + k)
		if err != nil {
			return fps.FPS{}, err
		}
		if !c.IsZero() {
			coeffs[i] = c
		}
	}
	return fps.FromCoeffs(coeffs, f.Variable(), N), nil
}

package analysis

import (
	"errors"

	"qkangaroo/internal/fps"
)

// ErrZeroSeries is returned by QDegree/LQDegree on the zero series, which
// has no well-defined highest or lowest nonzero exponent.
var ErrZeroSeries = errors.New("analysis: degree undefined for the zero series")

// QDegree returns the largest exponent with a nonzero coefficient.
func QDegree(f fps.FPS) (int, error) {
	d, ok := fps.QDegree(f)
	if !ok {
		return 0, ErrZeroSeries
	}
	return d, nil
}

// LQDegree returns the smallest exponent with a nonzero coefficient.
func LQDegree(f fps.FPS) (int, error) {
	d, ok := fps.LQDegree(f)
	if !ok {
		return 0, ErrZeroSeries
	}
	return d, nil
}

package eval

import (
	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/fps"
	"qkangaroo/internal/value"
)

// promoteSeries lifts a,b so both are Series if either is (spec §9:
// "Series + Integer promotes integer to constant FPS using the
// series' symbol and truncation order").
func promoteSeries(a, b value.Value) (value.Value, value.Value, bool) {
	if a.Kind == value.KindSeries {
		bs, ok := b.AsSeries(a.Series)
		if !ok {
			return value.Value{}, value.Value{}, false
		}
		return a, value.Series(bs), true
	}
	if b.Kind == value.KindSeries {
		as, ok := a.AsSeries(b.Series)
		if !ok {
			return value.Value{}, value.Value{}, false
		}
		return value.Series(as), b, true
	}
	return a, b, true
}

// Add implements `+` with the Integer->Rational->Series promotion chain.
func Add(a, b value.Value) (value.Value, error) {
	a, b, ok := promoteSeries(a, b)
	if !ok {
		return value.Value{}, argType("+", 2, "numeric", b.Kind.String())
	}
	if a.Kind == value.KindSeries {
		s, err := fps.Add(a.Series, b.Series)
		if err != nil {
			return value.Value{}, internalError(err.Error())
		}
		return value.Series(s), nil
	}
	qa, aok := a.AsRational()
	qb, bok := b.AsRational()
	if !aok || !bok {
		return value.Value{}, argType("+", 1, "numeric", a.Kind.String())
	}
	return reduceQ(qa.Add(qb)), nil
}

// Sub implements `-`.
func Sub(a, b value.Value) (value.Value, error) {
	a, b, ok := promoteSeries(a, b)
	if !ok {
		return value.Value{}, argType("-", 2, "numeric", b.Kind.String())
	}
	if a.Kind == value.KindSeries {
		s, err := fps.Sub(a.Series, b.Series)
		if err != nil {
			return value.Value{}, internalError(err.Error())
		}
		return value.Series(s), nil
	}
	qa, aok := a.AsRational()
	qb, bok := b.AsRational()
	if !aok || !bok {
		return value.Value{}, argType("-", 1, "numeric", a.Kind.String())
	}
	return reduceQ(qa.Sub(qb)), nil
}

// Mul implements `*`.
func Mul(a, b value.Value) (value.Value, error) {
	a, b, ok := promoteSeries(a, b)
	if !ok {
		return value.Value{}, argType("*", 2, "numeric", b.Kind.String())
	}
	if a.Kind == value.KindSeries {
		s, err := fps.Mul(a.Series, b.Series)
		if err != nil {
			return value.Value{}, internalError(err.Error())
		}
		return value.Series(s), nil
	}
	qa, aok := a.AsRational()
	qb, bok := b.AsRational()
	if !aok || !bok {
		return value.Value{}, argType("*", 1, "numeric", a.Kind.String())
	}
	return reduceQ(qa.Mul(qb)), nil
}

// Div implements `/`. Integer-by-integer division produces a Rational,
// never truncating integer division (spec §9).
func Div(a, b value.Value) (value.Value, error) {
	a, b, ok := promoteSeries(a, b)
	if !ok {
		return value.Value{}, argType("/", 2, "numeric", b.Kind.String())
	}
	if a.Kind == value.KindSeries {
		s, err := fps.Div(a.Series, b.Series, a.Series.TruncationOrder())
		if err != nil {
			if err == fps.ErrZeroConstantTerm {
				return value.Value{}, &Error{Kind: KindZeroConstantTerm, Msg: "invert: zero constant term"}
			}
			return value.Value{}, internalError(err.Error())
		}
		return value.Series(s), nil
	}
	qa, aok := a.AsRational()
	qb, bok := b.AsRational()
	if !aok || !bok {
		return value.Value{}, argType("/", 1, "numeric", a.Kind.String())
	}
	q, err := qa.Div(qb)
	if err != nil {
		return value.Value{}, divByZero("division by zero")
	}
	return reduceQ(q), nil
}

// Pow implements `^` for integer exponents on Rational/Series bases,
// raising NegativeExponent for a zero base with a negative exponent.
func Pow(a value.Value, n int) (value.Value, error) {
	switch a.Kind {
	case value.KindInteger, value.KindRational:
		q, _ := a.AsRational()
		if q.IsZero() && n < 0 {
			return value.Value{}, &Error{Kind: KindNegativeExponent, Msg: "0 raised to a negative power"}
		}
		r, err := q.PowSigned(n)
		if err != nil {
			return value.Value{}, divByZero(err.Error())
		}
		return reduceQ(r), nil
	case value.KindSeries:
		if n < 0 {
			return value.Value{}, &Error{Kind: KindNegativeExponent, Msg: "series exponent must be nonnegative"}
		}
		out := fps.Constant(bigrat.QOne, a.Series.Variable(), a.Series.TruncationOrder())
		for i := 0; i < n; i++ {
			var err error
			out, err = fps.Mul(out, a.Series)
			if err != nil {
				return value.Value{}, internalError(err.Error())
			}
		}
		return value.Series(out), nil
	default:
		return value.Value{}, argType("^", 1, "numeric", a.Kind.String())
	}
}

// reduceQ demotes an integer-valued rational back to Integer, matching
// the display/typing rule that `p/1` is an Integer.
func reduceQ(q bigrat.Q) value.Value {
	if q.IsInteger() {
		return value.Integer(q.Numer())
	}
	return value.Rational(q)
}

// Package bigrat provides the exact arbitrary-precision integer (Z) and
// rational (Q) types that every other kernel package builds on. Both are
// value types backed by math/big and are freely copied, mirroring the way
// the teacher wraps *big.Int coefficients in ntru.IntPoly.
package bigrat

import (
	"errors"
	"math/big"
)

// ErrDivByZero is returned whenever a Q or Z operation would divide by zero.
var ErrDivByZero = errors.New("bigrat: division by zero")

// Z is an arbitrary-precision signed integer.
type Z struct {
	v *big.Int
}

// ZFromInt64 builds a Z from a native int64.
func ZFromInt64(n int64) Z {
	return Z{v: big.NewInt(n)}
}

// ZFromBigInt builds a Z that copies b; b is never aliased afterwards.
func ZFromBigInt(b *big.Int) Z {
	return Z{v: new(big.Int).Set(b)}
}

func (a Z) big() *big.Int {
	if a.v == nil {
		return big.NewInt(0)
	}
	return a.v
}

// BigInt returns a fresh copy of the underlying *big.Int.
func (a Z) BigInt() *big.Int { return new(big.Int).Set(a.big()) }

func (a Z) Add(b Z) Z { return Z{v: new(big.Int).Add(a.big(), b.big())} }
func (a Z) Sub(b Z) Z { return Z{v: new(big.Int).Sub(a.big(), b.big())} }
func (a Z) Mul(b Z) Z { return Z{v: new(big.Int).Mul(a.big(), b.big())} }
func (a Z) Neg() Z    { return Z{v: new(big.Int).Neg(a.big())} }
func (a Z) Abs() Z    { return Z{v: new(big.Int).Abs(a.big())} }

// DivMod performs Euclidean-style division with a nonnegative remainder.
func (a Z) DivMod(b Z) (q, r Z, err error) {
	if b.Sign() == 0 {
		return Z{}, Z{}, ErrDivByZero
	}
	qq, rr := new(big.Int), new(big.Int)
	qq.DivMod(a.big(), b.big(), rr)
	return Z{v: qq}, Z{v: rr}, nil
}

func (a Z) Cmp(b Z) int  { return a.big().Cmp(b.big()) }
func (a Z) Sign() int    { return a.big().Sign() }
func (a Z) IsZero() bool { return a.Sign() == 0 }
func (a Z) String() string {
	return a.big().String()
}

// Gcd returns the nonnegative greatest common divisor of a and b.
func (a Z) Gcd(b Z) Z {
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(a.big()), new(big.Int).Abs(b.big()))
	return Z{v: g}
}

// PowUint raises a to the n-th power, n >= 0.
func (a Z) PowUint(n uint64) Z {
	return Z{v: new(big.Int).Exp(a.big(), new(big.Int).SetUint64(n), nil)}
}

func (a Z) Int64() int64 { return a.big().Int64() }

func (a Z) IsInt64() bool { return a.big().IsInt64() }

var (
	ZZero = ZFromInt64(0)
	ZOne  = ZFromInt64(1)
)

// Q is an exact rational number, always stored in lowest terms with a
// strictly positive denominator; zero has denominator 1.
type Q struct {
	r *big.Rat
}

func (a Q) big() *big.Rat {
	if a.r == nil {
		return new(big.Rat)
	}
	return a.r
}

// QFromInt64 builds the rational n/1.
func QFromInt64(n int64) Q { return Q{r: new(big.Rat).SetInt64(n)} }

// QFromFrac builds num/den, normalising sign and reducing; den must be nonzero.
func QFromFrac(num, den int64) (Q, error) {
	if den == 0 {
		return Q{}, ErrDivByZero
	}
	r := new(big.Rat)
	r.SetFrac(big.NewInt(num), big.NewInt(den))
	return Q{r: r}, nil
}

// QFromBigRat copies r into a Q.
func QFromBigRat(r *big.Rat) Q { return Q{r: new(big.Rat).Set(r)} }

// QFromZ promotes an integer.
func QFromZ(z Z) Q { return Q{r: new(big.Rat).SetInt(z.big())} }

var (
	QZero = QFromInt64(0)
	QOne  = QFromInt64(1)
)

func (a Q) Add(b Q) Q { return Q{r: new(big.Rat).Add(a.big(), b.big())} }
func (a Q) Sub(b Q) Q { return Q{r: new(big.Rat).Sub(a.big(), b.big())} }
func (a Q) Mul(b Q) Q { return Q{r: new(big.Rat).Mul(a.big(), b.big())} }
func (a Q) Neg() Q    { return Q{r: new(big.Rat).Neg(a.big())} }

// Div computes a/b; returns ErrDivByZero when b is zero.
func (a Q) Div(b Q) (Q, error) {
	if b.IsZero() {
		return Q{}, ErrDivByZero
	}
	return Q{r: new(big.Rat).Quo(a.big(), b.big())}, nil
}

// Recip returns 1/a.
func (a Q) Recip() (Q, error) {
	if a.IsZero() {
		return Q{}, ErrDivByZero
	}
	return Q{r: new(big.Rat).Inv(a.big())}, nil
}

func (a Q) Cmp(b Q) int  { return a.big().Cmp(b.big()) }
func (a Q) Sign() int    { return a.big().Sign() }
func (a Q) IsZero() bool { return a.Sign() == 0 }
func (a Q) IsOne() bool  { return a.Cmp(QOne) == 0 }

// Numer and Denom return the reduced numerator/denominator as Z.
func (a Q) Numer() Z { return ZFromBigInt(a.big().Num()) }
func (a Q) Denom() Z { return ZFromBigInt(a.big().Denom()) }

// IsInteger reports whether the denominator is 1.
func (a Q) IsInteger() bool { return a.big().IsInt() }

// PowSigned raises a to an arbitrary (possibly negative) integer power n.
func (a Q) PowSigned(n int) (Q, error) {
	if n == 0 {
		return QOne, nil
	}
	if n < 0 {
		inv, err := a.Recip()
		if err != nil {
			return Q{}, err
		}
		return inv.PowSigned(-n)
	}
	num := new(big.Int).Exp(a.big().Num(), big.NewInt(int64(n)), nil)
	den := new(big.Int).Exp(a.big().Denom(), big.NewInt(int64(n)), nil)
	r := new(big.Rat).SetFrac(num, den)
	return Q{r: r}, nil
}

func (a Q) String() string {
	if a.big().IsInt() {
		return a.big().Num().String()
	}
	return a.big().RatString()
}

// Float64 is used only at display/plotting boundaries (internal/viz); the
// kernel never relies on it for arithmetic.
func (a Q) Float64() float64 {
	f, _ := a.big().Float64()
	return f
}

// BigRat exposes a defensive copy of the underlying *big.Rat.
func (a Q) BigRat() *big.Rat { return new(big.Rat).Set(a.big()) }

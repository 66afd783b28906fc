package hypergeom

import (
	"errors"

	"qkangaroo/internal/fps"
	"qkangaroo/internal/symtab"
)

// ErrHeineDomain is returned when a Heine transformation's monomial
// arithmetic can't be carried out exactly (a division that would need a
// negative exponent or a zero denominator).
var ErrHeineDomain = errors.New("hypergeom: heine transformation out of domain")

// Transformed is one 2φ1 rewritten by a Heine transformation: Prefactor
// times 2φ1(Upper[0],Upper[1];Lower;q,Z) equals the original series.
type Transformed struct {
	Prefactor fps.FPS
	Upper     [2]Mono
	Lower     Mono
	Z         Mono
}

// Heine1 is Heine's first transformation (Gasper & Rahman III.1):
//
//	2φ1(a,b;c;q,z) = (b;q)_∞(az;q)_∞/((c;q)_∞(z;q)_∞) * 2φ1(c/b,z;az;q,b)
func Heine1(a, b, c, z Mono, variable symtab.ID, N int) (Transformed, error) {
	cOverB, ok := monoDiv(c, b)
	if !ok {
		return Transformed{}, ErrHeineDomain
	}
	az := monoMul(a, z)
	pb, err := qInf(b, variable, N)
	if err != nil {
		return Transformed{}, err
	}
	paz, err := qInf(az, variable, N)
	if err != nil {
		return Transformed{}, err
	}
	pc, err := qInf(c, variable, N)
	if err != nil {
		return Transformed{}, err
	}
	pz, err := qInf(z, variable, N)
	if err != nil {
		return Transformed{}, err
	}
	num, err := fps.Mul(pb, paz)
	if err != nil {
		return Transformed{}, err
	}
	den, err := fps.Mul(pc, pz)
	if err != nil {
		return Transformed{}, err
	}
	pre, err := fps.Div(num, den, N)
	if err != nil {
		return Transformed{}, err
	}
	return Transformed{Prefactor: pre, Upper: [2]Mono{cOverB, z}, Lower: az, Z: b}, nil
}

// Heine2 is Heine's second transformation (Gasper & Rahman III.2):
//
//	2φ1(a,b;c;q,z) = (c/b;q)_∞(bz;q)_∞/((c;q)_∞(z;q)_∞) * 2φ1(abz/c,b;bz;q,c/b)
func Heine2(a, b, c, z Mono, variable symtab.ID, N int) (Transformed, error) {
	cOverB, ok := monoDiv(c, b)
	if !ok {
		return Transformed{}, ErrHeineDomain
	}
	bz := monoMul(b, z)
	abz := monoMul(a, bz)
	abzOverC, ok := monoDiv(abz, c)
	if !ok {
		return Transformed{}, ErrHeineDomain
	}
	p1, err := qInf(cOverB, variable, N)
	if err != nil {
		return Transformed{}, err
	}
	p2, err := qInf(bz, variable, N)
	if err != nil {
		return Transformed{}, err
	}
	p3, err := qInf(c, variable, N)
	if err != nil {
		return Transformed{}, err
	}
	p4, err := qInf(z, variable, N)
	if err != nil {
		return Transformed{}, err
	}
	num, err := fps.Mul(p1, p2)
	if err != nil {
		return Transformed{}, err
	}
	den, err := fps.Mul(p3, p4)
	if err != nil {
		return Transformed{}, err
	}
	pre, err := fps.Div(num, den, N)
	if err != nil {
		return Transformed{}, err
	}
	return Transformed{Prefactor: pre, Upper: [2]Mono{abzOverC, b}, Lower: bz, Z: cOverB}, nil
}

// Heine3 is Heine's third (Euler) transformation (Gasper & Rahman III.3):
//
//	2φ1(a,b;c;q,z) = (abz/c;q)_∞/(z;q)_∞ * 2φ1(c/a,c/b;c;q,abz/c)
func Heine3(a, b, c, z Mono, variable symtab.ID, N int) (Transformed, error) {
	cOverA, ok := monoDiv(c, a)
	if !ok {
		return Transformed{}, ErrHeineDomain
	}
	cOverB, ok := monoDiv(c, b)
	if !ok {
		return Transformed{}, ErrHeineDomain
	}
	abz := monoMul(a, monoMul(b, z))
	abzOverC, ok := monoDiv(abz, c)
	if !ok {
		return Transformed{}, ErrHeineDomain
	}
	num, err := qInf(abzOverC, variable, N)
	if err != nil {
		return Transformed{}, err
	}
	den, err := qInf(z, variable, N)
	if err != nil {
		return Transformed{}, err
	}
	pre, err := fps.Div(num, den, N)
	if err != nil {
		return Transformed{}, err
	}
	return Transformed{Prefactor: pre, Upper: [2]Mono{cOverA, cOverB}, Lower: c, Z: abzOverC}, nil
}

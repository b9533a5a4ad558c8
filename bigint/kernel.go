// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package bigint

import (
	"github.com/pkg/errors"
)

// Abs returns |a|.
func Abs(a *Integer) *Integer {
	return new(Integer).Abs(a)
}

// BitLength returns the number of bits needed to represent |a|.
// BitLength(0) == 0, BitLength(1) == 1, BitLength(2) == 2.
func BitLength(a *Integer) int {
	return new(Integer).Abs(a).BitLen()
}

// Min returns the lesser of a and b.
func Min(a, b *Integer) *Integer {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Max returns the greater of a and b.
func Max(a, b *Integer) *Integer {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// Gcd returns the non-negative greatest common divisor of a and b. If one
// input is zero, the other's absolute value is returned; Gcd(0, 0) == 0.
func Gcd(a, b *Integer) *Integer {
	return new(Integer).GCD(nil, nil, Abs(a), Abs(b))
}

// Lcm returns the non-negative least common multiple of a and b.
// Lcm(0, 0) == 0.
func Lcm(a, b *Integer) *Integer {
	if a.Sign() == 0 && b.Sign() == 0 {
		return FromInt64(0)
	}
	g := Gcd(a, b)
	product := new(Integer).Mul(Abs(a), Abs(b))
	return product.Div(product, g)
}

// EGcd runs the iterative extended Euclidean algorithm on a and b, both of
// which must be strictly positive. It returns g, x, y such that
// g = gcd(a, b) and a*x + b*y = g.
func EGcd(a, b *Integer) (g, x, y *Integer, err error) {
	if a.Sign() <= 0 || b.Sign() <= 0 {
		return nil, nil, nil, errors.Wrap(ErrInvalidArgument, "EGcd requires both inputs to be strictly positive")
	}

	oldR, r := new(Integer).Set(a), new(Integer).Set(b)
	oldS, s := FromInt64(1), FromInt64(0)
	oldT, t := FromInt64(0), FromInt64(1)

	for r.Sign() != 0 {
		quot := new(Integer).Div(oldR, r)

		newR := new(Integer).Sub(oldR, new(Integer).Mul(quot, r))
		oldR, r = r, newR

		newS := new(Integer).Sub(oldS, new(Integer).Mul(quot, s))
		oldS, s = s, newS

		newT := new(Integer).Sub(oldT, new(Integer).Mul(quot, t))
		oldT, t = t, newT
	}

	return oldR, oldS, oldT, nil
}

// ToZn reduces a to the canonical non-negative residue in [0, n). n must be
// strictly positive.
func ToZn(a, n *Integer) (*Integer, error) {
	if n.Sign() <= 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "ToZn requires a positive modulus")
	}
	res := new(Integer).Mod(a, n)
	if res.Sign() < 0 {
		res.Add(res, n)
	}
	return res, nil
}

// ModInv returns the unique x in [0, n) with a*x ≡ 1 (mod n). It fails with
// ErrNoInverse when gcd(a, n) != 1 or n <= 0.
func ModInv(a, n *Integer) (*Integer, error) {
	if n.Sign() <= 0 {
		return nil, errors.Wrap(ErrNoInverse, "ModInv requires a positive modulus")
	}
	x := new(Integer).ModInverse(a, n)
	if x == nil {
		return nil, errors.Wrapf(ErrNoInverse, "gcd(%s, %s) != 1", a.String(), n.String())
	}
	return x, nil
}

// ModAdd folds values with modular addition, always returning the
// canonical residue in [0, n).
func ModAdd(values []*Integer, n *Integer) (*Integer, error) {
	if n.Sign() <= 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "ModAdd requires a positive modulus")
	}
	acc := FromInt64(0)
	for _, v := range values {
		acc.Add(acc, v)
	}
	return ToZn(acc, n)
}

// ModMultiply folds values with modular multiplication, always returning
// the canonical residue in [0, n).
func ModMultiply(values []*Integer, n *Integer) (*Integer, error) {
	if n.Sign() <= 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "ModMultiply requires a positive modulus")
	}
	acc := FromInt64(1)
	for _, v := range values {
		acc.Mul(acc, v)
	}
	return ToZn(acc, n)
}

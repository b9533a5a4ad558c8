// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package bigint is the arbitrary-precision modular-arithmetic kernel:
// absolute value, bit length, extended GCD, GCD, LCM, canonical residues,
// modular inverse, modular exponentiation (with an optional CRT-accelerated
// path) and Chinese Remainder reconstruction. It has no knowledge of
// entropy sources or primality testing — those live in rng and prime,
// layered on top of this package.
package bigint

import (
	"math"
	"math/big"

	"github.com/pkg/errors"
)

// Integer is the arbitrary-precision signed integer used throughout this
// module. It is a transparent alias for math/big's own bignum type: every
// *Integer interoperates directly with the rest of the math/big ecosystem,
// so callers never have to convert back and forth at a package boundary.
type Integer = big.Int

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
	two  = big.NewInt(2)
)

// FromInt64 coerces a machine-word integer to an Integer.
func FromInt64(v int64) *Integer {
	return big.NewInt(v)
}

// FromUint64 coerces an unsigned machine-word integer to an Integer.
func FromUint64(v uint64) *Integer {
	return new(Integer).SetUint64(v)
}

// FromBytes interprets buf as a big-endian unsigned integer.
func FromBytes(buf []byte) *Integer {
	return new(Integer).SetBytes(buf)
}

// FromString parses s in the given base (0 means "infer from prefix", same
// as math/big.Int.SetString). It fails with ErrInvalidArgument when s isn't
// a valid integer literal in that base.
func FromString(s string, base int) (*Integer, error) {
	n, ok := new(Integer).SetString(s, base)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidArgument, "%q is not a valid base-%d integer", s, base)
	}
	return n, nil
}

// FromFloat64 coerces f to an Integer, failing with ErrInvalidArgument when
// f has a non-zero fractional part or isn't finite. This is the "reject
// non-integer floats" half of the dynamic-integer-coercion redesign note.
func FromFloat64(f float64) (*Integer, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errors.Wrapf(ErrInvalidArgument, "%v is not finite", f)
	}
	if f != math.Trunc(f) {
		return nil, errors.Wrapf(ErrInvalidArgument, "%v is not an integer value", f)
	}
	n, _ := big.NewFloat(f).Int(nil)
	return n, nil
}

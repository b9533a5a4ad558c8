// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package bigint

import (
	"github.com/pkg/errors"
)

// Factor is one (p, k) entry of a CRT Factor List: p is claimed prime (not
// verified by this package) and k >= 1 is its exponent in a factorization
// n = ∏ pᵢ^kᵢ.
type Factor struct {
	P *Integer
	K int
}

// Factors is an ordered CRT Factor List, as consumed by the CRT-accelerated
// path of ModPow and by Phi.
type Factors []Factor

// Normalize merges duplicate primes in fs, summing their exponents, and
// returns a new Factors slice in the input's first-seen order. ModPow and
// Phi call this internally; it's exported so callers building their own
// CRT-based protocols can reuse the same merge rule spec.md §3 requires.
func (fs Factors) Normalize() Factors {
	order := make([]*Integer, 0, len(fs))
	merged := make(map[string]*Factor, len(fs))
	for _, f := range fs {
		key := f.P.String()
		if existing, ok := merged[key]; ok {
			existing.K += f.K
			continue
		}
		copyOfP := new(Integer).Set(f.P)
		merged[key] = &Factor{P: copyOfP, K: f.K}
		order = append(order, copyOfP)
	}
	out := make(Factors, 0, len(order))
	for _, p := range order {
		out = append(out, *merged[p.String()])
	}
	return out
}

// Phi computes Euler's totient of a factorization: ∏ pᵢ^(kᵢ-1) * (pᵢ - 1).
func Phi(factors Factors) *Integer {
	factors = factors.Normalize()
	result := FromInt64(1)
	for _, f := range factors {
		pMinusOne := new(Integer).Sub(f.P, one)
		if f.K > 1 {
			pPow := new(Integer).Exp(f.P, FromInt64(int64(f.K-1)), nil)
			pMinusOne.Mul(pPow, pMinusOne)
		}
		result.Mul(result, pMinusOne)
	}
	return result
}

// CRT reconstructs the unique x in [0, N) satisfying x ≡ remainders[i] (mod
// moduli[i]) for every i, via Chinese Remainder Theorem. remainders and
// moduli must have equal, non-zero length. N defaults to the product of
// moduli when omitted; moduli are assumed pairwise coprime and are not
// validated as such.
func CRT(remainders, moduli []*Integer, n ...*Integer) (*Integer, error) {
	if len(remainders) == 0 || len(remainders) != len(moduli) {
		return nil, errors.Wrap(ErrInvalidArgument, "CRT requires equal-length, non-empty remainders and moduli")
	}

	var modulus *Integer
	if len(n) > 0 && n[0] != nil {
		modulus = n[0]
	} else {
		modulus = FromInt64(1)
		for _, m := range moduli {
			modulus = new(Integer).Mul(modulus, m)
		}
	}

	result := FromInt64(0)
	for i, mi := range moduli {
		ni := new(Integer).Div(modulus, mi)
		niInv, err := ModInv(ni, mi)
		if err != nil {
			return nil, errors.Wrapf(err, "CRT: modulus %d is not invertible mod its own factor", i)
		}
		term := new(Integer).Mul(remainders[i], ni)
		term.Mul(term, niInv)
		result.Add(result, term)
	}

	return ToZn(result, modulus)
}

// ModPow computes b^e mod n with math/big's modular Exp. n must
// be strictly positive (ModPow(_, _, 0) fails with ErrInvalidArgument,
// resolving the open question in spec.md §9). n == 1 always yields 0. A
// negative e computes ModInv(ModPow(b, |e|, n), n), inheriting ErrNoInverse.
// b is first normalized into [0, n) via ToZn. When factors is non-empty,
// the exponentiation is accelerated via CRT: the result is bit-identical to
// the non-CRT path as long as factors is a genuine factorization of n.
func ModPow(b, e, n *Integer, factors ...Factor) (*Integer, error) {
	if n.Sign() <= 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "ModPow requires a positive modulus")
	}
	if n.Cmp(one) == 0 {
		return FromInt64(0), nil
	}

	if e.Sign() < 0 {
		posResult, err := ModPow(b, new(Integer).Neg(e), n, factors...)
		if err != nil {
			return nil, err
		}
		return ModInv(posResult, n)
	}

	base, err := ToZn(b, n)
	if err != nil {
		return nil, err
	}

	if len(factors) > 0 {
		return crtModPow(base, e, n, Factors(factors).Normalize())
	}

	return new(Integer).Exp(base, e, n), nil
}

// crtModPow implements the CRT-accelerated path described in spec.md §4.A:
// compute mᵢ = pᵢ^kᵢ, φ(mᵢ), reduce e mod φ(mᵢ), exponentiate modulo each
// mᵢ, and reconstruct with CRT. The exponent is only reduced when base is
// coprime to pᵢ; otherwise Euler's theorem does not apply and e is used as is.
func crtModPow(base, e, n *Integer, factors Factors) (*Integer, error) {
	remainders := make([]*Integer, len(factors))
	moduli := make([]*Integer, len(factors))

	for i, f := range factors {
		mi := new(Integer).Exp(f.P, FromInt64(int64(f.K)), nil)
		ei := e
		if new(Integer).Mod(base, f.P).Sign() != 0 {
			phiMi := Phi(Factors{f})
			ei = new(Integer).Mod(e, phiMi)
		}
		remainders[i] = new(Integer).Exp(base, ei, mi)
		moduli[i] = mi
	}

	return CRT(remainders, moduli, n)
}

// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package prime is the probable-prime pipeline: trial division by the
// first 250 odd primes, iterated Miller-Rabin, and a prime search that can
// fan out across worker goroutines. It is layered on bigint (for ModPow)
// and rng (for candidate generation), mirroring the dataflow of spec.md
// §2: the search asks rng for candidates, this package's tester evaluates
// them, and the coordinator multiplexes the tester across workers.
package prime

import (
	"github.com/pkg/errors"

	"github.com/mtwilliams-crypto/bigint-crypto-utils/bigint"
	"github.com/mtwilliams-crypto/bigint-crypto-utils/internal/xlog"
	"github.com/mtwilliams-crypto/bigint-crypto-utils/rng"
)

// DefaultIterations is the default Miller-Rabin round count, yielding an
// error probability <= 4^-16 per spec.md §4.C.
const DefaultIterations = 16

var (
	bigZero = bigint.FromInt64(0)
	bigOne  = bigint.FromInt64(1)
	bigTwo  = bigint.FromInt64(2)
)

// IsProbablyPrime reports whether w is probably prime: 0 and 1 are treated
// uniformly as non-prime (the open question in spec.md §9, resolved
// explicitly), trial division against the embedded 250-entry smallPrimes
// table runs first, and Miller-Rabin runs for the requested number of
// iterations (DefaultIterations when iterations < 0 is not what's wanted —
// a negative iterations count instead fails with bigint.ErrInvalidArgument,
// per spec.md §4.C).
func IsProbablyPrime(w *bigint.Integer, iterations int) (bool, error) {
	if w.Sign() < 0 {
		return false, errors.Wrap(bigint.ErrInvalidArgument, "IsProbablyPrime requires w >= 0")
	}
	if iterations < 0 {
		return false, errors.Wrap(bigint.ErrInvalidArgument, "IsProbablyPrime requires iterations >= 0")
	}

	if w.Cmp(bigTwo) == 0 {
		return true, nil
	}
	if w.Bit(0) == 0 || w.Cmp(bigOne) == 0 {
		return false, nil
	}

	if divides, equalsPrime := trialDivide(w); divides {
		return equalsPrime, nil
	}

	return millerRabin(w, iterations)
}

// trialDivide checks w against the embedded small-prime table. divides
// reports whether some table entry divides w; when divides is true,
// equalsPrime additionally reports whether w equals that prime exactly
// (in which case w is prime, not composite).
func trialDivide(w *bigint.Integer) (divides, equalsPrime bool) {
	rem := new(bigint.Integer)
	p := new(bigint.Integer)
	for _, sp := range smallPrimes {
		p.SetUint64(uint64(sp))
		if w.Cmp(p) == 0 {
			return true, true
		}
		rem.Mod(w, p)
		if rem.Sign() == 0 {
			return true, false
		}
	}
	return false, false
}

// millerRabin runs the Fermat/Miller-Rabin witness loop described in
// spec.md §4.C steps 3-5: decompose w-1 = 2^r * d with d odd, then for each
// of `iterations` rounds draw a witness a in [2, w-1] and test it.
func millerRabin(w *bigint.Integer, iterations int) (bool, error) {
	wMinusOne := new(bigint.Integer).Sub(w, bigOne)
	d := new(bigint.Integer).Set(wMinusOne)
	r := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		r++
	}

	for i := 0; i < iterations; i++ {
		// spec.md §4.C: witness a is drawn via RandBetween(w-1, 2).
		a, err := rng.RandBetween(wMinusOne, bigTwo)
		if err != nil {
			return false, err
		}

		x, err := bigint.ModPow(a, d, w)
		if err != nil {
			return false, err
		}

		if x.Cmp(bigOne) == 0 || x.Cmp(wMinusOne) == 0 {
			continue
		}

		witnessed := false
		for j := 0; j < r-1; j++ {
			x.Mul(x, x)
			x.Mod(x, w)
			if x.Cmp(wMinusOne) == 0 {
				witnessed = true
				break
			}
			if x.Cmp(bigOne) == 0 {
				xlog.Logger.Debugf("miller-rabin: witness %s exposed compositeness of candidate after %d squarings", a.String(), j+1)
				return false, nil
			}
		}
		if !witnessed {
			return false, nil
		}
	}

	return true, nil
}

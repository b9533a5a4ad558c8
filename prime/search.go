// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package prime

import (
	"context"
	"runtime"

	"github.com/pkg/errors"

	"github.com/mtwilliams-crypto/bigint-crypto-utils/bigint"
	"github.com/mtwilliams-crypto/bigint-crypto-utils/internal/xlog"
	"github.com/mtwilliams-crypto/bigint-crypto-utils/rng"
)

// PrimeSync repeatedly draws a bitLen-wide candidate (top bit forced, so
// the result's bit length is always exactly bitLen) and tests it with
// IsProbablyPrime, single-threaded, returning the first candidate that
// passes. Fails with bigint.ErrInvalidArgument when bitLen < 1.
func PrimeSync(bitLen, iterations int) (*bigint.Integer, error) {
	if bitLen < 1 {
		return nil, errors.Wrap(bigint.ErrInvalidArgument, "PrimeSync requires bitLen >= 1")
	}

	stats := &Stats{}
	defer publishStats(stats)

	for {
		candidate, err := nextCandidate(bitLen)
		if err != nil {
			return nil, err
		}
		stats.Drawn++

		ok, err := IsProbablyPrime(candidate, iterations)
		if err != nil {
			return nil, err
		}
		if ok {
			return candidate, nil
		}
		stats.Rejected++
	}
}

// Prime is the worker-parallel form of PrimeSync: it fans candidates out
// across a pool of goroutines (spec.md §4.E) and returns the first one any
// worker finds to be a probable prime, cancelling its peers. When the pool
// would hold a single worker (two or fewer CPUs) there's nothing to
// parallelize, so it falls back to the PrimeSync loop directly (spec.md §4.E "single-threaded fallback"), still
// honoring ctx cancellation between draws.
func Prime(ctx context.Context, bitLen, iterations int) (*bigint.Integer, error) {
	if bitLen < 1 {
		return nil, errors.Wrap(bigint.ErrInvalidArgument, "Prime requires bitLen >= 1")
	}

	if workerPoolSize() <= 1 {
		return primeSyncCtx(ctx, bitLen, iterations)
	}

	return runCoordinator(ctx, bitLen, iterations)
}

// workerPoolSize is P = max(1, hardware_concurrency - 1), per spec.md §4.E.
func workerPoolSize() int {
	if n := runtime.NumCPU() - 1; n > 0 {
		return n
	}
	return 1
}

// primeSyncCtx is PrimeSync with cooperative cancellation between draws,
// used by the single-threaded fallback path.
func primeSyncCtx(ctx context.Context, bitLen, iterations int) (*bigint.Integer, error) {
	stats := &Stats{}
	defer publishStats(stats)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		candidate, err := nextCandidate(bitLen)
		if err != nil {
			return nil, err
		}
		stats.Drawn++

		ok, err := IsProbablyPrime(candidate, iterations)
		if err != nil {
			return nil, err
		}
		if ok {
			return candidate, nil
		}
		stats.Rejected++
		xlog.Logger.Debugf("prime: rejected %d-bit candidate, drawing another", bitLen)
	}
}

// nextCandidate draws a bitLen-wide candidate with the top bit forced.
func nextCandidate(bitLen int) (*bigint.Integer, error) {
	buf, err := rng.RandBitsSync(bitLen, true)
	if err != nil {
		return nil, err
	}
	return bigint.FromBytes(buf), nil
}

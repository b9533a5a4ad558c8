// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package bigint

import "github.com/pkg/errors"

// Sentinel error kinds. Every failure in this module is terminal for the
// call (spec.md §7) — there is no retry-on-error inside the kernel, so
// these are returned, never recovered from internally.
var (
	// ErrInvalidArgument reports a violated precondition: a non-positive
	// modulus, an empty bit length, mismatched CRT array lengths, and so on.
	ErrInvalidArgument = errors.New("bigint: invalid argument")

	// ErrNoInverse reports that ModInv (or a ModPow with a negative
	// exponent that falls through to ModInv) was asked to invert a value
	// that isn't coprime with the modulus.
	ErrNoInverse = errors.New("bigint: no modular inverse exists")

	// ErrEntropyFailure reports that the OS CSPRNG was unavailable or
	// returned an error while being read.
	ErrEntropyFailure = errors.New("bigint: entropy source failure")
)

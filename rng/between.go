// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package rng

import (
	"crypto/rand"
	"io"

	"github.com/pkg/errors"

	"github.com/mtwilliams-crypto/bigint-crypto-utils/bigint"
)

// RandBetween uniformly samples an Integer in [min, max] via rejection
// sampling, as spec.md §4.B describes: draw a random bit string of length
// k = BitLength(max-min) until it interprets as <= (max-min), then add min.
// Fails with bigint.ErrInvalidArgument when max <= min.
func RandBetween(max, min *bigint.Integer) (*bigint.Integer, error) {
	return RandBetweenFrom(rand.Reader, max, min)
}

// RandBetweenFrom is RandBetween with an explicit entropy source.
func RandBetweenFrom(source io.Reader, max, min *bigint.Integer) (*bigint.Integer, error) {
	if max.Cmp(min) <= 0 {
		return nil, errors.Wrap(bigint.ErrInvalidArgument, "RandBetween requires max > min")
	}

	span := new(bigint.Integer).Sub(max, min)
	k := bigint.BitLength(span)

	for {
		buf, err := RandBitsSyncFrom(source, k, false)
		if err != nil {
			return nil, err
		}
		candidate := bigint.FromBytes(buf)
		if candidate.Cmp(span) <= 0 {
			return new(bigint.Integer).Add(candidate, min), nil
		}
	}
}

// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package prime_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtwilliams-crypto/bigint-crypto-utils/bigint"
	"github.com/mtwilliams-crypto/bigint-crypto-utils/prime"
)

func TestPrimeSyncProducesExactBitLength(t *testing.T) {
	for _, bitLen := range []int{32, 64, 96} {
		got, err := prime.PrimeSync(bitLen, prime.DefaultIterations)
		require.NoError(t, err, "bitLen=%d", bitLen)
		assert.Equal(t, bitLen, bigint.BitLength(got), "bitLen=%d", bitLen)

		ok, err := prime.IsProbablyPrime(got, prime.DefaultIterations)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestPrimeSyncRejectsNonPositiveBitLen(t *testing.T) {
	_, err := prime.PrimeSync(0, prime.DefaultIterations)
	assert.ErrorIs(t, err, bigint.ErrInvalidArgument)

	_, err = prime.PrimeSync(-8, prime.DefaultIterations)
	assert.ErrorIs(t, err, bigint.ErrInvalidArgument)
}

func TestPrimeProducesExactBitLength(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	got, err := prime.Prime(ctx, 48, prime.DefaultIterations)
	require.NoError(t, err)
	assert.Equal(t, 48, bigint.BitLength(got))

	ok, err := prime.IsProbablyPrime(got, prime.DefaultIterations)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPrimeRejectsNonPositiveBitLen(t *testing.T) {
	_, err := prime.Prime(context.Background(), 0, prime.DefaultIterations)
	assert.ErrorIs(t, err, bigint.ErrInvalidArgument)
}

func TestPrimeHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := prime.Prime(ctx, 512, prime.DefaultIterations)
	assert.Error(t, err)
}

func TestLastSearchStatsUpdatesAfterCall(t *testing.T) {
	_, err := prime.PrimeSync(24, prime.DefaultIterations)
	require.NoError(t, err)

	stats := prime.LastSearchStats()
	assert.True(t, stats.Drawn >= 1, "expected at least one candidate to have been drawn")
	assert.True(t, stats.Rejected >= 0)
}

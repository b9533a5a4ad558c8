// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package prime

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtwilliams-crypto/bigint-crypto-utils/bigint"
)

func TestRunCoordinatorReturnsAProbablePrime(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	got, err := runCoordinator(ctx, 40, DefaultIterations)
	require.NoError(t, err)
	assert.Equal(t, 40, bigint.BitLength(got))

	ok, err := IsProbablyPrime(got, DefaultIterations)
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestRunWorkerRedispatchesOnComposite exercises a single worker directly:
// fed a known-composite candidate followed by a known-prime one, it must
// report false then true rather than stopping after the first candidate.
func TestRunWorkerRedispatchesOnComposite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	taskCh := make(chan primalityTask, 2)
	resultCh := make(chan primalityResult, 2)
	errCh := make(chan error, 2)
	stats := &Stats{}

	var wg sync.WaitGroup
	wg.Add(1)
	go runWorker(ctx, taskCh, resultCh, errCh, &wg, stats)

	taskCh <- primalityTask{candidate: bigint.FromInt64(15), iterations: DefaultIterations, id: 0}
	first := <-resultCh
	assert.False(t, first.isPrime)
	assert.Equal(t, 0, first.id)

	taskCh <- primalityTask{candidate: bigint.FromInt64(97), iterations: DefaultIterations, id: 0}
	second := <-resultCh
	assert.True(t, second.isPrime)
	assert.Equal(t, int64(97), second.candidate.Int64())

	cancel()
}

func TestRunWorkerReportsFailureOnErrCh(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	taskCh := make(chan primalityTask, 1)
	resultCh := make(chan primalityResult, 1)
	errCh := make(chan error, 1)
	stats := &Stats{}

	var wg sync.WaitGroup
	wg.Add(1)
	go runWorker(ctx, taskCh, resultCh, errCh, &wg, stats)

	// iterations < 0 makes IsProbablyPrime fail inside the worker, which
	// must surface on errCh rather than silently dropping the candidate.
	taskCh <- primalityTask{candidate: bigint.FromInt64(97), iterations: -1, id: 0}

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, bigint.ErrInvalidArgument)
	case <-resultCh:
		t.Fatal("expected an error, got a result")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for worker error")
	}
}

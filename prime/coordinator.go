// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// The worker-fan-out skeleton below — context-scoped goroutines, a shared
// result channel, cancel-on-first-success, torn down on every exit path —
// is a generalization of the teacher's own
// common/safe_prime.go:GetRandomSafePrimesConcurrent and runGenPrimeRoutine,
// adapted from searching for one particular shape of prime (2q+1) to
// testing arbitrary bitLen-wide candidates via the Miller-Rabin tester in
// this package.

package prime

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/mtwilliams-crypto/bigint-crypto-utils/bigint"
	"github.com/mtwilliams-crypto/bigint-crypto-utils/internal/xlog"
)

// ErrWorkerFailure reports that a primality worker errored unexpectedly
// (e.g. its entropy source failed); the enclosing Prime call fails as a
// whole (spec.md §4.E, §7).
var ErrWorkerFailure = errors.New("prime: worker failure")

// primalityTask is the Primality Task entity from spec.md §3: a candidate
// dispatched to one specific worker, nested inside a typed Go channel so
// it can never be mistaken for a message belonging to another coordinator
// instance (spec.md §4.E "nested envelope").
type primalityTask struct {
	candidate  *bigint.Integer
	iterations int
	id         int
}

// primalityResult is the Primality Result entity from spec.md §3: a
// worker's reply to exactly one primalityTask.
type primalityResult struct {
	candidate *bigint.Integer
	isPrime   bool
	id        int
}

// runCoordinator fans P = workerPoolSize() candidates out to that many
// worker goroutines and returns the first one accepted by IsProbablyPrime,
// cancelling every other worker. A worker that reports false is
// immediately handed a fresh candidate. A worker error aborts the whole
// call; if more than one worker errors before cancellation lands, their
// errors are aggregated with multierror rather than only the first one
// surfacing.
func runCoordinator(ctx context.Context, bitLen, iterations int) (*bigint.Integer, error) {
	poolSize := workerPoolSize()

	taskChs := make([]chan primalityTask, poolSize)
	resultCh := make(chan primalityResult, poolSize)
	errCh := make(chan error, poolSize)

	coordCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	stats := &Stats{}

	for id := 0; id < poolSize; id++ {
		taskChs[id] = make(chan primalityTask, 1)
		wg.Add(1)
		go runWorker(coordCtx, taskChs[id], resultCh, errCh, &wg, stats)

		candidate, err := nextCandidate(bitLen)
		if err != nil {
			cancel()
			wg.Wait()
			return nil, err
		}
		taskChs[id] <- primalityTask{candidate: candidate, iterations: iterations, id: id}
	}

	defer wg.Wait()

	for {
		select {
		case result := <-resultCh:
			if result.isPrime {
				cancel()
				xlog.Logger.Debugf("prime: worker %d found a probable prime, cancelling %d peers", result.id, poolSize-1)
				publishStats(&Stats{
					Drawn:    atomic.LoadInt64(&stats.Drawn),
					Rejected: atomic.LoadInt64(&stats.Rejected),
				})
				return result.candidate, nil
			}

			atomic.AddInt64(&stats.Rejected, 1)
			candidate, err := nextCandidate(bitLen)
			if err != nil {
				cancel()
				return nil, err
			}
			select {
			case taskChs[result.id] <- primalityTask{candidate: candidate, iterations: iterations, id: result.id}:
			case <-coordCtx.Done():
			}

		case err := <-errCh:
			cancel()
			failures := multierror.Append(new(multierror.Error), err)
		drain:
			for {
				select {
				case more := <-errCh:
					failures = multierror.Append(failures, more)
				default:
					break drain
				}
			}
			return nil, errors.Wrap(ErrWorkerFailure, failures.Error())

		case <-ctx.Done():
			cancel()
			return nil, ctx.Err()
		}
	}
}

// runWorker evaluates whatever candidate arrives on taskCh until the
// context is cancelled. It holds no state shared with its siblings besides
// the stats counter, which is only ever touched with atomic ops.
func runWorker(ctx context.Context, taskCh <-chan primalityTask, resultCh chan<- primalityResult, errCh chan<- error, wg *sync.WaitGroup, stats *Stats) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-taskCh:
			if !ok {
				return
			}
			atomic.AddInt64(&stats.Drawn, 1)

			isPrime, err := IsProbablyPrime(task.candidate, task.iterations)
			if err != nil {
				select {
				case errCh <- err:
				case <-ctx.Done():
				}
				return
			}

			select {
			case resultCh <- primalityResult{candidate: task.candidate, isPrime: isPrime, id: task.id}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package rng is the cryptographically secure random source: byte and bit
// buffers of a requested width (with an optional forced top bit) and
// rejection-sampled bounded integers, all drawn from the OS CSPRNG. It
// mirrors the role of the teacher's common/random.go, generalized from
// curve-order sampling to the width/MSB-forcing contract spec.md §4.B asks
// for.
package rng

import (
	"crypto/rand"
	"io"

	"github.com/pkg/errors"

	"github.com/mtwilliams-crypto/bigint-crypto-utils/bigint"
)

// MaxEntropyChunkBytes caps how much entropy is read from the source in a
// single io.ReadFull call. spec.md §4.B calls this out as part of the
// specification (a defensive cap inherited from browser-era APIs), not an
// implementation accident, so callers asking for more than this get their
// request served in multiple chunked reads.
const MaxEntropyChunkBytes = 65536

// RandBytesSync fills and returns byteLen bytes of entropy read from rand.Reader.
// If forceMsb is set, the top bit of byte 0 is forced to 1. Fails with
// bigint.ErrInvalidArgument when byteLen < 1, or with
// bigint.ErrEntropyFailure if the source errors.
func RandBytesSync(byteLen int, forceMsb bool) ([]byte, error) {
	return RandBytesSyncFrom(rand.Reader, byteLen, forceMsb)
}

// RandBytesSyncFrom is RandBytesSync with an explicit entropy source. The
// teacher's own random helpers all take an io.Reader as their first
// argument rather than hard-wiring crypto/rand.Reader (see
// common/safe_prime.go's runGenPrimeRoutine); this lets tests substitute a
// deterministic reader for fixed test vectors without weakening
// production callers, which always go through RandBytesSync.
func RandBytesSyncFrom(source io.Reader, byteLen int, forceMsb bool) ([]byte, error) {
	if byteLen < 1 {
		return nil, errors.Wrap(bigint.ErrInvalidArgument, "RandBytes requires byteLen >= 1")
	}

	buf := make([]byte, byteLen)
	for done := 0; done < byteLen; {
		chunk := byteLen - done
		if chunk > MaxEntropyChunkBytes {
			chunk = MaxEntropyChunkBytes
		}
		if _, err := io.ReadFull(source, buf[done:done+chunk]); err != nil {
			return nil, errors.Wrap(bigint.ErrEntropyFailure, err.Error())
		}
		done += chunk
	}

	if forceMsb {
		buf[0] |= 0x80
	}
	return buf, nil
}

// RandBytes is the asynchronous form of RandBytesSync: a thin goroutine
// wrapper (spec.md §9 "Deferred vs immediate") since there's nothing to
// parallelize in a single entropy read — unlike prime.Prime, which fans
// candidates out across workers.
func RandBytes(byteLen int, forceMsb bool) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		buf, err := RandBytesSync(byteLen, forceMsb)
		out <- Result{Bytes: buf, Err: err}
	}()
	return out
}

// Result is what the asynchronous RandBytes/RandBits entry points deliver.
type Result struct {
	Bytes []byte
	Err   error
}

// RandBitsSync allocates ⌈bitLen/8⌉ bytes, masks byte 0 down to its low
// bitLen%8 bits (when that remainder is non-zero), and, if forceMsb is set,
// forces the bit at position (bitLen-1)%8 within byte 0 so the resulting
// integer has exactly bitLen significant bits. Fails with
// bigint.ErrInvalidArgument when bitLen < 1.
func RandBitsSync(bitLen int, forceMsb bool) ([]byte, error) {
	return RandBitsSyncFrom(rand.Reader, bitLen, forceMsb)
}

// RandBitsSyncFrom is RandBitsSync with an explicit entropy source.
func RandBitsSyncFrom(source io.Reader, bitLen int, forceMsb bool) ([]byte, error) {
	if bitLen < 1 {
		return nil, errors.Wrap(bigint.ErrInvalidArgument, "RandBits requires bitLen >= 1")
	}

	byteLen := (bitLen + 7) / 8
	buf, err := RandBytesSyncFrom(source, byteLen, false)
	if err != nil {
		return nil, err
	}

	// remainder is how many significant bits live in the top byte; a zero
	// remainder means the top byte is fully significant (all 8 bits).
	remainder := uint(bitLen % 8)
	if remainder != 0 {
		buf[0] &= byte(1<<remainder) - 1
	}

	if forceMsb {
		// The open question in spec.md §9 resolves the same way the
		// teacher's safe-prime generator resolves it for its own top-bit
		// setting: when bitLen is an exact multiple of 8, the "top bit of
		// the requested width" is bit 7 of byte 0, i.e. 0x80.
		if remainder == 0 {
			buf[0] |= 0x80
		} else {
			buf[0] |= 1 << (remainder - 1)
		}
	}

	return buf, nil
}

// RandBits is the asynchronous form of RandBitsSync.
func RandBits(bitLen int, forceMsb bool) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		buf, err := RandBitsSync(bitLen, forceMsb)
		out <- Result{Bytes: buf, Err: err}
	}()
	return out
}

// MustRandBits is RandBitsSync for callers that can't usefully recover from
// entropy-source failure (e.g. one-off key material at process startup).
// It panics on error, the same convenience-wrapper convention the teacher
// offers with common/random.go's MustGetRandomInt.
func MustRandBits(bitLen int, forceMsb bool) []byte {
	buf, err := RandBitsSync(bitLen, forceMsb)
	if err != nil {
		panic(err)
	}
	return buf
}

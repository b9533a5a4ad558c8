// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package xlog carries the module's single logging convention: one named
// logger (used by the prime package), set up the same way the teacher
// repo wires github.com/ipfs/go-log into its common package.
package xlog

import (
	logging "github.com/ipfs/go-log"
)

// Logger is the module's one named logger. Call SetLevel to adjust
// verbosity; the default level is whatever go-log defaults to (Error).
var Logger = logging.Logger("bigint-crypto-utils")

// SetLevel adjusts the logger's verbosity, e.g. SetLevel("debug") while
// chasing down a flaky worker-coordinator test.
func SetLevel(level string) error {
	return logging.SetLogLevel("bigint-crypto-utils", level)
}

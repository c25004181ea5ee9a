// Copyright 2026 The AccelRand Authors. SPDX-License-Identifier: Apache-2.0

package rng

// bufWords is the number of 32-bit words produced per Philox block.
const bufWords = 4

// Stream is a lazy, restartable stream of uniform random bits for one stream
// index. It buffers one Philox block at a time and refills on demand, so a
// sampler that rejects candidates simply keeps drawing from the same Stream.
//
// A Stream is a small value object meant to live on the stack of a sampling
// kernel; it does not synchronize and must not be shared across goroutines.
type Stream struct {
	key   [2]uint32
	index uint64 // Stream index: high half of the Philox counter.
	block uint64 // Next block within the stream: low half of the counter.
	buf   [4]uint32
	used  int
}

// refill generates the next 128-bit block of the stream.
func (s *Stream) refill() {
	ctr := [4]uint32{
		uint32(s.block), uint32(s.block >> 32),
		uint32(s.index), uint32(s.index >> 32),
	}
	s.buf = philox4x32(ctr, s.key)
	s.block++
	s.used = 0
}

// Uint32 returns the next 32 random bits of the stream.
func (s *Stream) Uint32() uint32 {
	if s.used == bufWords {
		s.refill()
	}
	v := s.buf[s.used]
	s.used++
	return v
}

// Uint64 returns the next 64 random bits of the stream.
func (s *Stream) Uint64() uint64 {
	lo := s.Uint32()
	hi := s.Uint32()
	return uint64(lo) | uint64(hi)<<32
}

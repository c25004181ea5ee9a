// Copyright 2026 The AccelRand Authors. SPDX-License-Identifier: Apache-2.0

package rng

import (
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

// ErrExhaustedStream is returned by State.Reserve when a hard cap on the
// total counter advance was configured (see State.SetMaxAdvance) and the
// reservation would cross it.
var ErrExhaustedStream = errors.New("bit generator stream exhausted")

// StateSize is the size in bytes of the serialized State blob.
const StateSize = 24

// State is the seed/counter state of the bit generator: an opaque 192-bit
// value from which every substream is derived.
//
// State is a plain value: copying it forks the generator position. It is not
// safe for concurrent mutation; the owner (random.State) must serialize
// access. All reads of random bits go through Stream values, which are pure
// functions of (State, stream index) and therefore safe to use from many
// goroutines at once.
type State struct {
	key [2]uint32

	// counter is the next unassigned stream index. It only moves forward,
	// one unit per requested output element, via Reserve.
	counter uint64

	// maxAdvance, if non-zero, is a hard cap on counter.
	maxAdvance uint64
}

// NewState returns a State seeded deterministically from seed: the same seed
// always produces the same stream of bits.
func NewState(seed int64) State {
	src := rand.New(rand.NewSource(seed))
	k := src.Uint64()
	return State{key: [2]uint32{uint32(k), uint32(k >> 32)}}
}

// NewStateFromTime returns a State seeded from the nanosecond clock.
func NewStateFromTime() State {
	return NewState(time.Now().UTC().UnixNano())
}

// Counter returns the current position of the generator: the number of
// stream indices assigned so far.
func (s State) Counter() uint64 { return s.counter }

// SetMaxAdvance configures a hard cap on the total counter advance.
// Zero (the default) means unlimited.
func (s *State) SetMaxAdvance(maxAdvance uint64) { s.maxAdvance = maxAdvance }

// Reserve assigns the next n stream indices and returns the first one.
// The caller then draws bits with s.Stream(base+i) for i in [0, n).
//
// The advance is a function of n only -- never of how the caller batches the
// parallel work -- so a fixed seed and a fixed sequence of reservations
// always lands the counter on the same value.
//
// It fails with ErrExhaustedStream if a cap was configured and would be
// crossed; in that case the state is left unchanged.
func (s *State) Reserve(n int) (base uint64, err error) {
	if n < 0 {
		return 0, errors.Errorf("rng.State.Reserve(%d): negative count", n)
	}
	base = s.counter
	if s.maxAdvance != 0 && (uint64(n) > s.maxAdvance-base || base > s.maxAdvance) {
		return 0, errors.Wrapf(ErrExhaustedStream,
			"reserving %d streams at counter %d would cross the configured cap of %d",
			n, base, s.maxAdvance)
	}
	s.counter += uint64(n)
	return base, nil
}

// Stream returns the substream for the given stream index. It is a pure
// function of the state's key and the index: it does not consume entropy
// from the State (use Reserve to account for that) and distinct indices
// yield statistically independent streams.
func (s *State) Stream(index uint64) Stream {
	return Stream{key: s.key, index: index, used: bufWords}
}

// MarshalBinary serializes the state as an opaque fixed-width blob of
// StateSize bytes. It implements encoding.BinaryMarshaler.
func (s State) MarshalBinary() ([]byte, error) {
	data := make([]byte, StateSize)
	binary.LittleEndian.PutUint64(data[0:], uint64(s.key[0])|uint64(s.key[1])<<32)
	binary.LittleEndian.PutUint64(data[8:], s.counter)
	binary.LittleEndian.PutUint64(data[16:], s.maxAdvance)
	return data, nil
}

// UnmarshalBinary restores a state serialized by MarshalBinary.
// It implements encoding.BinaryUnmarshaler.
func (s *State) UnmarshalBinary(data []byte) error {
	if len(data) != StateSize {
		return errors.Errorf("rng.State.UnmarshalBinary: expected %d bytes, got %d", StateSize, len(data))
	}
	k := binary.LittleEndian.Uint64(data[0:])
	s.key = [2]uint32{uint32(k), uint32(k >> 32)}
	s.counter = binary.LittleEndian.Uint64(data[8:])
	s.maxAdvance = binary.LittleEndian.Uint64(data[16:])
	return nil
}

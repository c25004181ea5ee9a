// Copyright 2026 The AccelRand Authors. SPDX-License-Identifier: Apache-2.0

package random

import (
	"sync"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/accelrand/accelrand/internal/workerspool"
	"github.com/accelrand/accelrand/rng"
	"github.com/accelrand/accelrand/tensors"
	"github.com/accelrand/accelrand/types/shapes"
)

// State is a random sampling state: it owns the bit generator's seed/counter
// and exposes one method per distribution. Every sampling call validates its
// arguments, reserves the exact entropy it needs, launches the data-parallel
// fill and returns the fully populated array -- the call is synchronous, and
// this holds for all distributions.
//
// A State is safe for concurrent use: the seed/counter is the only shared
// mutable resource and is updated under an internal mutex, so concurrent
// calls get disjoint substream ranges. Distinct State instances are fully
// independent. For a zero-configuration entry point see Default.
type State struct {
	mu  sync.Mutex
	gen rng.State

	// id tags this instance in debug logs.
	id uuid.UUID

	pool *workerspool.Pool
}

// New returns a State seeded deterministically with seed.
func New(seed int64) *State {
	s := &State{gen: rng.NewState(seed), id: uuid.New(), pool: workerspool.Default()}
	klog.V(1).Infof("random: new State %s (seed=%d)", s.id, seed)
	return s
}

// NewFromTime returns a State seeded from the nanosecond clock.
func NewFromTime() *State {
	s := &State{gen: rng.NewStateFromTime(), id: uuid.New(), pool: workerspool.Default()}
	klog.V(1).Infof("random: new State %s (time-seeded)", s.id)
	return s
}

// Seed resets the state to the deterministic position for seed, restarting
// its counter.
func (s *State) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen = rng.NewState(seed)
}

// Rng returns a snapshot of the bit generator state, e.g. for persistence
// (see rng.State.MarshalBinary) or to inspect the counter in tests.
func (s *State) Rng() rng.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// SetRng replaces the bit generator state, e.g. with one restored from a
// serialized blob.
func (s *State) SetRng(gen rng.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen = gen
}

// WithPool makes the state's kernels run on the given worker pool instead of
// the process default. It returns s to allow chaining at construction.
func (s *State) WithPool(pool *workerspool.Pool) *State {
	s.pool = pool
	return s
}

// reserve atomically assigns n substreams, returning the first index and the
// generator snapshot the kernels will derive streams from.
func (s *State) reserve(n int) (base uint64, gen rng.State, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	base, err = s.gen.Reserve(n)
	return base, s.gen, err
}

// resolveDims turns the public `size` argument into concrete dimensions:
// nil means a scalar (rank-0) result.
func resolveDims(size []int) ([]int, error) {
	for _, dim := range size {
		if dim < 0 {
			return nil, invalidParamf("size", size, "non-negative dimensions")
		}
	}
	return size, nil
}

// floatDType resolves the dtype for the float distribution families:
// InvalidDType (the zero value) selects the default precision, Float64.
func floatDType(dtype dtypes.DType, family string) (dtypes.DType, error) {
	switch dtype {
	case dtypes.InvalidDType:
		return dtypes.Float64, nil
	case dtypes.Float32, dtypes.Float64:
		return dtype, nil
	}
	return dtypes.InvalidDType, unsupportedDTypef(dtype, family)
}

// intDType resolves the dtype for the integer distribution families:
// InvalidDType selects the platform-native default, Int64.
func intDType(dtype dtypes.DType, family string) (dtypes.DType, error) {
	switch dtype {
	case dtypes.InvalidDType:
		return dtypes.Int64, nil
	case dtypes.Int32, dtypes.Int64:
		return dtype, nil
	}
	return dtypes.InvalidDType, unsupportedDTypef(dtype, family)
}

// floatElemFn computes the sample for flat element i, drawing from the
// element's own substream. It runs concurrently for disjoint elements.
type floatElemFn func(st *rng.Stream, i int) (float64, error)

// intElemFn is the integer-family counterpart of floatElemFn.
type intElemFn func(st *rng.Stream, i int) (int64, error)

// sampleFloat reserves one substream per element and fills a new array of
// the given dims/dtype with elem. On a kernel error the partially written
// buffer is released, never returned.
func (s *State) sampleFloat(dims []int, dtype dtypes.DType, elem floatElemFn) (*tensors.Tensor, error) {
	shape := shapes.Make(dtype, dims...)
	base, gen, err := s.reserve(shape.Size())
	if err != nil {
		return nil, err
	}
	out := tensors.FromShape(shape)
	switch dtype {
	case dtypes.Float32:
		err = runElemKernel(s.pool, tensors.Data[float32](out), &gen, base, elem)
	default:
		err = runElemKernel(s.pool, tensors.Data[float64](out), &gen, base, elem)
	}
	if err != nil {
		out.Finalize()
		return nil, err
	}
	return out, nil
}

// sampleInt is sampleFloat for the integer families.
func (s *State) sampleInt(dims []int, dtype dtypes.DType, elem intElemFn) (*tensors.Tensor, error) {
	shape := shapes.Make(dtype, dims...)
	base, gen, err := s.reserve(shape.Size())
	if err != nil {
		return nil, err
	}
	out := tensors.FromShape(shape)
	switch dtype {
	case dtypes.Int32:
		err = runElemKernel(s.pool, tensors.Data[int32](out), &gen, base, elem)
	default:
		err = runElemKernel(s.pool, tensors.Data[int64](out), &gen, base, elem)
	}
	if err != nil {
		out.Finalize()
		return nil, err
	}
	return out, nil
}

// runElemKernel fans elem out over blocks of the flat output. The first
// per-element failure aborts the remaining blocks and is returned call-wide;
// individual rejection retries inside elem are never surfaced.
func runElemKernel[T tensors.Supported, E int64 | float64](
	pool *workerspool.Pool, flat []T, gen *rng.State, base uint64,
	elem func(st *rng.Stream, i int) (E, error)) error {
	var mu sync.Mutex
	var firstErr error
	pool.ForBlocks(len(flat), func(start, end int) {
		mu.Lock()
		aborted := firstErr != nil
		mu.Unlock()
		if aborted {
			return
		}
		for i := start; i < end; i++ {
			st := gen.Stream(base + uint64(i))
			v, err := elem(&st, i)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			flat[i] = T(v)
		}
	})
	return firstErr
}

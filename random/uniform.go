// Copyright 2026 The AccelRand Authors. SPDX-License-Identifier: Apache-2.0

package random

import (
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/accelrand/accelrand/internal/workerspool"
	"github.com/accelrand/accelrand/rng"
	"github.com/accelrand/accelrand/tensors"
	"github.com/accelrand/accelrand/types/shapes"
)

// Raw-bit to unit-interval conversion, using the full mantissa width of the
// target precision -- 53 bits for float64, 24 for float32 -- so the sampled
// grid is as fine as the dtype can represent.

// unitFloat64 returns a uniform float64 in [0, 1).
func unitFloat64(st *rng.Stream) float64 {
	return float64(st.Uint64()>>11) * 0x1.0p-53
}

// unitFloat32 returns a uniform float32 in [0, 1).
func unitFloat32(st *rng.Stream) float32 {
	return float32(st.Uint32()>>8) * 0x1.0p-24
}

// openUnit64 returns a uniform float64 strictly inside (0, 1), for
// transforms that feed the value to a logarithm. The half-offset keeps both
// endpoints out without a rejection loop.
func openUnit64(st *rng.Stream) float64 {
	return (float64(st.Uint64()>>12) + 0.5) * 0x1.0p-52
}

// Uniform samples from the half-open interval [low, high): each element is
// low + (high-low)*U with U uniform in [0, 1). Values equal to high can
// appear only through floating-point rounding at the upper boundary.
//
// low and high are scalar or broadcastable arrays; dtype must be Float32 or
// Float64 (InvalidDType selects Float64); size nil produces a scalar.
func (s *State) Uniform(low, high Param, size []int, dtype dtypes.DType) (*tensors.Tensor, error) {
	dims, err := resolveDims(size)
	if err != nil {
		return nil, err
	}
	dtype, err = floatDType(dtype, "uniform")
	if err != nil {
		return nil, err
	}
	lowV, err := low.resolve("low", dims)
	if err != nil {
		return nil, err
	}
	highV, err := high.resolve("high", dims)
	if err != nil {
		return nil, err
	}
	if err = lowV.validate("low", checkFinite); err != nil {
		return nil, err
	}
	if err = highV.validate("high", checkFinite); err != nil {
		return nil, err
	}

	shape := shapes.Make(dtype, dims...)
	base, gen, err := s.reserve(shape.Size())
	if err != nil {
		return nil, err
	}
	out := tensors.FromShape(shape)
	// Uniform bypasses the generic float64 element path: the interval
	// arithmetic runs in the target precision so the half-open contract
	// survives the final rounding.
	switch dtype {
	case dtypes.Float32:
		runUniformKernel(s.pool, tensors.Data[float32](out), &gen, base, lowV, highV, unitFloat32)
	default:
		runUniformKernel(s.pool, tensors.Data[float64](out), &gen, base, lowV, highV, unitFloat64)
	}
	return out, nil
}

func runUniformKernel[T float32 | float64](
	pool *workerspool.Pool, flat []T, gen *rng.State, base uint64,
	low, high paramView, unit func(*rng.Stream) T) {
	pool.ForBlocks(len(flat), func(start, end int) {
		for i := start; i < end; i++ {
			st := gen.Stream(base + uint64(i))
			lo, hi := T(low.at(i)), T(high.at(i))
			flat[i] = lo + (hi-lo)*unit(&st)
		}
	})
}

// Copyright 2026 The AccelRand Authors. SPDX-License-Identifier: Apache-2.0

package random

import (
	"math"
	"slices"

	"github.com/gomlx/gopjrt/dtypes"

	"github.com/accelrand/accelrand/internal/workerspool"
	"github.com/accelrand/accelrand/rng"
	"github.com/accelrand/accelrand/tensors"
)

// Dirichlet samples probability vectors from the Dirichlet distribution with
// concentration vector alpha (every alpha_i > 0): K independent
// gamma(alpha_i, 1) draws normalized by their sum, where K = len(alpha).
//
// The output shape is `size` with an extra innermost axis of dimension K, so
// each output vector lives contiguously. Vectors sum to 1 only up to
// floating-point rounding; the rounding error is deliberately not
// renormalized away, so callers must not rely on an exact unit sum at the
// bit level.
func (s *State) Dirichlet(alpha []float64, size []int, dtype dtypes.DType) (*tensors.Tensor, error) {
	dims, err := resolveDims(size)
	if err != nil {
		return nil, err
	}
	dtype, err = floatDType(dtype, "dirichlet")
	if err != nil {
		return nil, err
	}
	if len(alpha) == 0 {
		return nil, invalidParamf("alpha", alpha, "a non-empty vector")
	}
	for _, a := range alpha {
		if constraint := checkPositive(a); constraint != "" {
			return nil, invalidParamf("alpha", a, constraint)
		}
	}

	k := len(alpha)
	outDims := append(slices.Clone(dims), k)
	// The innermost axis is the alpha axis, so element i draws from
	// gamma(alpha[i mod K], 1). Draws are kept in log space until the row
	// normalization: tiny alphas push whole rows below the representable
	// range, where a direct sum would be zero.
	out, err := s.sampleFloat(outDims, dtype, func(st *rng.Stream, i int) (float64, error) {
		return gammaSampleLog(st, alpha[i%k])
	})
	if err != nil {
		return nil, err
	}
	switch dtype {
	case dtypes.Float32:
		normalizeRows(s.pool, tensors.Data[float32](out), k)
	default:
		normalizeRows(s.pool, tensors.Data[float64](out), k)
	}
	return out, nil
}

// normalizeRows turns each contiguous row of k log-gamma draws into the
// normalized simplex vector. The exponents are shifted by the row maximum
// before exponentiation, so the largest term is exactly 1 and the sum can
// never vanish; sums accumulate in float64 regardless of the storage
// precision.
func normalizeRows[T float32 | float64](pool *workerspool.Pool, flat []T, k int) {
	rows := len(flat) / k
	pool.ForBlocks(rows, func(start, end int) {
		scaled := make([]float64, k)
		for row := start; row < end; row++ {
			values := flat[row*k : (row+1)*k]
			maxLog := float64(values[0])
			for _, v := range values[1:] {
				maxLog = math.Max(maxLog, float64(v))
			}
			var sum float64
			for ii, v := range values {
				scaled[ii] = math.Exp(float64(v) - maxLog)
				sum += scaled[ii]
			}
			for ii := range values {
				values[ii] = T(scaled[ii] / sum)
			}
		}
	})
}

// Copyright 2026 The AccelRand Authors. SPDX-License-Identifier: Apache-2.0

package random

import (
	"math"

	"github.com/gomlx/gopjrt/dtypes"

	"github.com/accelrand/accelrand/rng"
	"github.com/accelrand/accelrand/tensors"
)

// normal01 draws one standard normal variate: Box-Muller on two uniforms,
// cosine branch. The first uniform is drawn from the open interval so the
// logarithm never sees zero.
func normal01(st *rng.Stream) float64 {
	u1 := openUnit64(st)
	u2 := unitFloat64(st)
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// StandardNormal samples from the normal distribution with mean 0 and
// standard deviation 1.
func (s *State) StandardNormal(size []int, dtype dtypes.DType) (*tensors.Tensor, error) {
	dims, err := resolveDims(size)
	if err != nil {
		return nil, err
	}
	dtype, err = floatDType(dtype, "normal")
	if err != nil {
		return nil, err
	}
	return s.sampleFloat(dims, dtype, func(st *rng.Stream, _ int) (float64, error) {
		return normal01(st), nil
	})
}

// Normal samples from the normal distribution with mean loc and standard
// deviation scale (scale >= 0).
//
// Scalar loc/scale reuse the standard-normal kernel and apply the affine
// rescale as an elementwise pass over the filled array; array-valued
// parameters are folded into the kernel instead.
func (s *State) Normal(loc, scale Param, size []int, dtype dtypes.DType) (*tensors.Tensor, error) {
	dims, err := resolveDims(size)
	if err != nil {
		return nil, err
	}
	dtype, err = floatDType(dtype, "normal")
	if err != nil {
		return nil, err
	}
	locV, err := loc.resolve("loc", dims)
	if err != nil {
		return nil, err
	}
	scaleV, err := scale.resolve("scale", dims)
	if err != nil {
		return nil, err
	}
	if err = locV.validate("loc", checkFinite); err != nil {
		return nil, err
	}
	if err = scaleV.validate("scale", checkNonNegative); err != nil {
		return nil, err
	}

	if locV.isConstant() && scaleV.isConstant() {
		out, err := s.sampleFloat(dims, dtype, func(st *rng.Stream, _ int) (float64, error) {
			return normal01(st), nil
		})
		if err != nil {
			return nil, err
		}
		return out.MulScalar(scaleV.at(0)).AddScalar(locV.at(0)), nil
	}
	return s.sampleFloat(dims, dtype, func(st *rng.Stream, i int) (float64, error) {
		return normal01(st)*scaleV.at(i) + locV.at(i), nil
	})
}

// LogNormal samples exp(N(mean, sigma)): the log of the samples is normally
// distributed with the given mean and standard deviation sigma (sigma >= 0).
func (s *State) LogNormal(mean, sigma Param, size []int, dtype dtypes.DType) (*tensors.Tensor, error) {
	dims, err := resolveDims(size)
	if err != nil {
		return nil, err
	}
	dtype, err = floatDType(dtype, "lognormal")
	if err != nil {
		return nil, err
	}
	meanV, err := mean.resolve("mean", dims)
	if err != nil {
		return nil, err
	}
	sigmaV, err := sigma.resolve("sigma", dims)
	if err != nil {
		return nil, err
	}
	if err = meanV.validate("mean", checkFinite); err != nil {
		return nil, err
	}
	if err = sigmaV.validate("sigma", checkNonNegative); err != nil {
		return nil, err
	}
	return s.sampleFloat(dims, dtype, func(st *rng.Stream, i int) (float64, error) {
		return math.Exp(normal01(st)*sigmaV.at(i) + meanV.at(i)), nil
	})
}

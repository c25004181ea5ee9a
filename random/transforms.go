// Copyright 2026 The AccelRand Authors. SPDX-License-Identifier: Apache-2.0

package random

import (
	"math"

	"github.com/gomlx/gopjrt/dtypes"

	"github.com/accelrand/accelrand/rng"
	"github.com/accelrand/accelrand/tensors"
)

// Closed-form transforms of uniform variates. Both draw their uniforms from
// the open interval (0,1) -- see openUnit64 -- so the logarithms stay in
// domain without rejection.

// Gumbel samples the Gumbel (extreme value) distribution with mode loc and
// scale parameter scale (scale >= 0): loc - scale*ln(-ln(U)).
func (s *State) Gumbel(loc, scale Param, size []int, dtype dtypes.DType) (*tensors.Tensor, error) {
	dims, err := resolveDims(size)
	if err != nil {
		return nil, err
	}
	dtype, err = floatDType(dtype, "gumbel")
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
	return s.sampleFloat(dims, dtype, func(st *rng.Stream, i int) (float64, error) {
		u := openUnit64(st)
		return locV.at(i) - scaleV.at(i)*math.Log(-math.Log(u)), nil
	})
}

// Laplace samples the Laplace (double exponential) distribution with mode
// loc and scale parameter scale (scale >= 0): the sign comes from one
// uniform, the magnitude is the inverse CDF -scale*ln(U) of an independent
// one.
func (s *State) Laplace(loc, scale Param, size []int, dtype dtypes.DType) (*tensors.Tensor, error) {
	dims, err := resolveDims(size)
	if err != nil {
		return nil, err
	}
	dtype, err = floatDType(dtype, "laplace")
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
	return s.sampleFloat(dims, dtype, func(st *rng.Stream, i int) (float64, error) {
		sign := st.Uint32()&1 == 1
		magnitude := -scaleV.at(i) * math.Log(openUnit64(st))
		if sign {
			return locV.at(i) - magnitude, nil
		}
		return locV.at(i) + magnitude, nil
	})
}

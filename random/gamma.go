// Copyright 2026 The AccelRand Authors. SPDX-License-Identifier: Apache-2.0

package random

import (
	"math"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"

	"github.com/accelrand/accelrand/rng"
	"github.com/accelrand/accelrand/tensors"
)

// gammaMaxRetries caps the rejection loop per element. Marsaglia-Tsang
// accepts well over 95% of candidates for any k >= 1, so the cap is only
// reachable when the floating-point inputs are already pathological.
const gammaMaxRetries = 1024

// gammaUnitLog draws gamma(k, 1) for k >= 1 with the Marsaglia-Tsang method
// (squeeze a cubed shifted normal, fall back to the exact log test) and
// returns its logarithm. The log form keeps draws meaningful far below the
// smallest positive float64, which the small-shape boost depends on.
// Expected draws per accepted sample are O(1), independent of k.
func gammaUnitLog(st *rng.Stream, k float64) (float64, error) {
	d := k - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for retry := 0; retry < gammaMaxRetries; retry++ {
		x := normal01(st)
		w := 1.0 + c*x
		if w <= 0 {
			continue
		}
		v := w * w * w
		u := openUnit64(st)
		x2 := x * x
		if u < 1.0-0.0331*x2*x2 {
			return math.Log(d) + 3.0*math.Log(w), nil
		}
		if math.Log(u) < 0.5*x2+d*(1.0-v+math.Log(v)) {
			return math.Log(d) + 3.0*math.Log(w), nil
		}
	}
	return 0, errors.Wrapf(ErrSamplingFailure,
		"gamma rejection loop exceeded %d retries for shape k=%v", gammaMaxRetries, k)
}

// gammaSampleLog draws log(gamma(k, 1)) for any k > 0. Shapes below 1 are
// boosted: draw gamma(k+1, 1) and apply the power correction U^(1/k) with an
// independent uniform, preserving the O(1) expected-draws bound. The
// correction is the additive term ln(U)/k, always finite, even where the
// boosted value itself would round to zero.
func gammaSampleLog(st *rng.Stream, k float64) (float64, error) {
	if k < 1 {
		lg, err := gammaUnitLog(st, k+1)
		if err != nil {
			return 0, err
		}
		u := openUnit64(st)
		return lg + math.Log(u)/k, nil
	}
	return gammaUnitLog(st, k)
}

// gammaSample draws gamma(k, 1) for any k > 0. Tiny shapes can legitimately
// round to zero here; consumers that combine several draws (Beta, Dirichlet)
// stay in log space instead.
func gammaSample(st *rng.Stream, k float64) (float64, error) {
	lg, err := gammaSampleLog(st, k)
	if err != nil {
		return 0, err
	}
	return math.Exp(lg), nil
}

// Gamma samples the gamma distribution with shape k and scale theta
// (both > 0, scalar or broadcastable arrays).
func (s *State) Gamma(k, scale Param, size []int, dtype dtypes.DType) (*tensors.Tensor, error) {
	dims, err := resolveDims(size)
	if err != nil {
		return nil, err
	}
	dtype, err = floatDType(dtype, "gamma")
	if err != nil {
		return nil, err
	}
	kV, err := k.resolve("shape", dims)
	if err != nil {
		return nil, err
	}
	scaleV, err := scale.resolve("scale", dims)
	if err != nil {
		return nil, err
	}
	if err = kV.validate("shape", checkPositive); err != nil {
		return nil, err
	}
	if err = scaleV.validate("scale", checkPositive); err != nil {
		return nil, err
	}
	return s.sampleFloat(dims, dtype, func(st *rng.Stream, i int) (float64, error) {
		g, err := gammaSample(st, kV.at(i))
		if err != nil {
			return 0, err
		}
		return g * scaleV.at(i), nil
	})
}

// Beta samples the beta distribution with parameters a, b > 0, as
// X/(X+Y) with X ~ gamma(a,1) and Y ~ gamma(b,1) drawn independently.
//
// Results are strictly inside (0, 1): a ratio that rounds onto either
// endpoint is nudged to the nearest representable interior value of the
// output dtype.
func (s *State) Beta(a, b Param, size []int, dtype dtypes.DType) (*tensors.Tensor, error) {
	dims, err := resolveDims(size)
	if err != nil {
		return nil, err
	}
	dtype, err = floatDType(dtype, "beta")
	if err != nil {
		return nil, err
	}
	aV, err := a.resolve("a", dims)
	if err != nil {
		return nil, err
	}
	bV, err := b.resolve("b", dims)
	if err != nil {
		return nil, err
	}
	if err = aV.validate("a", checkPositive); err != nil {
		return nil, err
	}
	if err = bV.validate("b", checkPositive); err != nil {
		return nil, err
	}

	// Interior bounds of the target precision. The ratio is formed from the
	// log-gamma draws as 1/(1+exp(ly-lx)): tiny shape parameters push both
	// draws far below the representable range, where x/(x+y) would be 0/0.
	lo, hi := interiorBounds(dtype)
	return s.sampleFloat(dims, dtype, func(st *rng.Stream, i int) (float64, error) {
		lx, err := gammaSampleLog(st, aV.at(i))
		if err != nil {
			return 0, err
		}
		ly, err := gammaSampleLog(st, bV.at(i))
		if err != nil {
			return 0, err
		}
		r := 1.0 / (1.0 + math.Exp(ly-lx))
		if r < lo {
			r = lo
		} else if r > hi {
			r = hi
		}
		return r, nil
	})
}

// interiorBounds returns the smallest and largest values of dtype that are
// strictly inside (0, 1) and survive the float64 -> dtype conversion.
func interiorBounds(dtype dtypes.DType) (lo, hi float64) {
	if dtype == dtypes.Float32 {
		return float64(math.SmallestNonzeroFloat32), float64(math.Nextafter32(1, 0))
	}
	return math.SmallestNonzeroFloat64, math.Nextafter(1, 0)
}
